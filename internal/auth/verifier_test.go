package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "verifier-test-secret"

func TestJWTVerifier_Verify_Valid(t *testing.T) {
	tok, err := MintToken(secret, Identity{AuthUserID: "sub-1", Email: "a@b.c", Name: "Ada"}, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	id, err := NewJWTVerifier(secret).Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.AuthUserID != "sub-1" || id.Email != "a@b.c" || id.Name != "Ada" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestJWTVerifier_Verify_Expired(t *testing.T) {
	tok, err := MintToken(secret, Identity{AuthUserID: "sub-1"}, -2*time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := NewJWTVerifier(secret).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTVerifier_Verify_WrongSecret(t *testing.T) {
	tok, err := MintToken("other-secret", Identity{AuthUserID: "sub-1"}, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := NewJWTVerifier(secret).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWTVerifier_Verify_MissingSubject(t *testing.T) {
	now := time.Now().UTC()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTVerifier(secret).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing sub, got %v", err)
	}
}

func TestJWTVerifier_Verify_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "sub-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTVerifier(secret).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestJWTVerifier_Verify_Garbage(t *testing.T) {
	if _, err := NewJWTVerifier(secret).Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
