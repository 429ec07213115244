// Package auth verifies bearer credentials presented by API clients.
//
// The application does not issue credentials itself; an external identity
// provider does. The HTTP layer only needs to turn a bearer token into a
// stable external identity, so the contract here is a small interface with
// one production implementation (HS256 JWTs) that can be swapped for a
// fake in tests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed, wrongly signed, expired, or missing the subject claim.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified external identity carried by a bearer token.
// AuthUserID is the provider's stable subject; Email and Name are optional
// profile claims used only to seed the internal user row on first login.
type Identity struct {
	AuthUserID string
	Email      string
	Name       string
}

// IdentityVerifier turns a raw bearer token into a verified Identity.
type IdentityVerifier interface {
	Verify(token string) (Identity, error)
}

// JWTVerifier verifies HS256-signed JWTs against a shared secret. The
// subject claim is required; email and name are picked up when present.
type JWTVerifier struct {
	Secret []byte
	// Leeway absorbs small clock skew between the token issuer and this
	// service when validating exp/nbf.
	Leeway time.Duration
}

// NewJWTVerifier returns a verifier for the given shared secret with a
// 30-second validation leeway.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{Secret: []byte(secret), Leeway: 30 * time.Second}
}

// Verify parses and validates token and extracts the identity claims.
func (v *JWTVerifier) Verify(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return Identity{AuthUserID: sub, Email: email, Name: name}, nil
}

// MintToken signs an HS256 token for the given identity, valid for ttl.
// It exists for local development and tests; production tokens come from
// the external provider.
func MintToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": id.AuthUserID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if id.Email != "" {
		claims["email"] = id.Email
	}
	if id.Name != "" {
		claims["name"] = id.Name
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
