package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

func mustUser(t *testing.T, svc *UserService, authID string) *domain.User {
	t.Helper()
	u, err := svc.Ensure(context.Background(), authID, "User "+authID, authID+"@example.com")
	if err != nil {
		t.Fatalf("ensure user %s: %v", authID, err)
	}
	return u
}

func TestDogService_Create_RequiresUser(t *testing.T) {
	db := newSvcDB(t)
	svc := &DogService{DB: db}

	_, err := svc.Create(context.Background(), "unknown-auth", DogCreateInput{
		Area: "Kolonaki", Images: []string{"https://cdn.example.com/x.jpg"},
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDogService_Create_NormalizesFields(t *testing.T) {
	db := newSvcDB(t)
	users := &UserService{DB: db}
	svc := &DogService{DB: db}
	ctx := context.Background()
	mustUser(t, users, "auth-owner")

	blank := "   "
	breed := "  mixed  "
	dog, err := svc.Create(ctx, "auth-owner", DogCreateInput{
		Area:        "  exarchia, athens ",
		Breed:       &breed,
		Description: &blank,
		Images:      []string{"https://cdn.example.com/x.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dog.Area != "Exarchia, Athens" {
		t.Fatalf("area not canonicalized: %q", dog.Area)
	}
	if dog.Breed == nil || *dog.Breed != "mixed" {
		t.Fatalf("breed not trimmed: %v", dog.Breed)
	}
	if dog.Description != nil {
		t.Fatalf("blank description should collapse to nil: %v", dog.Description)
	}
	if dog.Gender != "unknown" {
		t.Fatalf("gender default = %q", dog.Gender)
	}
	if dog.Status != domain.DogAvailable || dog.IsHidden {
		t.Fatalf("new listing must start available and visible: %+v", dog)
	}
}

func TestDogService_Get_ModerationVisibility(t *testing.T) {
	db := newSvcDB(t)
	users := &UserService{DB: db}
	svc := &DogService{DB: db}
	ctx := context.Background()
	mustUser(t, users, "auth-owner")

	dog, err := svc.Create(ctx, "auth-owner", DogCreateInput{
		Area: "Petralona", Images: []string{"https://cdn.example.com/x.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, dog.ID, false); err != nil {
		t.Fatalf("public Get: %v", err)
	}

	if err := repo.SetDogHidden(ctx, db, dog.ID, true); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if _, err := svc.Get(ctx, dog.ID, false); !errors.Is(err, ErrDogNotFound) {
		t.Fatalf("hidden dog publicly expected ErrDogNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, dog.ID, true); err != nil {
		t.Fatalf("admin Get of hidden dog: %v", err)
	}

	if err := repo.SoftDeleteDog(ctx, db, dog.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.Get(ctx, dog.ID, false); !errors.Is(err, ErrDogNotFound) {
		t.Fatalf("deleted dog publicly expected ErrDogNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, dog.ID, true); err != nil {
		t.Fatalf("admin Get of deleted dog: %v", err)
	}

	if _, err := svc.Get(ctx, "00000000-0000-0000-0000-000000000000", true); !errors.Is(err, ErrDogNotFound) {
		t.Fatalf("missing dog expected ErrDogNotFound, got %v", err)
	}
}
