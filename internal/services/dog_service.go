// Package services – DogService
//
// This file implements the DogService, which manages listing creation and
// the public/admin listing queries. Input bounds are enforced at the
// transport layer (binding tags); this service normalizes free-text fields,
// resolves the owner, and delegates query composition to the repository.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

// areaCaser canonicalizes area casing so "delhi" and "Delhi" collapse into
// one display form.
var areaCaser = cases.Title(language.Und)

// DogCreateInput carries the validated fields for a new listing.
type DogCreateInput struct {
	Name        *string
	Breed       *string
	AgeYears    *float64
	Gender      string
	Description *string
	Area        string
	LocationLat *float64
	LocationLng *float64

	Images []string
	Videos []string

	HealthSterilised bool
	HealthVaccinated bool
	HealthDewormed   bool
	MicrochipID      *string

	CompatibilityKids *bool
	CompatibilityDogs *bool
	CompatibilityCats *bool

	EnergyLevel  *string
	Temperament  *string
	Playfulness  *string
	SpecialNeeds *string

	PersonalityTagIDs []uint
}

// DogService provides listing-level operations: create, public listing
// query, and detail retrieval.
type DogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create inserts a new listing owned by the caller. The caller's auth
// identity must already have an internal user row (ErrUserNotFound
// otherwise). New listings always start available and visible.
func (s *DogService) Create(ctx context.Context, ownerAuthID string, in DogCreateInput) (*domain.Dog, error) {
	owner, err := repo.GetUserByAuthID(ctx, s.DB, ownerAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	gender := in.Gender
	if gender == "" {
		gender = "unknown"
	}

	dog := &domain.Dog{
		PostedBy:          owner.ID,
		Name:              trimPtr(in.Name),
		Breed:             trimPtr(in.Breed),
		AgeYears:          in.AgeYears,
		Gender:            gender,
		Description:       trimPtr(in.Description),
		Area:              areaCaser.String(strings.TrimSpace(in.Area)),
		LocationLat:       in.LocationLat,
		LocationLng:       in.LocationLng,
		Images:            in.Images,
		Videos:            in.Videos,
		HealthSterilised:  in.HealthSterilised,
		HealthVaccinated:  in.HealthVaccinated,
		HealthDewormed:    in.HealthDewormed,
		MicrochipID:       trimPtr(in.MicrochipID),
		CompatibilityKids: in.CompatibilityKids,
		CompatibilityDogs: in.CompatibilityDogs,
		CompatibilityCats: in.CompatibilityCats,
		EnergyLevel:       trimPtr(in.EnergyLevel),
		Temperament:       trimPtr(in.Temperament),
		Playfulness:       trimPtr(in.Playfulness),
		SpecialNeeds:      trimPtr(in.SpecialNeeds),
		Status:            domain.DogAvailable,
	}
	return repo.CreateDog(ctx, s.DB, dog, in.PersonalityTagIDs)
}

// List runs the filtered listing query. The handler is responsible for
// clamping limit/offset and for defaulting status to "available" on the
// public route; the admin route sets the Include* flags.
func (s *DogService) List(ctx context.Context, f repo.DogFilter) ([]domain.Dog, int64, error) {
	return repo.ListDogs(ctx, s.DB, f)
}

// Get returns one listing. Unless includeModerated is set (admin paths),
// hidden and soft-deleted listings surface as ErrDogNotFound.
func (s *DogService) Get(ctx context.Context, id string, includeModerated bool) (*domain.Dog, error) {
	var (
		dog *domain.Dog
		err error
	)
	if includeModerated {
		dog, err = repo.GetDogAny(ctx, s.DB, id)
	} else {
		dog, err = repo.GetDog(ctx, s.DB, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDogNotFound
		}
		return nil, err
	}
	if !includeModerated && dog.IsHidden {
		return nil, ErrDogNotFound
	}
	return dog, nil
}

// trimPtr trims the pointee and collapses blank strings to nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
