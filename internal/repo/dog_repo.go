// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Dog model,
// including the filtered listing query.
//
// Functions:
//
//   - CreateDog(ctx, db, dog, tagIDs) -> *domain.Dog, error
//     Inserts a listing plus its personality-tag associations.
//
//   - GetDog(ctx, db, id) / GetDogAny(ctx, db, id)
//     Fetch a single listing; GetDogAny ignores the soft-delete scope.
//
//   - ListDogs(ctx, db, filter) -> ([]domain.Dog, int64, error)
//     Composes the public/admin listing query (text search, exact filters,
//     tag overlap, bounding-box radius) and returns a page plus the total.
//
//   - SetDogHidden / SoftDeleteDog / UpdateDogStatus / UpdateDogStatusFrom
//     Single-row moderation and lifecycle mutations.
package repo

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

// DogFilter describes the listing query. Zero values mean "no filter";
// compatibility pointers filter only when non-nil. Limit/Offset are assumed
// pre-clamped by the caller (see utils.ClampLimit).
type DogFilter struct {
	Q      string
	Area   string
	Breed  string
	Gender string
	Energy string
	Status string

	CompatKids *bool
	CompatDogs *bool
	CompatCats *bool

	TagIDs []uint

	// Radius filter: approximate bounding box around (Lat, Lng), with the
	// radius converted to degree deltas (km/111 latitude, km/(111*cos lat)
	// longitude). Not a great-circle distance.
	Lat      *float64
	Lng      *float64
	RadiusKm *float64

	IncludeHidden  bool
	IncludeDeleted bool

	Limit  int
	Offset int
}

// CreateDog inserts a new listing owned by dog.PostedBy together with its
// tag associations. The association insert is part of the same Create call,
// so a tag failure fails the whole insert.
func CreateDog(ctx context.Context, db *gorm.DB, dog *domain.Dog, tagIDs []uint) (*domain.Dog, error) {
	if dog.ID == "" {
		dog.ID = uuid.NewString()
	}
	if dog.Status == "" {
		dog.Status = domain.DogAvailable
	}
	dog.CreatedAt = time.Now().UTC()

	if len(tagIDs) > 0 {
		var tags []domain.PersonalityTag
		if err := db.WithContext(ctx).Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return nil, err
		}
		dog.PersonalityTags = tags
	}
	if err := db.WithContext(ctx).Create(dog).Error; err != nil {
		return nil, err
	}
	return dog, nil
}

// GetDog fetches a non-deleted listing by ID with tags preloaded, or
// ErrNotFound.
func GetDog(ctx context.Context, db *gorm.DB, id string) (*domain.Dog, error) {
	var d domain.Dog
	err := db.WithContext(ctx).
		Preload("PersonalityTags").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDogAny fetches a listing by ID regardless of its soft-delete state.
// Moderation paths use it so that actions still resolve their target after
// a soft delete.
func GetDogAny(ctx context.Context, db *gorm.DB, id string) (*domain.Dog, error) {
	var d domain.Dog
	err := db.WithContext(ctx).
		Unscoped().
		Preload("PersonalityTags").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DogsByIDs returns the listings matching ids in a single unscoped query,
// keyed by ID. Used for batch enrichment of report pages.
func DogsByIDs(ctx context.Context, db *gorm.DB, ids []string) (map[string]domain.Dog, error) {
	out := make(map[string]domain.Dog, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Dog
	if err := db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, d := range rows {
		out[d.ID] = d
	}
	return out, nil
}

// ListDogs composes the filtered listing query and returns one page ordered
// newest-first, together with the total number of matches.
func ListDogs(ctx context.Context, db *gorm.DB, f DogFilter) ([]domain.Dog, int64, error) {
	q := db.WithContext(ctx).Model(&domain.Dog{})
	if f.IncludeDeleted {
		q = q.Unscoped()
	}
	if !f.IncludeHidden {
		q = q.Where("is_hidden = ?", false)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Q != "" {
		like := "%" + f.Q + "%"
		q = q.Where("name LIKE ? OR area LIKE ?", like, like)
	}
	if f.Area != "" {
		q = q.Where("area LIKE ?", "%"+f.Area+"%")
	}
	if f.Breed != "" {
		q = q.Where("breed LIKE ?", "%"+f.Breed+"%")
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if f.Energy != "" {
		q = q.Where("energy_level = ?", f.Energy)
	}
	if f.CompatKids != nil {
		q = q.Where("compatibility_kids = ?", *f.CompatKids)
	}
	if f.CompatDogs != nil {
		q = q.Where("compatibility_dogs = ?", *f.CompatDogs)
	}
	if f.CompatCats != nil {
		q = q.Where("compatibility_cats = ?", *f.CompatCats)
	}
	if len(f.TagIDs) > 0 {
		sub := db.Table("dog_personality_tags").
			Select("dog_id").
			Where("personality_tag_id IN ?", f.TagIDs)
		q = q.Where("id IN (?)", sub)
	}
	if f.Lat != nil && f.Lng != nil && f.RadiusKm != nil && *f.RadiusKm > 0 {
		dLat := *f.RadiusKm / 111.0
		cos := math.Cos(*f.Lat * math.Pi / 180.0)
		if cos < 1e-6 {
			cos = 1e-6 // poles: degenerate but never divide by zero
		}
		dLng := *f.RadiusKm / (111.0 * cos)
		q = q.Where("location_lat BETWEEN ? AND ?", *f.Lat-dLat, *f.Lat+dLat).
			Where("location_lng BETWEEN ? AND ?", *f.Lng-dLng, *f.Lng+dLng)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Dog
	err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("PersonalityTags").
		Find(&out).Error
	return out, total, err
}

// SetDogHidden toggles the reversible moderation flag. Returns ErrNotFound
// when the listing does not exist (soft-deleted listings still match).
func SetDogHidden(ctx context.Context, db *gorm.DB, id string, hidden bool) error {
	res := db.WithContext(ctx).
		Unscoped().
		Model(&domain.Dog{}).
		Where("id = ?", id).
		Update("is_hidden", hidden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteDog stamps deleted_at, removing the listing from all public
// queries while retaining the row.
func SoftDeleteDog(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Dog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDogStatus sets the lifecycle status unconditionally (admin
// override path).
func UpdateDogStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Unscoped().
		Model(&domain.Dog{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDogStatusFrom sets the lifecycle status only when the current
// status equals from. RowsAffected==0 means the guard did not match (or the
// dog is gone); callers treat that as "skipped", not as an error.
func UpdateDogStatusFrom(ctx context.Context, db *gorm.DB, id, from, to string) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
