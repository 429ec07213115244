// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// AdoptionRequest model.
//
// The duplicate-pending invariant is enforced twice: HasPendingRequest
// supports the service layer's friendly pre-check, and the partial unique
// index ux_requests_pending (see Migrate) makes a concurrent duplicate
// insert fail at the database.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

// CreateRequest inserts a new pending request.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.AdoptionRequest) (*domain.AdoptionRequest, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.RequestPending
	}
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRequest fetches a request by ID, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id string) (*domain.AdoptionRequest, error) {
	var r domain.AdoptionRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// HasPendingRequest reports whether adopterID already has a pending request
// for dogID.
func HasPendingRequest(ctx context.Context, db *gorm.DB, dogID, adopterID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.AdoptionRequest{}).
		Where("dog_id = ? AND adopter_id = ? AND status = ?", dogID, adopterID, domain.RequestPending).
		Count(&n).Error
	return n > 0, err
}

// LatestRequestFor returns the adopter's most recent request for dogID, or
// nil when none exists.
func LatestRequestFor(ctx context.Context, db *gorm.DB, dogID, adopterID string) (*domain.AdoptionRequest, error) {
	var rows []domain.AdoptionRequest
	err := db.WithContext(ctx).
		Where("dog_id = ? AND adopter_id = ?", dogID, adopterID).
		Order("created_at desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListIncomingRequests returns every request targeting dogs owned by
// ownerID, newest first, with the dog and adopter rows preloaded. The dog
// preload is unscoped so requests against soft-deleted listings still
// resolve their dog.
func ListIncomingRequests(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.AdoptionRequest, error) {
	var out []domain.AdoptionRequest
	err := db.WithContext(ctx).
		Joins("JOIN dogs ON dogs.id = adoption_requests.dog_id").
		Where("dogs.posted_by = ?", ownerID).
		Preload("Dog", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("Adopter").
		Order("adoption_requests.created_at desc").
		Find(&out).Error
	return out, err
}

// ListOutgoingRequests returns every request filed by adopterID, newest
// first, with the dog and the dog's owner preloaded.
func ListOutgoingRequests(ctx context.Context, db *gorm.DB, adopterID string) ([]domain.AdoptionRequest, error) {
	var out []domain.AdoptionRequest
	err := db.WithContext(ctx).
		Where("adopter_id = ?", adopterID).
		Preload("Dog", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Preload("Dog.Owner").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateRequestStatus sets the request status. Returns ErrNotFound when no
// row matched.
func UpdateRequestStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.AdoptionRequest{}).
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
