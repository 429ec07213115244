// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// PersonalityTag lookup table, plus the aggregate query used for ETag
// generation on the tags endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

// ListPersonalityTags returns the whole lookup table ordered by name.
func ListPersonalityTags(ctx context.Context, db *gorm.DB) ([]domain.PersonalityTag, error) {
	var out []domain.PersonalityTag
	err := db.WithContext(ctx).Order("tag_name asc").Find(&out).Error
	return out, err
}

// TagsStats returns aggregate metadata for the personality_tags table: the
// total number of rows and the maximum UpdatedAt timestamp among them. The
// HTTP layer folds both into a weak ETag so clients can cache the lookup
// table.
//
// Return values:
//   - count:        total tags
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func TagsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.PersonalityTag{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
