// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Report and
// ModerationAction.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

// CreateReport inserts a new open report.
func CreateReport(ctx context.Context, db *gorm.DB, r *domain.Report) (*domain.Report, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.ReportOpen
	}
	if r.TargetType == "" {
		r.TargetType = "dog"
	}
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetReport fetches a report by ID, or ErrNotFound.
func GetReport(ctx context.Context, db *gorm.DB, id string) (*domain.Report, error) {
	var r domain.Report
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReportsPage returns one page of reports newest-first, optionally
// filtered by status, together with the total count for the filter.
func ListReportsPage(ctx context.Context, db *gorm.DB, status string, limit, offset int) ([]domain.Report, int64, error) {
	q := db.WithContext(ctx).Model(&domain.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Report
	err := q.Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}

// UpdateReportStatus sets the report status. Returns ErrNotFound when no
// row matched.
func UpdateReportStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Report{}).
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

// AppendModerationAction writes one append-only log row. Log rows are never
// updated or deleted afterwards.
func AppendModerationAction(ctx context.Context, db *gorm.DB, a *domain.ModerationAction) (*domain.ModerationAction, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}
