// Package services – ModerationService
//
// This file implements moderation: report intake, the admin report queue
// with batch enrichment, the action dispatch (hide/unhide/soft-delete/
// status-override/dismiss), and the direct admin listing operations. Every
// admin action appends one row to the append-only moderation_actions log
// before the report's own status is advanced.
package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

// ReportCreateInput carries the validated fields for a new report.
type ReportCreateInput struct {
	TargetType  string
	TargetID    string
	Category    string
	Message     *string
	EvidenceURL *string
}

// ReportDogSummary is the dog projection attached to enriched report rows.
type ReportDogSummary struct {
	ID     string   `json:"id"`
	Name   *string  `json:"name"`
	Area   string   `json:"area"`
	Images []string `json:"images"`
	Status string   `json:"status"`
}

// ReportReporterSummary is the reporter projection attached to enriched
// report rows. Reports are an admin-only surface, so the email is not
// subject to contact gating here.
type ReportReporterSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReportItem is one enriched row of the admin report queue.
type ReportItem struct {
	domain.Report
	Dog      *ReportDogSummary      `json:"dog"`
	Reporter *ReportReporterSummary `json:"reporter"`
}

// ModerationService implements report intake and admin actions.
type ModerationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// CreateReport files a new open report on behalf of the caller. The
// caller must have an internal user row (ErrUserNotFound otherwise).
func (s *ModerationService) CreateReport(ctx context.Context, reporterAuthID string, in ReportCreateInput) (*domain.Report, error) {
	reporter, err := repo.GetUserByAuthID(ctx, s.DB, reporterAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.CreateReport(ctx, s.DB, &domain.Report{
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		ReporterID:  reporter.ID,
		Category:    in.Category,
		Message:     in.Message,
		EvidenceURL: in.EvidenceURL,
	})
}

// ListReports returns one page of reports (optionally filtered by status)
// enriched with dog and reporter summaries. Enrichment is two batched
// IN-queries keyed by the distinct ids in the page, not one query per row.
func (s *ModerationService) ListReports(ctx context.Context, status string, limit, offset int) ([]ReportItem, int64, error) {
	rows, total, err := repo.ListReportsPage(ctx, s.DB, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []ReportItem{}, total, nil
	}

	dogIDs := make([]string, 0, len(rows))
	reporterIDs := make([]string, 0, len(rows))
	seenDog := make(map[string]struct{}, len(rows))
	seenRep := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seenDog[r.TargetID]; !ok {
			seenDog[r.TargetID] = struct{}{}
			dogIDs = append(dogIDs, r.TargetID)
		}
		if _, ok := seenRep[r.ReporterID]; !ok {
			seenRep[r.ReporterID] = struct{}{}
			reporterIDs = append(reporterIDs, r.ReporterID)
		}
	}

	dogs, err := repo.DogsByIDs(ctx, s.DB, dogIDs)
	if err != nil {
		return nil, 0, err
	}
	reporters, err := repo.UsersByIDs(ctx, s.DB, reporterIDs)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ReportItem, 0, len(rows))
	for _, r := range rows {
		item := ReportItem{Report: r}
		if d, ok := dogs[r.TargetID]; ok {
			item.Dog = &ReportDogSummary{
				ID:     d.ID,
				Name:   d.Name,
				Area:   d.Area,
				Images: d.Images,
				Status: d.Status,
			}
		}
		if u, ok := reporters[r.ReporterID]; ok {
			item.Reporter = &ReportReporterSummary{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
			}
		}
		items = append(items, item)
	}
	return items, total, nil
}

// ActionReport performs one admin action against a report's target and
// records it.
//
// Semantics and validation:
//   - The actor must resolve to an internal user with the admin role;
//     otherwise ErrUserNotFound / ErrNotAdmin.
//   - The report must exist; otherwise ErrReportNotFound.
//   - override-status requires meta["status"] with a valid dog status;
//     otherwise ErrStatusMetaRequired / ErrInvalidStatus.
//   - Unknown action tags fail with ErrUnknownAction before any write.
//
// After the dog-level side effect (none for dismiss) the action is appended
// to the moderation log, then the report itself moves to dismissed (for
// dismiss) or actioned (for everything else).
func (s *ModerationService) ActionReport(ctx context.Context, actorAuthID, reportID, action string, notes *string, meta map[string]any) (*domain.Report, *domain.ModerationAction, error) {
	actor, err := repo.GetUserByAuthID(ctx, s.DB, actorAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if actor.Role != domain.RoleAdmin {
		return nil, nil, ErrNotAdmin
	}

	report, err := repo.GetReport(ctx, s.DB, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrReportNotFound
		}
		return nil, nil, err
	}

	switch action {
	case domain.ActionHideDog:
		err = repo.SetDogHidden(ctx, s.DB, report.TargetID, true)
	case domain.ActionUnhideDog:
		err = repo.SetDogHidden(ctx, s.DB, report.TargetID, false)
	case domain.ActionSoftDeleteDog:
		err = repo.SoftDeleteDog(ctx, s.DB, report.TargetID)
	case domain.ActionOverrideStatus:
		status, _ := meta["status"].(string)
		if status == "" {
			return nil, nil, ErrStatusMetaRequired
		}
		if status != domain.DogAvailable && status != domain.DogPending && status != domain.DogAdopted {
			return nil, nil, ErrInvalidStatus
		}
		err = repo.UpdateDogStatus(ctx, s.DB, report.TargetID, status)
	case domain.ActionDismiss:
		// No dog-level side effect.
	default:
		return nil, nil, ErrUnknownAction
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDogNotFound
		}
		return nil, nil, err
	}

	logged, err := repo.AppendModerationAction(ctx, s.DB, &domain.ModerationAction{
		ReportID:    &report.ID,
		ActorUserID: actor.ID,
		Action:      action,
		Notes:       notes,
		Meta:        datatypes.JSONMap(meta),
	})
	if err != nil {
		return nil, nil, err
	}

	newStatus := domain.ReportActioned
	if action == domain.ActionDismiss {
		newStatus = domain.ReportDismissed
	}
	if err := repo.UpdateReportStatus(ctx, s.DB, report.ID, newStatus); err != nil {
		return nil, nil, err
	}
	report.Status = newStatus
	return report, logged, nil
}

// HideDog / UnhideDog / SoftDeleteDog / OverrideDogStatus are the direct
// admin listing operations (no report involved). Each still appends a
// moderation log row with a nil report reference.

func (s *ModerationService) HideDog(ctx context.Context, actorAuthID, dogID string) error {
	return s.directDogAction(ctx, actorAuthID, dogID, domain.ActionHideDog, nil)
}

func (s *ModerationService) UnhideDog(ctx context.Context, actorAuthID, dogID string) error {
	return s.directDogAction(ctx, actorAuthID, dogID, domain.ActionUnhideDog, nil)
}

func (s *ModerationService) SoftDeleteDog(ctx context.Context, actorAuthID, dogID string) error {
	return s.directDogAction(ctx, actorAuthID, dogID, domain.ActionSoftDeleteDog, nil)
}

func (s *ModerationService) OverrideDogStatus(ctx context.Context, actorAuthID, dogID, status string) error {
	if status != domain.DogAvailable && status != domain.DogPending && status != domain.DogAdopted {
		return ErrInvalidStatus
	}
	return s.directDogAction(ctx, actorAuthID, dogID, domain.ActionOverrideStatus, map[string]any{"status": status})
}

// directDogAction applies one dog-level moderation mutation and logs it.
func (s *ModerationService) directDogAction(ctx context.Context, actorAuthID, dogID, action string, meta map[string]any) error {
	actor, err := repo.GetUserByAuthID(ctx, s.DB, actorAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if actor.Role != domain.RoleAdmin {
		return ErrNotAdmin
	}

	switch action {
	case domain.ActionHideDog:
		err = repo.SetDogHidden(ctx, s.DB, dogID, true)
	case domain.ActionUnhideDog:
		err = repo.SetDogHidden(ctx, s.DB, dogID, false)
	case domain.ActionSoftDeleteDog:
		err = repo.SoftDeleteDog(ctx, s.DB, dogID)
	case domain.ActionOverrideStatus:
		status, _ := meta["status"].(string)
		err = repo.UpdateDogStatus(ctx, s.DB, dogID, status)
	default:
		return ErrUnknownAction
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDogNotFound
		}
		return err
	}

	_, err = repo.AppendModerationAction(ctx, s.DB, &domain.ModerationAction{
		ActorUserID: actor.ID,
		Action:      action,
		Meta:        datatypes.JSONMap(meta),
	})
	return err
}
