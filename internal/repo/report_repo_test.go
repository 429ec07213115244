package repo

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

func TestCreateReport_Defaults(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "auth-owner")
	reporter := seedUser(t, db, "auth-reporter")
	dog := seedDog(t, db, owner, nil)

	r, err := CreateReport(ctx, db, &domain.Report{
		TargetID:   dog.ID,
		ReporterID: reporter.ID,
		Category:   "spam",
	})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if r.ID == "" || r.Status != domain.ReportOpen || r.TargetType != "dog" {
		t.Fatalf("unexpected report: %+v", r)
	}

	got, err := GetReport(ctx, db, r.ID)
	if err != nil || got.Category != "spam" {
		t.Fatalf("GetReport: %+v %v", got, err)
	}
	if _, err := GetReport(ctx, db, "missing"); err != gorm.ErrRecordNotFound {
		t.Fatalf("missing report expected ErrRecordNotFound, got %v", err)
	}
}

func TestListReportsPage_StatusFilter_And_Pagination(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "auth-owner")
	reporter := seedUser(t, db, "auth-reporter")
	dog := seedDog(t, db, owner, nil)

	var firstID string
	for i := 0; i < 3; i++ {
		r, err := CreateReport(ctx, db, &domain.Report{
			TargetID: dog.ID, ReporterID: reporter.ID, Category: "other",
		})
		if err != nil {
			t.Fatalf("create report %d: %v", i, err)
		}
		if i == 0 {
			firstID = r.ID
		}
	}
	if err := UpdateReportStatus(ctx, db, firstID, domain.ReportDismissed); err != nil {
		t.Fatalf("UpdateReportStatus: %v", err)
	}

	open, total, err := ListReportsPage(ctx, db, domain.ReportOpen, 10, 0)
	if err != nil {
		t.Fatalf("ListReportsPage: %v", err)
	}
	if total != 2 || len(open) != 2 {
		t.Fatalf("open page: total=%d len=%d", total, len(open))
	}

	all, total, err := ListReportsPage(ctx, db, "", 2, 0)
	if err != nil {
		t.Fatalf("ListReportsPage all: %v", err)
	}
	if total != 3 || len(all) != 2 {
		t.Fatalf("all page: total=%d len=%d", total, len(all))
	}

	if err := UpdateReportStatus(ctx, db, "missing", domain.ReportActioned); err != gorm.ErrRecordNotFound {
		t.Fatalf("update missing expected ErrRecordNotFound, got %v", err)
	}
}

func TestAppendModerationAction_MetaRoundTrip(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, "auth-admin")

	a, err := AppendModerationAction(ctx, db, &domain.ModerationAction{
		ActorUserID: admin.ID,
		Action:      domain.ActionOverrideStatus,
		Meta:        datatypes.JSONMap{"status": "adopted"},
	})
	if err != nil {
		t.Fatalf("AppendModerationAction: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}

	var got domain.ModerationAction
	if err := db.Where("id = ?", a.ID).First(&got).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Meta["status"] != "adopted" {
		t.Fatalf("meta not round-tripped: %v", got.Meta)
	}
}
