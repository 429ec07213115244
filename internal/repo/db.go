// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and lookup-table seeding.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/pawpal/pawpal-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// EnableTracing installs the GORM OpenTelemetry plugin so that database
// calls appear as spans under the HTTP request trace.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// Migrate applies the schema for all marketplace entities and then creates
// the partial unique index that enforces "at most one pending request per
// (dog, adopter)". AutoMigrate cannot express partial indexes, so the index
// is issued as raw SQL, the same way OpenSQLite issues PRAGMAs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.PersonalityTag{},
		&domain.Dog{},
		&domain.AdoptionRequest{},
		&domain.Report{},
		&domain.ModerationAction{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_requests_pending
		 ON adoption_requests (dog_id, adopter_id) WHERE status = 'pending';`,
	).Error
}

// defaultTags is the starter personality vocabulary offered to caretakers.
var defaultTags = []string{
	"calm", "playful", "shy", "curious", "gentle", "protective",
	"independent", "affectionate", "food-motivated", "good-on-leash",
}

// SeedPersonalityTags inserts the default tag vocabulary, skipping names
// that already exist. Safe to run on every start.
func SeedPersonalityTags(db *gorm.DB) error {
	for _, name := range defaultTags {
		tag := domain.PersonalityTag{TagName: name}
		if err := db.Where("tag_name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
	}
	return nil
}
