// Package services – UserService
//
// This file implements the UserService, which owns the bootstrap-on-login
// flow: the first authenticated request for a new external identity creates
// the internal user row with a default role. The external-auth linkage is
// immutable once created.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

// UserService provides internal-user lookup and the create-or-fetch
// bootstrap operation.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// GetByAuthID resolves an external auth identity to the internal user row.
// Returns ErrUserNotFound when no row exists yet.
func (s *UserService) GetByAuthID(ctx context.Context, authUserID string) (*domain.User, error) {
	u, err := repo.GetUserByAuthID(ctx, s.DB, authUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Ensure returns the internal user for authUserID, creating the row on
// first login. The display name falls back to the email local-part and
// finally to "User"; the default role is adopter.
//
// A concurrent first login can race the insert; the unique index on
// auth_user_id makes the loser re-read the winner's row.
func (s *UserService) Ensure(ctx context.Context, authUserID, name, email string) (*domain.User, error) {
	if u, err := repo.GetUserByAuthID(ctx, s.DB, authUserID); err == nil {
		return u, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		}
	}
	if name == "" {
		name = "User"
	}

	u, err := repo.CreateUser(ctx, s.DB, &domain.User{
		AuthUserID: authUserID,
		Name:       name,
		Email:      email,
		Role:       domain.RoleAdopter,
	})
	if err != nil {
		if isDuplicate(err) {
			return repo.GetUserByAuthID(ctx, s.DB, authUserID)
		}
		return nil, err
	}
	return u, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
