// Package services – AdoptionService
//
// This file implements the adoption-request lifecycle, the one piece of
// multi-step business logic in the application:
//
//   - Create enforces "no requests against your own dog" and "at most one
//     pending request per (dog, adopter)".
//   - ListIncoming / ListOutgoing project requests into the two directional
//     views, applying contact-detail minimization: adopter email/phone (and
//     the caretaker contact object) only become visible once a request is
//     approved. The two directions null contact data differently:
//     incoming blanks individual fields of an always-present adopter
//     object, outgoing omits the caretaker object entirely.
//   - UpdateStatus transitions a pending request to a terminal state and,
//     on approval, provisionally reserves the dog (available → pending) as
//     a best-effort secondary write: its failure is logged, never surfaced.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/domain"
	"github.com/pawpal/pawpal-backend/internal/repo"
)

// RequestDogSummary is the compact dog projection embedded in both list
// directions.
type RequestDogSummary struct {
	ID     string   `json:"id"`
	Name   *string  `json:"name"`
	Area   string   `json:"area"`
	Images []string `json:"images"`
	Status string   `json:"status"`
}

// IncomingAdopter is the adopter projection on the caretaker's view. The
// object itself is always present; Email and Phone stay null until the
// request is approved.
type IncomingAdopter struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// IncomingRequestItem is one row of the caretaker's incoming view.
type IncomingRequestItem struct {
	ID             string            `json:"id"`
	Message        *string           `json:"message"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	Dog            RequestDogSummary `json:"dog"`
	Adopter        IncomingAdopter   `json:"adopter"`
	ContactVisible bool              `json:"contact_visible"`
}

// CaretakerContact is the caretaker projection on the adopter's view. The
// whole object is null until the request is approved.
type CaretakerContact struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// OutgoingRequestItem is one row of the adopter's outgoing view.
type OutgoingRequestItem struct {
	ID        string            `json:"id"`
	Message   *string           `json:"message"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Dog       RequestDogSummary `json:"dog"`
	Caretaker *CaretakerContact `json:"caretaker"`
}

// AdoptionService implements the request lifecycle and its directional
// projections.
type AdoptionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create files a new pending request by the caller against dogID.
//
// Semantics and validation:
//   - The caller must have an internal user row; otherwise ErrUserNotFound.
//   - dogID must resolve to a visible listing; otherwise ErrDogNotFound.
//   - The caller must not own the dog; otherwise ErrOwnDog.
//   - At most one pending request per (dog, adopter): a friendly pre-check
//     returns ErrDuplicateRequest, and the partial unique index maps a
//     concurrent duplicate insert to the same error.
func (s *AdoptionService) Create(ctx context.Context, adopterAuthID, dogID string, message *string) (*domain.AdoptionRequest, error) {
	adopter, err := repo.GetUserByAuthID(ctx, s.DB, adopterAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	dog, err := repo.GetDog(ctx, s.DB, dogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDogNotFound
		}
		return nil, err
	}
	if dog.IsHidden {
		return nil, ErrDogNotFound
	}
	if dog.PostedBy == adopter.ID {
		return nil, ErrOwnDog
	}

	exists, err := repo.HasPendingRequest(ctx, s.DB, dogID, adopter.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	req, err := repo.CreateRequest(ctx, s.DB, &domain.AdoptionRequest{
		DogID:     dogID,
		AdopterID: adopter.ID,
		Message:   message,
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

// MyRequestForDog returns the caller's most recent request for dogID, or
// nil when the caller never filed one.
func (s *AdoptionService) MyRequestForDog(ctx context.Context, authUserID, dogID string) (*domain.AdoptionRequest, error) {
	user, err := repo.GetUserByAuthID(ctx, s.DB, authUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.LatestRequestFor(ctx, s.DB, dogID, user.ID)
}

// ListIncoming returns the caretaker's view: every request targeting the
// caller's dogs, newest first, with adopter contact fields nulled out
// unless the row's status is approved.
func (s *AdoptionService) ListIncoming(ctx context.Context, ownerAuthID string) ([]IncomingRequestItem, error) {
	owner, err := repo.GetUserByAuthID(ctx, s.DB, ownerAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rows, err := repo.ListIncomingRequests(ctx, s.DB, owner.ID)
	if err != nil {
		return nil, err
	}

	items := make([]IncomingRequestItem, 0, len(rows))
	for _, r := range rows {
		approved := r.Status == domain.RequestApproved
		adopter := IncomingAdopter{
			ID:   r.Adopter.ID,
			Name: r.Adopter.Name,
		}
		if approved {
			email := r.Adopter.Email
			adopter.Email = &email
			adopter.Phone = r.Adopter.Phone
		}
		items = append(items, IncomingRequestItem{
			ID:             r.ID,
			Message:        r.Message,
			Status:         r.Status,
			CreatedAt:      r.CreatedAt,
			Dog:            dogSummary(r.Dog),
			Adopter:        adopter,
			ContactVisible: approved,
		})
	}
	return items, nil
}

// ListOutgoing returns the adopter's view: every request the caller filed,
// newest first, with the caretaker contact object present only on approved
// rows.
func (s *AdoptionService) ListOutgoing(ctx context.Context, adopterAuthID string) ([]OutgoingRequestItem, error) {
	adopter, err := repo.GetUserByAuthID(ctx, s.DB, adopterAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rows, err := repo.ListOutgoingRequests(ctx, s.DB, adopter.ID)
	if err != nil {
		return nil, err
	}

	items := make([]OutgoingRequestItem, 0, len(rows))
	for _, r := range rows {
		var caretaker *CaretakerContact
		if r.Status == domain.RequestApproved {
			caretaker = &CaretakerContact{
				Name:  r.Dog.Owner.Name,
				Email: r.Dog.Owner.Email,
				Phone: r.Dog.Owner.Phone,
			}
		}
		items = append(items, OutgoingRequestItem{
			ID:        r.ID,
			Message:   r.Message,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			Dog:       dogSummary(r.Dog),
			Caretaker: caretaker,
		})
	}
	return items, nil
}

// UpdateStatus transitions requestID to newStatus on behalf of the dog's
// caretaker.
//
// Semantics and validation:
//   - newStatus must be approved, declined, or cancelled; otherwise
//     ErrInvalidStatus.
//   - The caller must resolve to an internal user (ErrUserNotFound), the
//     request and its dog must exist (ErrRequestNotFound / ErrDogNotFound),
//     and the caller must own the dog (ErrNotDogOwner).
//   - Terminal requests reject further transitions with ErrRequestClosed.
//
// On approval, when the dog is still available it is moved to pending with
// a guarded single-row update. That secondary write is best-effort: a
// failure is logged and the approval still succeeds; the returned dog is
// nil whenever the cascade was skipped or failed.
func (s *AdoptionService) UpdateStatus(ctx context.Context, ownerAuthID, requestID, newStatus string) (*domain.AdoptionRequest, *domain.Dog, error) {
	switch newStatus {
	case domain.RequestApproved, domain.RequestDeclined, domain.RequestCancelled:
	default:
		return nil, nil, ErrInvalidStatus
	}

	owner, err := repo.GetUserByAuthID(ctx, s.DB, ownerAuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRequestNotFound
		}
		return nil, nil, err
	}

	dog, err := repo.GetDogAny(ctx, s.DB, req.DogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDogNotFound
		}
		return nil, nil, err
	}
	if dog.PostedBy != owner.ID {
		return nil, nil, ErrNotDogOwner
	}
	if req.Terminal() {
		return nil, nil, ErrRequestClosed
	}

	if err := repo.UpdateRequestStatus(ctx, s.DB, requestID, newStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRequestNotFound
		}
		return nil, nil, err
	}
	req.Status = newStatus

	var updatedDog *domain.Dog
	if newStatus == domain.RequestApproved && dog.Status == domain.DogAvailable {
		moved, err := repo.UpdateDogStatusFrom(ctx, s.DB, dog.ID, domain.DogAvailable, domain.DogPending)
		switch {
		case err != nil:
			// Best-effort cascade: the approval already succeeded.
			log.Warn().Err(err).
				Str("dog_id", dog.ID).
				Str("request_id", requestID).
				Msg("dog status cascade failed after approval")
		case moved:
			dog.Status = domain.DogPending
			updatedDog = dog
		}
	}
	return req, updatedDog, nil
}

// dogSummary projects a Dog row into the compact form embedded in request
// list items.
func dogSummary(d domain.Dog) RequestDogSummary {
	return RequestDogSummary{
		ID:     d.ID,
		Name:   d.Name,
		Area:   d.Area,
		Images: d.Images,
		Status: d.Status,
	}
}
