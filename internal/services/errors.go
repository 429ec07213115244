// Package services defines the business logic for the PawPal marketplace:
// dog listings, the adoption-request lifecycle, moderation, and user
// bootstrap. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Identity-related errors.
var (
	// ErrUserNotFound indicates that the caller's auth identity has no
	// internal user row yet (the bootstrap endpoint creates one).
	ErrUserNotFound = errors.New("user not found")
)

// Listing-related errors.
var (
	// ErrDogNotFound indicates that the requested listing does not exist,
	// is hidden, or has been soft-deleted.
	ErrDogNotFound = errors.New("dog not found")
)

// Adoption-lifecycle errors.
var (
	// ErrOwnDog is returned when a caretaker tries to file an adoption
	// request against their own listing.
	ErrOwnDog = errors.New("cannot request adoption of your own dog")

	// ErrDuplicateRequest is returned when the adopter already has a
	// pending request for the same dog.
	ErrDuplicateRequest = errors.New("a pending request for this dog already exists")

	// ErrRequestNotFound indicates that the adoption request does not exist.
	ErrRequestNotFound = errors.New("adoption request not found")

	// ErrNotDogOwner is returned when a caller attempts to transition a
	// request on a dog they did not post.
	ErrNotDogOwner = errors.New("only the dog's caretaker can update this request")

	// ErrRequestClosed is returned when a transition is attempted on a
	// request that already reached a terminal state.
	ErrRequestClosed = errors.New("request is already closed")

	// ErrInvalidStatus is returned when a status value is outside the
	// allowed transition set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Moderation errors.
var (
	// ErrReportNotFound indicates that the report does not exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrNotAdmin is returned when a non-admin attempts a moderation action.
	ErrNotAdmin = errors.New("admin role required")

	// ErrUnknownAction is returned for an action tag outside the dispatch set.
	ErrUnknownAction = errors.New("unknown moderation action")

	// ErrStatusMetaRequired is returned when an override-status action is
	// missing meta.status.
	ErrStatusMetaRequired = errors.New("meta.status is required for override-status")
)
