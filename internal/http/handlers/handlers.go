// Handler wiring and shared helpers.
//
// Handlers are transport-thin: they validate input (gin binding tags plus a
// few manual checks), call application services, and translate results into
// HTTP responses. Service-level sentinel errors are mapped to the HTTP
// taxonomy in one place (svcError) so every endpoint fails the same way.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pawpal/pawpal-backend/internal/http/middleware"
	"github.com/pawpal/pawpal-backend/internal/services"
	"github.com/pawpal/pawpal-backend/internal/storage"
)

// Handlers groups the HTTP endpoints for dogs, adoptions, reports,
// moderation, tags, uploads and user bootstrap.
type Handlers struct {
	Dogs       *services.DogService
	Adoptions  *services.AdoptionService
	Moderation *services.ModerationService
	Users      *services.UserService

	// DB backs aggregate queries done directly at the transport layer
	// (the tags ETag pre-check).
	DB *gorm.DB

	// Blobs stores uploaded media.
	Blobs storage.BlobStore
}

// New constructs a Handlers instance with all services bound to db.
func New(db *gorm.DB, blobs storage.BlobStore) *Handlers {
	return &Handlers{
		Dogs:       &services.DogService{DB: db},
		Adoptions:  &services.AdoptionService{DB: db},
		Moderation: &services.ModerationService{DB: db},
		Users:      &services.UserService{DB: db},
		DB:         db,
		Blobs:      blobs,
	}
}

// caller returns the authenticated caller attached by the auth middleware.
// Routes behind RequireAuth always have one; the bool guards the optional
// routes.
func caller(c *gin.Context) (middleware.Caller, bool) {
	return middleware.CallerFrom(c)
}

// isAdmin reports whether the caller holds the admin role.
func isAdmin(c *gin.Context) bool {
	cl, ok := caller(c)
	return ok && cl.Role == "admin"
}

// svcError translates service sentinel errors into the HTTP taxonomy.
// Unrecognized errors become 500 internal_error (and get logged by fail).
func svcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user, call /auth/bootstrap-user first")
	case errors.Is(err, services.ErrDogNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "dog not found")
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "adoption request not found")
	case errors.Is(err, services.ErrReportNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "report not found")
	case errors.Is(err, services.ErrOwnDog):
		fail(c, http.StatusForbidden, ErrCodeOwnDog, "cannot request adoption of your own dog")
	case errors.Is(err, services.ErrNotDogOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "only the dog's caretaker can update this request")
	case errors.Is(err, services.ErrNotAdmin):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "admin role required")
	case errors.Is(err, services.ErrDuplicateRequest):
		fail(c, http.StatusConflict, ErrCodeConflict, "a pending request for this dog already exists")
	case errors.Is(err, services.ErrRequestClosed):
		fail(c, http.StatusConflict, ErrCodeRequestClosed, "request is already closed")
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeInvalidStatus, "invalid status value")
	case errors.Is(err, services.ErrUnknownAction):
		fail(c, http.StatusBadRequest, ErrCodeUnknownAction, "unknown moderation action")
	case errors.Is(err, services.ErrStatusMetaRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "meta.status is required for override-status")
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("unhandled service error")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
