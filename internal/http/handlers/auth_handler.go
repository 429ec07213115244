// Auth bootstrap handler.
//
// POST /auth/bootstrap-user creates the internal user row for a verified
// external identity on first login (or returns the existing row). The
// auth linkage is immutable once created.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BootstrapUserRequest optionally overrides the profile fields seeded from
// the token claims.
type BootstrapUserRequest struct {
	Name  string `json:"name" binding:"omitempty,max=120"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
}

// BootstrapUser godoc
// @ID          bootstrapUser
// @Summary     Create-or-fetch the caller's user row
// @Description Idempotent bootstrap: returns the internal user for the verified identity, creating it with the adopter role on first call. Token claims seed name/email; the body may override them.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.BootstrapUserRequest  false  "Profile overrides"
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorEnvelope  "Missing credentials"
// @Router      /auth/bootstrap-user [post]
func (h *Handlers) BootstrapUser(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	var req BootstrapUserRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid bootstrap payload", err.Error())
			return
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = cl.Name
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = cl.Email
	}

	u, err := h.Users.Ensure(c.Request.Context(), cl.AuthUserID, name, email)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "user": u})
}
