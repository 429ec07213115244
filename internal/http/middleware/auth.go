// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-credential authentication in three strengths:
//
//   - OptionalAuth verifies a token when one is presented and attaches the
//     caller, but never blocks the request.
//   - RequireAuth rejects requests without a valid token with 401.
//   - RequireAdmin rejects non-admin callers with 403; it expects
//     RequireAuth earlier in the chain.
//
// The verified caller is attached to the Gin context once, as an immutable
// value; handlers read it through CallerFrom and never mutate it. UserID and
// Role are filled in when the external identity already has an internal user
// row; for brand-new identities they stay empty until the bootstrap endpoint
// creates the row.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawpal/pawpal-backend/internal/auth"
)

// ctxKeyCaller is the Gin context key under which the Caller value is stored.
const ctxKeyCaller = "caller"

// Caller is the verified identity of the requester. AuthUserID always comes
// from the token; UserID and Role come from the internal user row and are
// empty when that row does not exist yet.
type Caller struct {
	AuthUserID string
	Email      string
	Name       string
	UserID     string
	Role       string
}

// UserResolver looks up the internal user row for an external identity.
// It returns ("", "", nil) when no row exists; errors are treated as
// "no row" so a degraded lookup never blocks authentication.
type UserResolver func(ctx context.Context, authUserID string) (userID, role string, err error)

// CallerFrom returns the Caller attached by the auth middleware and whether
// one is present.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(ctxKeyCaller)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// attachCaller verifies the presented token and, on success, stores the
// Caller value plus the "userID" context key consumed by the rate-limit
// key function and the access logger. Returns false when no valid token
// was presented.
func attachCaller(c *gin.Context, v auth.IdentityVerifier, resolve UserResolver) bool {
	token := bearerToken(c)
	if token == "" {
		return false
	}
	id, err := v.Verify(token)
	if err != nil {
		return false
	}

	caller := Caller{
		AuthUserID: id.AuthUserID,
		Email:      id.Email,
		Name:       id.Name,
	}
	if resolve != nil {
		if userID, role, err := resolve(c.Request.Context(), id.AuthUserID); err == nil {
			caller.UserID = userID
			caller.Role = role
		}
	}

	c.Set(ctxKeyCaller, caller)
	if caller.UserID != "" {
		c.Set("userID", caller.UserID)
	} else {
		c.Set("userID", caller.AuthUserID)
	}
	return true
}

// OptionalAuth attaches the caller when a valid bearer token is presented
// and passes the request through unchanged otherwise. Invalid tokens are
// treated as anonymous rather than rejected, so public endpoints keep
// working for clients with expired credentials.
func OptionalAuth(v auth.IdentityVerifier, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		attachCaller(c, v, resolve)
		c.Next()
	}
}

// RequireAuth rejects requests lacking a valid bearer token with 401 and
// the standard error envelope.
func RequireAuth(v auth.IdentityVerifier, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !attachCaller(c, v, resolve) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errEnvelope(c, "unauthorized", "missing or invalid credentials"))
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role. It must run after
// RequireAuth; an absent caller is treated as unauthorized rather than
// panicking.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errEnvelope(c, "unauthorized", "missing or invalid credentials"))
			return
		}
		if caller.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, errEnvelope(c, "forbidden", "admin role required"))
			return
		}
		c.Next()
	}
}

// errEnvelope builds the standard error envelope body emitted by middleware.
// It mirrors the handlers package's ErrorEnvelope without importing it
// (handlers depends on middleware, not the other way around).
func errEnvelope(c *gin.Context, code, msg string) gin.H {
	return gin.H{
		"ok": false,
		"error": gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       code,
			"message":    msg,
		},
	}
}
