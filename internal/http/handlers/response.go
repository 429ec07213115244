// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including structured error envelopes, consistent JSON serialization, and
// helpers for common HTTP patterns. The goal is to guarantee uniform responses
// for both success and failure cases, making the API predictable and
// machine-friendly.
//
// Conventions:
//   - Every response carries a boolean `ok` discriminator.
//   - All error responses return an ErrorEnvelope with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `ok()`, `okList()` and `noContent()` simplify writing success responses
//     in a consistent shape across handlers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "ok": false,
//	  "error": {
//	    "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	    "code": "not_found",
//	    "message": "dog not found"
//	  }
//	}
//
// Example list response:
//
//	HTTP/1.1 200 OK
//	{ "ok": true, "items": [...], "page": { "limit": 24, "offset": 0, "total": 7 } }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawpal/pawpal-backend/internal/http/middleware"
)

// ErrorBody is the inner error object of the error envelope.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, used to correlate
//     server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable error description, safe for display to users.
//   - Details: optional structured context, e.g. field-level validation hints.
type ErrorBody struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"dog not found"`
	// Optional structured context
	Details any `json:"details,omitempty"`
}

// ErrorEnvelope is the standard error envelope returned by all endpoints.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorEnvelope struct {
	OK    bool      `json:"ok" example:"false"`
	Error ErrorBody `json:"error"`
}

// Page carries pagination metadata on list responses.
type Page struct {
	Limit  int   `json:"limit" example:"24"`
	Offset int   `json:"offset" example:"0"`
	Total  int64 `json:"total" example:"7"`
}

// ListEnvelope is the standard list envelope: items plus a page block.
type ListEnvelope struct {
	OK    bool `json:"ok" example:"true"`
	Items any  `json:"items"`
	Page  Page `json:"page"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorEnvelope, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, code, msg, nil)
}

// failWith is fail with an optional details payload.
func failWith(c *gin.Context, status int, code, msg string, details any) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorEnvelope{
		Error: ErrorBody{
			RequestID: reqID,
			Code:      code,
			Message:   msg,
			Details:   details,
		},
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
//
// body must be a map or struct; the `ok:true` discriminator is merged in by
// convention on the body types themselves (see the handler response structs),
// or via gin.H literals.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// okList writes the standard list envelope.
func okList(c *gin.Context, items any, limit, offset int, total int64) {
	c.JSON(http.StatusOK, ListEnvelope{
		OK:    true,
		Items: items,
		Page:  Page{Limit: limit, Offset: offset, Total: total},
	})
}

// noContent writes an HTTP 204 No Content response.
//
// Used when the operation succeeds but there is no response body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
