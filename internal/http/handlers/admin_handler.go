// Admin HTTP handlers.
//
// This file exposes the moderation surface, all behind RequireAdmin:
//   - GET   /admin/reports               (paginated, enriched queue)
//   - PATCH /admin/reports/{id}          (action dispatch)
//   - GET   /admin/dogs                  (listing incl. hidden/deleted)
//   - PATCH /admin/dogs/{id}/visibility  (hide / unhide / soft-delete)
//   - PATCH /admin/dogs/{id}/status      (direct status override)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawpal/pawpal-backend/internal/utils"
)

// Report-queue page bounds.
const (
	defaultReportLimit = 50
	maxReportLimit     = 100
)

// ActionReportRequest is the JSON payload for acting on a report.
type ActionReportRequest struct {
	Action string         `json:"action" binding:"required,oneof=hide-dog unhide-dog soft-delete-dog override-status dismiss"`
	Notes  *string        `json:"notes" binding:"omitempty,max=500"`
	Meta   map[string]any `json:"meta"`
}

// DogVisibilityRequest selects a visibility operation.
type DogVisibilityRequest struct {
	Op string `json:"op" binding:"required,oneof=hide unhide soft-delete"`
}

// DogStatusOverrideRequest carries the forced status value.
type DogStatusOverrideRequest struct {
	Status string `json:"status" binding:"required,oneof=available pending adopted"`
}

// ListReports godoc
// @ID          listReports
// @Summary     Report queue
// @Description One page of reports, optionally filtered by status, each enriched with dog and reporter summaries.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false "open|actioned|dismissed"
// @Param       limit   query  int     false "Page size"  default(50) maximum(100)
// @Param       offset  query  int     false "Page offset" minimum(0)
//
// @Success     200  {object}  handlers.ListEnvelope
// @Failure     403  {object}  handlers.ErrorEnvelope  "Admin role required"
// @Router      /admin/reports [get]
func (h *Handlers) ListReports(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", "open", "actioned", "dismissed":
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be open, actioned or dismissed")
		return
	}
	limit := utils.ClampLimit(utils.AtoiDefault(c.Query("limit"), defaultReportLimit), defaultReportLimit, maxReportLimit)
	offset := utils.ClampOffset(utils.AtoiDefault(c.Query("offset"), 0))

	items, total, err := h.Moderation.ListReports(c.Request.Context(), status, limit, offset)
	if err != nil {
		svcError(c, err)
		return
	}
	okList(c, items, limit, offset, total)
}

// ActionReport godoc
// @ID          actionReport
// @Summary     Act on a report
// @Description Dispatches one moderation action against the report's target and appends it to the moderation log. override-status requires meta.status.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "Report ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ActionReportRequest  true  "Action payload"
//
// @Success     200  {object}  map[string]any
// @Failure     400  {object}  handlers.ErrorEnvelope  "Unknown action / missing meta.status"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Report not found"
// @Router      /admin/reports/{id} [patch]
func (h *Handlers) ActionReport(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report id must be a UUID")
		return
	}

	var req ActionReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid action payload", err.Error())
		return
	}

	report, action, err := h.Moderation.ActionReport(c.Request.Context(), cl.AuthUserID, id, req.Action, req.Notes, req.Meta)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "report": report, "action": action})
}

// AdminListDogs godoc
// @ID          adminListDogs
// @Summary     List dogs (moderation view)
// @Description The public listing query plus include_hidden / include_deleted flags; status defaults to no filter here.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       include_hidden   query  bool  false "Include hidden listings"
// @Param       include_deleted  query  bool  false "Include soft-deleted listings"
//
// @Success     200  {object}  handlers.ListEnvelope
// @Router      /admin/dogs [get]
func (h *Handlers) AdminListDogs(c *gin.Context) {
	f := dogFilterFromQuery(c)
	// The admin view sees every status unless one was asked for explicitly.
	if c.Query("status") == "" {
		f.Status = ""
	}
	f.IncludeHidden = c.Query("include_hidden") == "true"
	f.IncludeDeleted = c.Query("include_deleted") == "true"

	items, total, err := h.Dogs.List(c.Request.Context(), f)
	if err != nil {
		svcError(c, err)
		return
	}
	okList(c, items, f.Limit, f.Offset, total)
}

// SetDogVisibility godoc
// @ID          setDogVisibility
// @Summary     Change a listing's visibility
// @Description hide and unhide toggle the reversible moderation flag; soft-delete stamps deleted_at. Every operation is appended to the moderation log.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "Dog ID (UUID)"  format(uuid)
// @Param       body  body  handlers.DogVisibilityRequest  true  "Visibility op"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Dog not found"
// @Router      /admin/dogs/{id}/visibility [patch]
func (h *Handlers) SetDogVisibility(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dog id must be a UUID")
		return
	}

	var req DogVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "op must be hide, unhide or soft-delete")
		return
	}

	var err error
	switch req.Op {
	case "hide":
		err = h.Moderation.HideDog(c.Request.Context(), cl.AuthUserID, id)
	case "unhide":
		err = h.Moderation.UnhideDog(c.Request.Context(), cl.AuthUserID, id)
	case "soft-delete":
		err = h.Moderation.SoftDeleteDog(c.Request.Context(), cl.AuthUserID, id)
	}
	if err != nil {
		svcError(c, err)
		return
	}
	noContent(c)
}

// OverrideDogStatus godoc
// @ID          overrideDogStatus
// @Summary     Force a listing's lifecycle status
// @Description Sets the dog's status directly, bypassing the adoption flow. Appended to the moderation log.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "Dog ID (UUID)"  format(uuid)
// @Param       body  body  handlers.DogStatusOverrideRequest  true  "Target status"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Dog not found"
// @Router      /admin/dogs/{id}/status [patch]
func (h *Handlers) OverrideDogStatus(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dog id must be a UUID")
		return
	}

	var req DogStatusOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidStatus, "status must be available, pending or adopted")
		return
	}

	if err := h.Moderation.OverrideDogStatus(c.Request.Context(), cl.AuthUserID, id, req.Status); err != nil {
		svcError(c, err)
		return
	}
	noContent(c)
}
