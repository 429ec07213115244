// Adoption-request HTTP handlers.
//
// This file exposes the request lifecycle:
//   - POST  /adoptions           (file a request)
//   - GET   /adoptions/incoming  (caretaker view, contact-gated)
//   - GET   /adoptions/outgoing  (adopter view, contact-gated)
//   - PATCH /adoptions/{id}      (owner-only status transition)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAdoptionRequest is the JSON payload for filing a request.
type CreateAdoptionRequest struct {
	DogID   string  `json:"dog_id" binding:"required,uuid"`
	Message *string `json:"message" binding:"omitempty,max=500"`
}

// UpdateAdoptionRequest is the JSON payload for a status transition.
type UpdateAdoptionRequest struct {
	Status string `json:"status" binding:"required,oneof=approved declined cancelled"`
}

// CreateAdoption godoc
// @ID          createAdoption
// @Summary     File an adoption request
// @Description Files a pending request for a dog. Fails with 403 on the caller's own dog and 409 when a pending request already exists.
// @Tags        Adoptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateAdoptionRequest  true  "Request payload"
//
// @Success     201  {object}  domain.AdoptionRequest
// @Failure     403  {object}  handlers.ErrorEnvelope  "Own dog"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Dog not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Duplicate pending request"
// @Router      /adoptions [post]
func (h *Handlers) CreateAdoption(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	var req CreateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload", err.Error())
		return
	}

	ar, err := h.Adoptions.Create(c.Request.Context(), cl.AuthUserID, req.DogID, req.Message)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true, "request": ar})
}

// ListIncomingAdoptions godoc
// @ID          listIncomingAdoptions
// @Summary     Incoming requests (caretaker view)
// @Description Requests targeting the caller's dogs, newest first. Adopter email/phone stay null until a request is approved.
// @Tags        Adoptions
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  map[string]any
// @Router      /adoptions/incoming [get]
func (h *Handlers) ListIncomingAdoptions(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	items, err := h.Adoptions.ListIncoming(c.Request.Context(), cl.AuthUserID)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "items": items})
}

// ListOutgoingAdoptions godoc
// @ID          listOutgoingAdoptions
// @Summary     Outgoing requests (adopter view)
// @Description Requests the caller filed, newest first. The caretaker contact object is null until a request is approved.
// @Tags        Adoptions
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  map[string]any
// @Router      /adoptions/outgoing [get]
func (h *Handlers) ListOutgoingAdoptions(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	items, err := h.Adoptions.ListOutgoing(c.Request.Context(), cl.AuthUserID)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"ok": true, "items": items})
}

// UpdateAdoption godoc
// @ID          updateAdoption
// @Summary     Transition an adoption request
// @Description Moves a pending request to approved, declined or cancelled. Only the dog's caretaker may transition; terminal requests answer 409. On approval an available dog is moved to pending.
// @Tags        Adoptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateAdoptionRequest  true  "Target status"
//
// @Success     200  {object}  map[string]any
// @Failure     403  {object}  handlers.ErrorEnvelope  "Not the dog's caretaker"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Request not found"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Request already closed"
// @Router      /adoptions/{id} [patch]
func (h *Handlers) UpdateAdoption(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request id must be a UUID")
		return
	}

	var req UpdateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be approved, declined or cancelled", err.Error())
		return
	}

	ar, dog, err := h.Adoptions.UpdateStatus(c.Request.Context(), cl.AuthUserID, id, req.Status)
	if err != nil {
		svcError(c, err)
		return
	}
	// dog is null unless the approval cascade actually moved it.
	ok(c, http.StatusOK, gin.H{"ok": true, "request": ar, "dog": dog})
}
