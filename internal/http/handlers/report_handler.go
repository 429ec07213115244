// Report HTTP handlers.
//
// POST /reports files an abuse report against a dog listing. The admin
// queue and action endpoints live in admin_handler.go.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawpal/pawpal-backend/internal/services"
)

// CreateReportRequest is the JSON payload for filing a report.
type CreateReportRequest struct {
	TargetType  string  `json:"target_type" binding:"omitempty,oneof=dog"`
	TargetID    string  `json:"target_id" binding:"required,uuid"`
	Category    string  `json:"category" binding:"required,oneof=abuse spam wrong-info duplicate other"`
	Message     *string `json:"message" binding:"omitempty,max=500"`
	EvidenceURL *string `json:"evidence_url" binding:"omitempty,url,max=2048"`
}

// CreateReport godoc
// @ID          createReport
// @Summary     File a report
// @Description Files an open report against a dog listing on behalf of the authenticated caller.
// @Tags        Reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateReportRequest  true  "Report payload"
//
// @Success     201  {object}  domain.Report
// @Failure     400  {object}  handlers.ErrorEnvelope  "Validation error"
// @Failure     429  {object}  handlers.ErrorEnvelope  "Submission limit reached"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	cl, authed := caller(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid credentials")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid report payload", err.Error())
		return
	}
	if req.TargetType == "" {
		req.TargetType = "dog"
	}

	report, err := h.Moderation.CreateReport(c.Request.Context(), cl.AuthUserID, services.ReportCreateInput{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Category:    req.Category,
		Message:     req.Message,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"ok": true, "report": report})
}
