package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/i18n"
	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

// LeadHandler accepts inquiries from the public site.
type LeadHandler struct {
	leads service.LeadService
	audit middleware.LogSink
}

// NewLeadHandler creates a lead handler. audit may be nil.
func NewLeadHandler(leads service.LeadService, audit middleware.LogSink) *LeadHandler {
	return &LeadHandler{leads: leads, audit: audit}
}

// Submit handles POST /api/leads requests.
//
// @Summary      Submit an inquiry
// @Description  Stores a customer inquiry and returns its reference. Supports idempotency via Idempotency-Key header.
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Accept-Language header string false "Response language" Enums(en, pt, nl)
// @Param        request body dto.LeadRequest true "Inquiry"
// @Success      201 {object} dto.SuccessResponse{data=dto.LeadResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid inquiry"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/leads [post]
func (h *LeadHandler) Submit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.LeadRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	lead, err := h.leads.Submit(c.Request.Context(), *req, i18n.GetLocale(c))
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionLeadSubmitted, "lead rejected", err, map[string]any{
			"package_id": req.PackageID,
		})
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionLeadSubmitted, "lead received", map[string]any{
		"reference":  lead.Reference,
		"package_id": lead.PackageID,
	})

	builder.SuccessWithMessage(http.StatusCreated, dto.LeadResponse{
		Reference: lead.Reference,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
	}, i18n.SuccessKeyLeadReceived)
}
