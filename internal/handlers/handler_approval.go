package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// approvalHandler serves the signup review functions.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvc
	posthog         *utils.PosthogClientWrapper
}

func newApprovalHandler(as portssvc.ApprovalSvc, ph *utils.PosthogClientWrapper) *approvalHandler {
	return &approvalHandler{approvalService: as, posthog: ph}
}

// RegisterApprovalRoutes registers the approve and reject functions on a group
// that already runs AuthMiddleware and CallerMiddleware.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvc, ph *utils.PosthogClientWrapper) {
	h := newApprovalHandler(approvalService, ph)

	rg.POST("/approve-admin", h.approveAdmin)
	rg.POST("/approve-volunteer", h.approveVolunteer)
	rg.POST("/reject-admin", h.rejectAdmin)
	rg.POST("/reject-volunteer", h.rejectVolunteer)
}

type reviewFunc func(ctx context.Context, caller domain.Caller, requestID string) error

// review binds {request_id}, runs fn and answers {message} or {error}.
func (h *approvalHandler) review(c *gin.Context, fn reviewFunc, event string, success string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid review request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "request_id is required and must be a UUID"})
		return
	}

	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), caller, req.RequestID); err != nil {
		respondError(c, err, "Failed to process request")
		return
	}

	logger.Info(success, slog.String("request_id", req.RequestID))
	middleware.TrackEvent(c, h.posthog, event, map[string]any{"request_id": req.RequestID})
	c.JSON(http.StatusOK, dto.MessageResponse{Message: success})
}

// approveAdmin godoc
// @Summary Approve an admin signup request
// @Description Creates or promotes the applicant's account, creates the agency when needed and marks the request approved. Superadmin only.
// @Tags functions
// @Accept  json
// @Produce  json
// @Param   request body dto.ReviewRequest true "Request to approve"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /functions/v1/approve-admin [post]
func (h *approvalHandler) approveAdmin(c *gin.Context) {
	h.review(c, h.approvalService.ApproveAdminRequest, "admin_request_approved", "Admin request approved")
}

// approveVolunteer godoc
// @Summary Approve a volunteer signup request
// @Description Creates or promotes the applicant's account as a volunteer of the requested agency. Admin of that agency or superadmin.
// @Tags functions
// @Accept  json
// @Produce  json
// @Param   request body dto.ReviewRequest true "Request to approve"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /functions/v1/approve-volunteer [post]
func (h *approvalHandler) approveVolunteer(c *gin.Context) {
	h.review(c, h.approvalService.ApproveVolunteerRequest, "volunteer_request_approved", "Volunteer request approved")
}

// rejectAdmin godoc
// @Summary Reject an admin signup request
// @Tags functions
// @Accept  json
// @Produce  json
// @Param   request body dto.ReviewRequest true "Request to reject"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /functions/v1/reject-admin [post]
func (h *approvalHandler) rejectAdmin(c *gin.Context) {
	h.review(c, h.approvalService.RejectAdminRequest, "admin_request_rejected", "Admin request rejected")
}

// rejectVolunteer godoc
// @Summary Reject a volunteer signup request
// @Tags functions
// @Accept  json
// @Produce  json
// @Param   request body dto.ReviewRequest true "Request to reject"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /functions/v1/reject-volunteer [post]
func (h *approvalHandler) rejectVolunteer(c *gin.Context) {
	h.review(c, h.approvalService.RejectVolunteerRequest, "volunteer_request_rejected", "Volunteer request rejected")
}
