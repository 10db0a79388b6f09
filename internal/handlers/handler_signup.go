package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// signupHandler accepts public signup requests and lists pending ones for reviewers.
type signupHandler struct {
	signupService portssvc.SignupSvc
}

// registerPublicSignupRoutes registers the unauthenticated submission routes.
func registerPublicSignupRoutes(rg *gin.RouterGroup, signupService portssvc.SignupSvc, limit gin.HandlerFunc) {
	h := &signupHandler{signupService: signupService}

	signup := rg.Group("/signup", limit)
	{
		signup.POST("/admin", h.submitAdmin)
		signup.POST("/volunteer", h.submitVolunteer)
	}
}

func registerSignupReviewRoutes(rg *gin.RouterGroup, signupService portssvc.SignupSvc) {
	h := &signupHandler{signupService: signupService}
	rg.GET("/signup-requests", h.listPending)
}

// submitAdmin godoc
// @Summary Ask for an admin account
// @Description Creates a pending request a superadmin will review.
// @Tags signup
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateAdminSignupRequest true "Applicant"
// @Success 201 {object} domain.AdminSignupRequest
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/signup/admin [post]
func (h *signupHandler) submitAdmin(c *gin.Context) {
	var req dto.CreateAdminSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	request, err := h.signupService.SubmitAdminRequest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit request")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// submitVolunteer godoc
// @Summary Ask to volunteer for an agency
// @Description Creates a pending request the agency admin will review.
// @Tags signup
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateVolunteerSignupRequest true "Applicant"
// @Success 201 {object} domain.VolunteerSignupRequest
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/signup/volunteer [post]
func (h *signupHandler) submitVolunteer(c *gin.Context) {
	var req dto.CreateVolunteerSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	request, err := h.signupService.SubmitVolunteerRequest(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit request")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// listPending godoc
// @Summary Pending signup requests the caller may review
// @Tags signup
// @Produce  json
// @Success 200 {object} dto.PendingRequestsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/signup-requests [get]
func (h *signupHandler) listPending(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	resp, err := h.signupService.ListPendingRequests(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}
