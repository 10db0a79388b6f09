package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// profileHandler serves the caller's own profile and agency information.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := &profileHandler{profileService: profileService}

	rg.GET("/me", h.getMe)
	agencies := rg.Group("/agencies")
	{
		agencies.GET("", h.listAgencies)
		agencies.GET("/:agency_id", h.getAgency)
		agencies.GET("/:agency_id/members", h.listMembers)
	}
}

// getMe godoc
// @Summary Current user
// @Tags profile
// @Produce  json
// @Success 200 {object} dto.MeResponse
// @Security BearerAuth
// @Router /api/v1/me [get]
func (h *profileHandler) getMe(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	me, err := h.profileService.GetMe(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, me)
}

// listAgencies godoc
// @Summary List agencies
// @Description Superadmins see every agency, other users only their own.
// @Tags agencies
// @Produce  json
// @Success 200 {object} dto.ListAgenciesResponse
// @Security BearerAuth
// @Router /api/v1/agencies [get]
func (h *profileHandler) listAgencies(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	agencies, err := h.profileService.ListAgencies(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list agencies")
		return
	}
	c.JSON(http.StatusOK, dto.ListAgenciesResponse{Agencies: agencies})
}

// getAgency godoc
// @Summary Get an agency
// @Tags agencies
// @Produce  json
// @Param   agency_id path string true "Agency ID"
// @Success 200 {object} domain.Agency
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/agencies/{agency_id} [get]
func (h *profileHandler) getAgency(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	agency, err := h.profileService.GetAgency(c.Request.Context(), caller, c.Param("agency_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve agency")
		return
	}
	c.JSON(http.StatusOK, agency)
}

// listMembers godoc
// @Summary Members of an agency
// @Tags agencies
// @Produce  json
// @Param   agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListProfilesResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/agencies/{agency_id}/members [get]
func (h *profileHandler) listMembers(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	profiles, err := h.profileService.ListAgencyMembers(c.Request.Context(), caller, c.Param("agency_id"))
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ListProfilesResponse{Profiles: profiles})
}
