package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type donorHandler struct {
	donorService portssvc.DonorSvcFacade
}

func registerDonorRoutes(rg *gin.RouterGroup, donorService portssvc.DonorSvcFacade) {
	h := &donorHandler{donorService: donorService}

	donors := rg.Group("/donors")
	{
		donors.POST("", h.createDonor)
		donors.GET("", h.listDonors)
		donors.GET("/:donor_id", h.getDonor)
		donors.PATCH("/:donor_id", h.updateDonor)
		donors.DELETE("/:donor_id", h.deleteDonor)
	}
}

// createDonor godoc
// @Summary Register a donor
// @Tags donors
// @Accept  json
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   donor body dto.CreateDonorRequest true "Donor details"
// @Success 201 {object} domain.Donor
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/donors [post]
func (h *donorHandler) createDonor(c *gin.Context) {
	var req dto.CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	donor, err := h.donorService.CreateDonor(c.Request.Context(), caller, c.Query("agency_id"), req)
	if err != nil {
		respondError(c, err, "Failed to create donor")
		return
	}
	c.JSON(http.StatusCreated, donor)
}

// getDonor godoc
// @Summary Get a donor
// @Tags donors
// @Produce  json
// @Param   donor_id path string true "Donor ID"
// @Success 200 {object} domain.Donor
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/donors/{donor_id} [get]
func (h *donorHandler) getDonor(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	donor, err := h.donorService.GetDonor(c.Request.Context(), caller, c.Param("donor_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve donor")
		return
	}
	c.JSON(http.StatusOK, donor)
}

// listDonors godoc
// @Summary List donors
// @Tags donors
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   search query string false "Matches name or email"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListDonorsResponse
// @Security BearerAuth
// @Router /api/v1/donors [get]
func (h *donorHandler) listDonors(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	list, err := h.donorService.ListDonors(c.Request.Context(), caller, c.Query("agency_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list donors")
		return
	}
	c.JSON(http.StatusOK, dto.ListDonorsResponse{Donors: list})
}

// updateDonor godoc
// @Summary Update a donor
// @Tags donors
// @Accept  json
// @Produce  json
// @Param   donor_id path string true "Donor ID"
// @Param   donor body dto.UpdateDonorRequest true "Fields to change"
// @Success 200 {object} domain.Donor
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/donors/{donor_id} [patch]
func (h *donorHandler) updateDonor(c *gin.Context) {
	var req dto.UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	donor, err := h.donorService.UpdateDonor(c.Request.Context(), caller, c.Param("donor_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update donor")
		return
	}
	c.JSON(http.StatusOK, donor)
}

// deleteDonor godoc
// @Summary Delete a donor
// @Tags donors
// @Param   donor_id path string true "Donor ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Donor is referenced by articles or transactions"
// @Security BearerAuth
// @Router /api/v1/donors/{donor_id} [delete]
func (h *donorHandler) deleteDonor(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.donorService.DeleteDonor(c.Request.Context(), caller, c.Param("donor_id")); err != nil {
		respondError(c, err, "Failed to delete donor")
		return
	}
	c.Status(http.StatusNoContent)
}
