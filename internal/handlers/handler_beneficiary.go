package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := &beneficiaryHandler{beneficiaryService: beneficiaryService}

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.GET("/:beneficiary_id", h.getBeneficiary)
		beneficiaries.PATCH("/:beneficiary_id", h.updateBeneficiary)
		beneficiaries.DELETE("/:beneficiary_id", h.deleteBeneficiary)
	}
}

// createBeneficiary godoc
// @Summary Register a beneficiary
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   beneficiary body dto.CreateBeneficiaryRequest true "Beneficiary details"
// @Success 201 {object} domain.Beneficiary
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/beneficiaries [post]
func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), caller, c.Query("agency_id"), req)
	if err != nil {
		respondError(c, err, "Failed to create beneficiary")
		return
	}
	c.JSON(http.StatusCreated, b)
}

// getBeneficiary godoc
// @Summary Get a beneficiary
// @Tags beneficiaries
// @Produce  json
// @Param   beneficiary_id path string true "Beneficiary ID"
// @Success 200 {object} domain.Beneficiary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/beneficiaries/{beneficiary_id} [get]
func (h *beneficiaryHandler) getBeneficiary(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.GetBeneficiary(c.Request.Context(), caller, c.Param("beneficiary_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve beneficiary")
		return
	}
	c.JSON(http.StatusOK, b)
}

// listBeneficiaries godoc
// @Summary List beneficiaries
// @Tags beneficiaries
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   search query string false "Matches name, email or phone"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListBeneficiariesResponse
// @Security BearerAuth
// @Router /api/v1/beneficiaries [get]
func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	list, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), caller, c.Query("agency_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list beneficiaries")
		return
	}
	c.JSON(http.StatusOK, dto.ListBeneficiariesResponse{Beneficiaries: list})
}

// updateBeneficiary godoc
// @Summary Update a beneficiary
// @Tags beneficiaries
// @Accept  json
// @Produce  json
// @Param   beneficiary_id path string true "Beneficiary ID"
// @Param   beneficiary body dto.UpdateBeneficiaryRequest true "Fields to change"
// @Success 200 {object} domain.Beneficiary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/beneficiaries/{beneficiary_id} [patch]
func (h *beneficiaryHandler) updateBeneficiary(c *gin.Context) {
	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	b, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), caller, c.Param("beneficiary_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update beneficiary")
		return
	}
	c.JSON(http.StatusOK, b)
}

// deleteBeneficiary godoc
// @Summary Delete a beneficiary
// @Tags beneficiaries
// @Param   beneficiary_id path string true "Beneficiary ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Beneficiary has loans"
// @Security BearerAuth
// @Router /api/v1/beneficiaries/{beneficiary_id} [delete]
func (h *beneficiaryHandler) deleteBeneficiary(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.beneficiaryService.DeleteBeneficiary(c.Request.Context(), caller, c.Param("beneficiary_id")); err != nil {
		respondError(c, err, "Failed to delete beneficiary")
		return
	}
	c.Status(http.StatusNoContent)
}
