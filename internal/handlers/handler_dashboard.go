package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Agency overview
// @Description Article counts per status, open and overdue loans, beneficiaries, donors and the month's money.
// @Tags dashboard
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Success 200 {object} domain.DashboardStats
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	stats, err := h.dashboardService.GetDashboard(c.Request.Context(), caller, c.Query("agency_id"))
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
