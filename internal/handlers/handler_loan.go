package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/SscSPs/loandesk_backend/internal/middleware"
	"github.com/SscSPs/loandesk_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans and their returns.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
	posthog     *utils.PosthogClientWrapper
}

func newLoanHandler(ls portssvc.LoanSvcFacade, ph *utils.PosthogClientWrapper) *loanHandler {
	return &loanHandler{loanService: ls, posthog: ph}
}

// RegisterLoanRoutes registers routes related to loans.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, ph *utils.PosthogClientWrapper) {
	h := newLoanHandler(loanService, ph)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loan_id", h.getLoan)
		loans.PATCH("/:loan_id", h.updateLoan)

		returns := loans.Group("/:loan_id/return")
		returns.POST("/quick", h.quickReturn)
		returns.POST("/full", h.fullReturn)
		returns.POST("/partial", h.partialReturn)
	}
}

// createLoan godoc
// @Summary Create a loan
// @Description Lends available articles to a beneficiary. The articles go on loan in the same transaction.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "An article is not available"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), caller, c.Query("agency_id"), req)
	if err != nil {
		respondError(c, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loans/{loan_id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	loan, err := h.loanService.GetLoan(c.Request.Context(), caller, c.Param("loan_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Description Lists the loans of the caller's agency, newest first.
// @Tags loans
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   status query string false "open, closed or overdue"
// @Param   beneficiaryID query string false "Only loans of this beneficiary"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	resp, err := h.loanService.ListLoans(c.Request.Context(), caller, c.Query("agency_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateLoan godoc
// @Summary Update a loan
// @Description Edits notes, the contract flag or the expected return date.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   loan body dto.UpdateLoanRequest true "Fields to change"
// @Success 200 {object} domain.Loan
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loans/{loan_id} [patch]
func (h *loanHandler) updateLoan(c *gin.Context) {
	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	loan, err := h.loanService.UpdateLoan(c.Request.Context(), caller, c.Param("loan_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// quickReturn godoc
// @Summary Return every article of a loan
// @Description Closes all open articles with one condition (good by default) and closes the loan.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   return body dto.QuickReturnRequest false "Condition of the articles"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Loan already closed"
// @Security BearerAuth
// @Router /api/v1/loans/{loan_id}/return/quick [post]
func (h *loanHandler) quickReturn(c *gin.Context) {
	var req dto.QuickReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	loan, err := h.loanService.QuickReturn(c.Request.Context(), caller, c.Param("loan_id"), req.ReturnState)
	if err != nil {
		respondError(c, err, "Failed to return loan")
		return
	}
	h.trackReturn(c, "quick", loan.Loan.IsClosed(), len(loan.Articles))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// fullReturn godoc
// @Summary Return every article of a loan with its condition
// @Description Entries must cover every article still out.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   return body dto.FullReturnRequest true "Condition per article"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Loan already closed"
// @Security BearerAuth
// @Router /api/v1/loans/{loan_id}/return/full [post]
func (h *loanHandler) fullReturn(c *gin.Context) {
	var req dto.FullReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	loan, err := h.loanService.FullReturn(c.Request.Context(), caller, c.Param("loan_id"), dto.ToReturnEntries(req.Entries))
	if err != nil {
		respondError(c, err, "Failed to return loan")
		return
	}
	h.trackReturn(c, "full", loan.Loan.IsClosed(), len(req.Entries))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// partialReturn godoc
// @Summary Return some articles of a loan
// @Description Closes the selected articles. The loan closes once every article is back.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan_id path string true "Loan ID"
// @Param   return body dto.PartialReturnRequest true "Selected articles and their condition"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loans/{loan_id}/return/partial [post]
func (h *loanHandler) partialReturn(c *gin.Context) {
	var req dto.PartialReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var returnDate time.Time
	if req.ReturnDate != nil {
		returnDate = *req.ReturnDate
	}
	loan, err := h.loanService.PartialReturn(c.Request.Context(), caller, c.Param("loan_id"), returnDate, req.SelectedArticles, dto.ToReturnEntries(req.Entries))
	if err != nil {
		respondError(c, err, "Failed to return articles")
		return
	}
	h.trackReturn(c, "partial", loan.Loan.IsClosed(), len(req.SelectedArticles))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) trackReturn(c *gin.Context, kind string, closed bool, articles int) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan return recorded",
		slog.String("loan_id", c.Param("loan_id")),
		slog.String("kind", kind),
		slog.Bool("closed", closed))
	middleware.TrackEvent(c, h.posthog, "loan_returned", map[string]any{
		"kind":     kind,
		"closed":   closed,
		"articles": articles,
	})
}
