package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func registerFinanceRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := &financeHandler{financeService: financeService}

	finance := rg.Group("/finance")
	{
		finance.POST("/transactions", h.createTransaction)
		finance.GET("/transactions", h.listTransactions)
		finance.DELETE("/transactions/:transaction_id", h.deleteTransaction)
		finance.GET("/summary", h.summary)
	}
}

// createTransaction godoc
// @Summary Record income or an expense
// @Description Admins only. The amount must be positive and is rounded to cents.
// @Tags finance
// @Accept  json
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} domain.FinancialTransaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/finance/transactions [post]
func (h *financeHandler) createTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	txn, err := h.financeService.CreateTransaction(c.Request.Context(), caller, c.Query("agency_id"), req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// listTransactions godoc
// @Summary List transactions
// @Tags finance
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   kind query string false "income or expense"
// @Param   from query string false "First day (YYYY-MM-DD)"
// @Param   to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param   limit query int false "Limit" default(100)
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /api/v1/finance/transactions [get]
func (h *financeHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	txns, err := h.financeService.ListTransactions(c.Request.Context(), caller, c.Query("agency_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags finance
// @Param   transaction_id path string true "Transaction ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/finance/transactions/{transaction_id} [delete]
func (h *financeHandler) deleteTransaction(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.financeService.DeleteTransaction(c.Request.Context(), caller, c.Param("transaction_id")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// summary godoc
// @Summary Totals per kind and category
// @Description Defaults to the current month.
// @Tags finance
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   from query string false "First day (YYYY-MM-DD)"
// @Param   to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} domain.FinanceSummary
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/finance/summary [get]
func (h *financeHandler) summary(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var from, to time.Time
	if params.From != nil {
		from = *params.From
	}
	if params.To != nil {
		to = params.To.AddDate(0, 0, 1)
	}
	summary, err := h.financeService.Summary(c.Request.Context(), caller, c.Query("agency_id"), from, to)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
