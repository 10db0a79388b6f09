package dto

import (
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records income or an expense.
type CreateTransactionRequest struct {
	Kind            domain.TransactionKind `json:"kind" binding:"required,txnkind"`
	Amount          decimal.Decimal        `json:"amount"`
	Category        string                 `json:"category" binding:"required,max=100"`
	Description     string                 `json:"description"`
	DonorID         *string                `json:"donorID" binding:"omitempty,uuid"`
	TransactionDate *time.Time             `json:"transactionDate"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Kind  *domain.TransactionKind `form:"kind" binding:"omitempty,txnkind"`
	From  *time.Time              `form:"from" time_format:"2006-01-02"`
	To    *time.Time              `form:"to" time_format:"2006-01-02"`
	Limit int                     `form:"limit,default=100" binding:"min=1,max=500"`
}

// SummaryParams selects the period of a finance summary. Defaults to the current month.
type SummaryParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.FinancialTransaction `json:"transactions"`
}
