package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// FinanceReader defines read operations for financial transactions
type FinanceReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)
	ListTransactions(ctx context.Context, agencyID string, filter domain.TransactionFilter) ([]domain.FinancialTransaction, error)

	// SumByCategory totals the agency's transactions in [from, to) per kind and category.
	SumByCategory(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.CategoryTotal, error)
}

// FinanceWriter defines write operations for financial transactions
type FinanceWriter interface {
	SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// FinanceRepositoryFacade combines all finance-related repository interfaces
type FinanceRepositoryFacade interface {
	FinanceReader
	FinanceWriter
}
