package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// LoanReader defines read operations for loans and their article links
type LoanReader interface {
	// FindLoanByID retrieves a loan. Inside a transaction the row is locked until commit.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanArticles returns every LoanArticle row of the loan, returned or not.
	FindLoanArticles(ctx context.Context, loanID string) ([]domain.LoanArticle, error)

	// ListLoans retrieves a page of the agency's loans, newest first.
	ListLoans(ctx context.Context, agencyID string, filter domain.LoanFilter, now time.Time) ([]domain.Loan, *string, error)
}

// LoanWriter defines write operations for loans
type LoanWriter interface {
	// SaveLoan persists a new loan together with its article links.
	SaveLoan(ctx context.Context, loan domain.Loan, articles []domain.LoanArticle) error

	// UpdateLoan writes notes, contract flag, closure fields and audit fields.
	// Only loan settlement calls it; closure is never edited directly.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoanDetails writes the editable fields (expected return date, contract flag, notes)
	// and audit fields. The closure columns are left as they are.
	UpdateLoanDetails(ctx context.Context, loan domain.Loan) error

	// CloseLoanArticle records the return of one article. Already-closed rows are left untouched
	// and reported as ErrConflict.
	CloseLoanArticle(ctx context.Context, article domain.LoanArticle) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
