package services

import (
	"context"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

// LoanReturnSvc closes loan articles and re-derives loan closure.
// Each operation runs in a single transaction.
type LoanReturnSvc interface {
	// QuickReturn closes every open article with the same condition (good when state is nil).
	QuickReturn(ctx context.Context, caller domain.Caller, loanID string, state *domain.ArticleState) (*domain.LoanWithArticles, error)

	// FullReturn closes every open article; entries must cover all of them.
	FullReturn(ctx context.Context, caller domain.Caller, loanID string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error)

	// PartialReturn closes the selected open articles on returnDate.
	PartialReturn(ctx context.Context, caller domain.Caller, loanID string, returnDate time.Time, selected []string, entries []domain.ReturnEntry) (*domain.LoanWithArticles, error)
}

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, caller domain.Caller, loanID string) (*domain.LoanWithArticles, error)
	ListLoans(ctx context.Context, caller domain.Caller, agencyID string, params dto.ListLoansParams) (*dto.ListLoansResponse, error)
}

// LoanWriterSvc defines write operations for loans
type LoanWriterSvc interface {
	CreateLoan(ctx context.Context, caller domain.Caller, agencyID string, req dto.CreateLoanRequest) (*domain.LoanWithArticles, error)
	UpdateLoan(ctx context.Context, caller domain.Caller, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
	LoanReturnSvc
}
