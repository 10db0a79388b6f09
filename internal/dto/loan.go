package dto

import (
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// CreateLoanRequest opens a loan for a beneficiary over one or more available articles.
type CreateLoanRequest struct {
	BeneficiaryID      string     `json:"beneficiaryID" binding:"required,uuid"`
	ArticleIDs         []string   `json:"articleIDs" binding:"required,min=1,dive,uuid"`
	LoanDate           *time.Time `json:"loanDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
	ContractSigned     bool       `json:"contractSigned"`
	Notes              string     `json:"notes"`
}

// UpdateLoanRequest edits the free-form parts of a loan.
type UpdateLoanRequest struct {
	Notes              *string    `json:"notes"`
	ContractSigned     *bool      `json:"contractSigned"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status        string  `form:"status" binding:"omitempty,oneof=open closed overdue"`
	BeneficiaryID string  `form:"beneficiaryID"`
	Limit         int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken     *string `form:"nextToken"`
}

// ReturnEntryRequest is the condition reported for one article.
type ReturnEntryRequest struct {
	ArticleID   string              `json:"articleID" binding:"required,uuid"`
	ReturnState domain.ArticleState `json:"returnState" binding:"required,articlestate"`
	Notes       string              `json:"notes"`
}

// QuickReturnRequest closes every open article with one condition.
type QuickReturnRequest struct {
	ReturnState *domain.ArticleState `json:"returnState" binding:"omitempty,articlestate"`
}

// FullReturnRequest closes every open article with a per-article condition.
type FullReturnRequest struct {
	Entries []ReturnEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// PartialReturnRequest closes the selected articles.
type PartialReturnRequest struct {
	ReturnDate       *time.Time           `json:"returnDate"`
	SelectedArticles []string             `json:"selectedArticles" binding:"required,min=1,dive,uuid"`
	Entries          []ReturnEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// LoanResponse is a loan with its articles.
type LoanResponse struct {
	domain.Loan
	Articles []domain.LoanArticle `json:"articles"`
}

// ListLoansResponse wraps a page of loans.
type ListLoansResponse struct {
	Loans     []domain.Loan `json:"loans"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ToReturnEntries converts request entries into domain entries.
func ToReturnEntries(in []ReturnEntryRequest) []domain.ReturnEntry {
	out := make([]domain.ReturnEntry, len(in))
	for i, e := range in {
		out[i] = domain.ReturnEntry{ArticleID: e.ArticleID, State: e.ReturnState, Notes: e.Notes}
	}
	return out
}

// ToLoanResponse flattens a loan and its articles.
func ToLoanResponse(l *domain.LoanWithArticles) LoanResponse {
	articles := l.Articles
	if articles == nil {
		articles = []domain.LoanArticle{}
	}
	return LoanResponse{Loan: l.Loan, Articles: articles}
}
