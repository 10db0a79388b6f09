package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used in loan notes and date-only fields.
const DateLayout = "2006-01-02"

// Loan is one lending transaction to a beneficiary. ActualReturnDate stays nil
// until every LoanArticle of the loan has been returned.
type Loan struct {
	LoanID             string     `json:"loanID" db:"loan_id"`
	AgencyID           string     `json:"agencyID" db:"agency_id"`
	BeneficiaryID      string     `json:"beneficiaryID" db:"beneficiary_id"`
	LoanedBy           string     `json:"loanedBy" db:"loaned_by"`
	LoanDate           time.Time  `json:"loanDate" db:"loan_date"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty" db:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actualReturnDate,omitempty" db:"actual_return_date"`
	ReturnedBy         *string    `json:"returnedBy,omitempty" db:"returned_by"`
	ContractSigned     bool       `json:"contractSigned" db:"contract_signed"`
	Notes              string     `json:"notes" db:"notes"`
	AuditFields
}

// IsClosed reports whether the loan has been fully settled.
func (l Loan) IsClosed() bool {
	return l.ActualReturnDate != nil
}

// IsOverdue reports whether an open loan is past its expected return date.
func (l Loan) IsOverdue(now time.Time) bool {
	return !l.IsClosed() && l.ExpectedReturnDate != nil && l.ExpectedReturnDate.Before(now)
}

// AppendNote adds a line to the loan notes.
func (l *Loan) AppendNote(line string) {
	if strings.TrimSpace(l.Notes) == "" {
		l.Notes = line
		return
	}
	l.Notes = l.Notes + "\n" + line
}

// Settle recomputes loan closure from the current state of all its articles.
// It is the only place ActualReturnDate gets set. It returns true when the loan
// is closed after the call.
func (l *Loan) Settle(articles []LoanArticle, returnedAt time.Time, returnedBy string) bool {
	if !AllReturned(articles) {
		return false
	}
	if l.ActualReturnDate == nil {
		at := returnedAt
		by := returnedBy
		l.ActualReturnDate = &at
		l.ReturnedBy = &by
	}
	return true
}

// LoanArticle links an article to a loan for the duration of that loan.
type LoanArticle struct {
	LoanArticleID string        `json:"loanArticleID" db:"loan_article_id"`
	LoanID        string        `json:"loanID" db:"loan_id"`
	ArticleID     string        `json:"articleID" db:"article_id"`
	ArticleName   string        `json:"articleName" db:"article_name"`
	ReturnedAt    *time.Time    `json:"returnedAt,omitempty" db:"returned_at"`
	ReturnState   *ArticleState `json:"returnState,omitempty" db:"return_state"`
	ReturnNotes   string        `json:"returnNotes" db:"return_notes"`
	ReturnedBy    *string       `json:"returnedBy,omitempty" db:"returned_by"`
}

// IsOpen reports whether the article is still out.
func (la LoanArticle) IsOpen() bool {
	return la.ReturnedAt == nil
}

// Close records the return of the article.
func (la *LoanArticle) Close(at time.Time, by string, state ArticleState, notes string) {
	t := at
	b := by
	s := state
	la.ReturnedAt = &t
	la.ReturnedBy = &b
	la.ReturnState = &s
	la.ReturnNotes = notes
}

// AllReturned reports whether every article in the slice has been returned.
// An empty slice counts as returned.
func AllReturned(articles []LoanArticle) bool {
	for _, la := range articles {
		if la.IsOpen() {
			return false
		}
	}
	return true
}

// OpenArticles returns the articles that are still out.
func OpenArticles(articles []LoanArticle) []LoanArticle {
	open := make([]LoanArticle, 0, len(articles))
	for _, la := range articles {
		if la.IsOpen() {
			open = append(open, la)
		}
	}
	return open
}

// ReturnEntry is the condition recorded for one article at return time.
type ReturnEntry struct {
	ArticleID string
	State     ArticleState
	Notes     string
}

// PartialReturnNote is the audit line appended when a loan stays open after a return.
func PartialReturnNote(at time.Time, returned int) string {
	return fmt.Sprintf("Partial return on %s: %d article(s) returned", at.Format(DateLayout), returned)
}

// FinalReturnNote is the audit line appended when a partial return closes the loan.
func FinalReturnNote(at time.Time, returned int) string {
	return fmt.Sprintf("Final return on %s: %d article(s) returned, loan closed", at.Format(DateLayout), returned)
}

// LoanFilter narrows loan listings.
type LoanFilter struct {
	// Status is one of "open", "closed", "overdue" or empty for all.
	Status        string
	BeneficiaryID string
	Limit         int
	NextToken     *string
}

// LoanWithArticles bundles a loan with its article links.
type LoanWithArticles struct {
	Loan     Loan          `json:"loan"`
	Articles []LoanArticle `json:"articles"`
}
