package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/loandesk_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

var FULL_LOAN_SELECT_QUERY = `
SELECT
	l.loan_id, l.agency_id, l.beneficiary_id, l.loaned_by, l.loan_date, l.expected_return_date,
	l.actual_return_date, l.returned_by, l.contract_signed, l.notes,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM loans l
`

var FULL_LOAN_ARTICLE_SELECT_QUERY = `
SELECT
	la.loan_article_id, la.loan_id, la.article_id, a.name AS article_name,
	la.returned_at, la.return_state, la.return_notes, la.returned_by
FROM loan_articles la
JOIN articles a ON a.article_id = la.article_id
`

func (r *PgxLoanRepository) getLoans(ctx context.Context, filterQuery string, args ...any) ([]domain.Loan, error) {
	return collect[domain.Loan](ctx, r.db(ctx), "loans", FULL_LOAN_SELECT_QUERY+filterQuery, args...)
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan, articles []domain.LoanArticle) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO loans (
			loan_id, agency_id, beneficiary_id, loaned_by, loan_date, expected_return_date,
			actual_return_date, returned_by, contract_signed, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		loan.LoanID, loan.AgencyID, loan.BeneficiaryID, loan.LoanedBy, loan.LoanDate, loan.ExpectedReturnDate,
		loan.ActualReturnDate, loan.ReturnedBy, loan.ContractSigned, loan.Notes,
		loan.CreatedAt, loan.CreatedBy, loan.LastUpdatedAt, loan.LastUpdatedBy,
	)
	for _, la := range articles {
		batch.Queue(`
			INSERT INTO loan_articles (loan_article_id, loan_id, article_id, returned_at, return_state, return_notes, returned_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			la.LoanArticleID, loan.LoanID, la.ArticleID, la.ReturnedAt, la.ReturnState, la.ReturnNotes, la.ReturnedBy,
		)
	}

	results := r.db(ctx).SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapWriteError(err, "loan "+loan.LoanID)
		}
	}
	if err := results.Close(); err != nil {
		return mapWriteError(err, "loan "+loan.LoanID)
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loans, err := r.getLoans(ctx, `WHERE l.loan_id = $1`+lockClause(ctx), loanID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &loans[0], nil
}

func (r *PgxLoanRepository) FindLoanArticles(ctx context.Context, loanID string) ([]domain.LoanArticle, error) {
	query := FULL_LOAN_ARTICLE_SELECT_QUERY + `WHERE la.loan_id = $1 ORDER BY a.name, la.loan_article_id`
	if inTx(ctx) {
		query += " FOR UPDATE OF la"
	}
	return collect[domain.LoanArticle](ctx, r.db(ctx), "loan articles", query, loanID)
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, agencyID string, filter domain.LoanFilter, now time.Time) ([]domain.Loan, *string, error) {
	conditions := []string{"l.agency_id = $1"}
	args := []any{agencyID}

	switch filter.Status {
	case "open":
		conditions = append(conditions, "l.actual_return_date IS NULL")
	case "closed":
		conditions = append(conditions, "l.actual_return_date IS NOT NULL")
	case "overdue":
		args = append(args, now)
		conditions = append(conditions, fmt.Sprintf("l.actual_return_date IS NULL AND l.expected_return_date < $%d", len(args)))
	}
	if filter.BeneficiaryID != "" {
		args = append(args, filter.BeneficiaryID)
		conditions = append(conditions, fmt.Sprintf("l.beneficiary_id = $%d", len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		args = append(args, lastDate, lastID)
		conditions = append(conditions, fmt.Sprintf("(l.loan_date, l.loan_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query := "WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY l.loan_date DESC, l.loan_id DESC LIMIT $%d", len(args))

	loans, err := r.getLoans(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(loans) > limit {
		loans = loans[:limit]
		last := loans[len(loans)-1]
		token := pagination.EncodeToken(last.LoanDate, last.LoanID)
		nextToken = &token
	}
	return loans, nextToken, nil
}

func (r *PgxLoanRepository) UpdateLoanDetails(ctx context.Context, loan domain.Loan) error {
	query := `
		UPDATE loans
		SET expected_return_date = $1, contract_signed = $2, notes = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $6;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		loan.ExpectedReturnDate,
		loan.ContractSigned,
		loan.Notes,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
		loan.LoanID,
	)
	if err != nil {
		return mapWriteError(err, "loan "+loan.LoanID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("loan not found")
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		UPDATE loans
		SET expected_return_date = $1, actual_return_date = $2, returned_by = $3,
			contract_signed = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE loan_id = $8;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		loan.ExpectedReturnDate,
		loan.ActualReturnDate,
		loan.ReturnedBy,
		loan.ContractSigned,
		loan.Notes,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
		loan.LoanID,
	)
	if err != nil {
		return mapWriteError(err, "loan "+loan.LoanID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("loan not found")
	}
	return nil
}

func (r *PgxLoanRepository) CloseLoanArticle(ctx context.Context, la domain.LoanArticle) error {
	query := `
		UPDATE loan_articles
		SET returned_at = $1, return_state = $2, return_notes = $3, returned_by = $4
		WHERE loan_article_id = $5 AND returned_at IS NULL;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, la.ReturnedAt, la.ReturnState, la.ReturnNotes, la.ReturnedBy, la.LoanArticleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close loan article "+la.LoanArticleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan article %s is already returned", apperrors.ErrConflict, la.LoanArticleID)
	}
	return nil
}
