package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFinanceRepository struct {
	BaseRepository
}

func newPgxFinanceRepository(pool *pgxpool.Pool) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

var FULL_TRANSACTION_SELECT_QUERY = `
SELECT
	t.transaction_id, t.agency_id, t.kind, t.amount, t.category, t.description, t.donor_id, t.transaction_date,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM financial_transactions t
`

func (r *PgxFinanceRepository) SaveTransaction(ctx context.Context, txn domain.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (
			transaction_id, agency_id, kind, amount, category, description, donor_id, transaction_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.AgencyID, txn.Kind, txn.Amount, txn.Category, txn.Description, txn.DonorID, txn.TransactionDate,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "transaction "+txn.TransactionID)
	}
	return nil
}

func (r *PgxFinanceRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	items, err := collect[domain.FinancialTransaction](ctx, r.db(ctx), "transactions",
		FULL_TRANSACTION_SELECT_QUERY+`WHERE t.transaction_id = $1`, transactionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxFinanceRepository) ListTransactions(ctx context.Context, agencyID string, filter domain.TransactionFilter) ([]domain.FinancialTransaction, error) {
	conditions := []string{"t.agency_id = $1"}
	args := []any{agencyID}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conditions = append(conditions, fmt.Sprintf("t.kind = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("t.transaction_date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("t.transaction_date < $%d", len(args)))
	}

	query := FULL_TRANSACTION_SELECT_QUERY + "WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY t.transaction_date DESC, t.transaction_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return collect[domain.FinancialTransaction](ctx, r.db(ctx), "transactions", query, args...)
}

// SumByCategory totals the agency's transactions in [from, to) per kind and category.
func (r *PgxFinanceRepository) SumByCategory(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT t.kind, t.category, SUM(t.amount) AS total
		FROM financial_transactions t
		WHERE t.agency_id = $1
			AND t.transaction_date >= $2
			AND t.transaction_date < $3
		GROUP BY t.kind, t.category
		ORDER BY t.kind, t.category
	`

	rows, err := r.db(ctx).Query(ctx, query, agencyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &row.Category, &total); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		row.Kind = domain.TransactionKind(kind)
		row.Total = total
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return result, nil
}

func (r *PgxFinanceRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM financial_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return mapDeleteError(err, "transaction "+transactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
