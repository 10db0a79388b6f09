package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dashboardRepository aggregates agency-wide counts in a single round trip.
type dashboardRepository struct {
	BaseRepository
}

func newDashboardRepository(pool *pgxpool.Pool) portsrepo.DashboardReader {
	return &dashboardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DashboardReader = (*dashboardRepository)(nil)

func (r *dashboardRepository) DashboardCounts(ctx context.Context, agencyID string, now time.Time) (*domain.DashboardCounts, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT status, COUNT(*) FROM articles WHERE agency_id = $1 GROUP BY status`, agencyID)
	batch.Queue(`
		SELECT
			COUNT(*) FILTER (WHERE actual_return_date IS NULL),
			COUNT(*) FILTER (WHERE actual_return_date IS NULL AND expected_return_date < $2)
		FROM loans WHERE agency_id = $1`, agencyID, now)
	batch.Queue(`SELECT COUNT(*) FROM beneficiaries WHERE agency_id = $1`, agencyID)
	batch.Queue(`SELECT COUNT(*) FROM donors WHERE agency_id = $1`, agencyID)

	results := r.db(ctx).SendBatch(ctx, batch)
	defer results.Close()

	counts := &domain.DashboardCounts{ArticlesByStatus: map[domain.ArticleStatus]int{}}

	rows, err := results.Query()
	if err != nil {
		return nil, fmt.Errorf("error querying article counts: %w", err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning article count row: %w", err)
		}
		counts.ArticlesByStatus[domain.ArticleStatus(status)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article count rows: %w", err)
	}

	if err := results.QueryRow().Scan(&counts.OpenLoans, &counts.OverdueLoans); err != nil {
		return nil, fmt.Errorf("error counting loans: %w", err)
	}
	if err := results.QueryRow().Scan(&counts.Beneficiaries); err != nil {
		return nil, fmt.Errorf("error counting beneficiaries: %w", err)
	}
	if err := results.QueryRow().Scan(&counts.Donors); err != nil {
		return nil, fmt.Errorf("error counting donors: %w", err)
	}
	return counts, nil
}
