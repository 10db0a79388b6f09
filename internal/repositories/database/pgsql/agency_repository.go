package pgsql

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAgencyRepository struct {
	BaseRepository
}

func newPgxAgencyRepository(pool *pgxpool.Pool) portsrepo.AgencyRepositoryFacade {
	return &PgxAgencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgencyRepositoryFacade = (*PgxAgencyRepository)(nil)

var FULL_AGENCY_SELECT_QUERY = `
SELECT
	ag.agency_id, ag.name, ag.admin_id, ag.address, ag.phone,
	ag.created_at, ag.created_by, ag.last_updated_at, ag.last_updated_by
FROM agencies ag
`

func (r *PgxAgencyRepository) getAgencies(ctx context.Context, filterQuery string, args ...any) ([]domain.Agency, error) {
	return collect[domain.Agency](ctx, r.db(ctx), "agencies", FULL_AGENCY_SELECT_QUERY+filterQuery, args...)
}

func (r *PgxAgencyRepository) FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error) {
	items, err := r.getAgencies(ctx, `WHERE ag.agency_id = $1`, agencyID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("agency not found")
	}
	return &items[0], nil
}

func (r *PgxAgencyRepository) FindAgencyByName(ctx context.Context, name string) (*domain.Agency, error) {
	items, err := r.getAgencies(ctx, `WHERE lower(ag.name) = lower($1)`+lockClause(ctx), name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxAgencyRepository) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	return r.getAgencies(ctx, `ORDER BY ag.name`)
}

func (r *PgxAgencyRepository) SaveAgency(ctx context.Context, a domain.Agency) error {
	query := `
		INSERT INTO agencies (agency_id, name, admin_id, address, phone, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		a.AgencyID, a.Name, a.AdminID, a.Address, a.Phone,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "agency "+a.Name)
	}
	return nil
}

func (r *PgxAgencyRepository) AssignAgencyAdmin(ctx context.Context, agencyID string, adminID string) (bool, error) {
	cmdTag, err := r.db(ctx).Exec(ctx,
		`UPDATE agencies SET admin_id = $1, last_updated_at = NOW(), last_updated_by = $1 WHERE agency_id = $2 AND admin_id IS NULL;`,
		adminID, agencyID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to assign admin of agency "+agencyID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
