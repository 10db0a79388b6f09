package pgsql

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

var FULL_PROFILE_SELECT_QUERY = `
SELECT
	p.profile_id, p.first_name, p.last_name, p.email, p.role, p.agency_id,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM profiles p
`

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	items, err := collect[domain.Profile](ctx, r.db(ctx), "profiles", FULL_PROFILE_SELECT_QUERY+`WHERE p.profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxProfileRepository) ListProfilesByAgency(ctx context.Context, agencyID string) ([]domain.Profile, error) {
	return collect[domain.Profile](ctx, r.db(ctx), "profiles",
		FULL_PROFILE_SELECT_QUERY+`WHERE p.agency_id = $1 ORDER BY p.last_name, p.first_name`, agencyID)
}

func (r *PgxProfileRepository) UpsertProfile(ctx context.Context, p domain.Profile) error {
	query := `
		INSERT INTO profiles (
			profile_id, first_name, last_name, email, role, agency_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (profile_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			agency_id = EXCLUDED.agency_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db(ctx).Exec(ctx, query,
		p.ProfileID, p.FirstName, p.LastName, p.Email, p.Role, p.AgencyID,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "profile "+p.ProfileID)
	}
	return nil
}
