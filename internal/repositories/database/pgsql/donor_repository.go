package pgsql

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDonorRepository struct {
	BaseRepository
}

func newPgxDonorRepository(pool *pgxpool.Pool) portsrepo.DonorRepositoryFacade {
	return &PgxDonorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonorRepositoryFacade = (*PgxDonorRepository)(nil)

var FULL_DONOR_SELECT_QUERY = `
SELECT
	d.donor_id, d.agency_id, d.name, d.kind, d.email, d.phone, d.address, d.notes,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM donors d
`

func (r *PgxDonorRepository) getDonors(ctx context.Context, filterQuery string, args ...any) ([]domain.Donor, error) {
	return collect[domain.Donor](ctx, r.db(ctx), "donors", FULL_DONOR_SELECT_QUERY+filterQuery, args...)
}

func (r *PgxDonorRepository) SaveDonor(ctx context.Context, d domain.Donor) error {
	query := `
		INSERT INTO donors (
			donor_id, agency_id, name, kind, email, phone, address, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		d.DonorID, d.AgencyID, d.Name, d.Kind, d.Email, d.Phone, d.Address, d.Notes,
		d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "donor "+d.DonorID)
	}
	return nil
}

func (r *PgxDonorRepository) FindDonorByID(ctx context.Context, donorID string) (*domain.Donor, error) {
	items, err := r.getDonors(ctx, `WHERE d.donor_id = $1`, donorID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxDonorRepository) ListDonors(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Donor, error) {
	limit, offset = page(limit, offset)
	return r.getDonors(ctx, `WHERE d.agency_id = $1 ORDER BY d.name LIMIT $2 OFFSET $3`, agencyID, limit, offset)
}

func (r *PgxDonorRepository) UpdateDonor(ctx context.Context, d domain.Donor) error {
	query := `
		UPDATE donors
		SET name = $1, kind = $2, email = $3, phone = $4, address = $5, notes = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE donor_id = $9;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		d.Name, d.Kind, d.Email, d.Phone, d.Address, d.Notes,
		d.LastUpdatedAt, d.LastUpdatedBy, d.DonorID,
	)
	if err != nil {
		return mapWriteError(err, "donor "+d.DonorID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("donor not found")
	}
	return nil
}

func (r *PgxDonorRepository) DeleteDonor(ctx context.Context, donorID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM donors WHERE donor_id = $1;`, donorID)
	if err != nil {
		return mapDeleteError(err, "donor "+donorID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("donor not found")
	}
	return nil
}
