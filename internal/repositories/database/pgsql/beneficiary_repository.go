package pgsql

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBeneficiaryRepository struct {
	BaseRepository
}

func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepositoryFacade {
	return &PgxBeneficiaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)

var FULL_BENEFICIARY_SELECT_QUERY = `
SELECT
	b.beneficiary_id, b.agency_id, b.first_name, b.last_name, b.email, b.phone, b.address, b.notes,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM beneficiaries b
`

func (r *PgxBeneficiaryRepository) getBeneficiaries(ctx context.Context, filterQuery string, args ...any) ([]domain.Beneficiary, error) {
	return collect[domain.Beneficiary](ctx, r.db(ctx), "beneficiaries", FULL_BENEFICIARY_SELECT_QUERY+filterQuery, args...)
}

func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (
			beneficiary_id, agency_id, first_name, last_name, email, phone, address, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		b.BeneficiaryID, b.AgencyID, b.FirstName, b.LastName, b.Email, b.Phone, b.Address, b.Notes,
		b.CreatedAt, b.CreatedBy, b.LastUpdatedAt, b.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "beneficiary "+b.BeneficiaryID)
	}
	return nil
}

func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	items, err := r.getBeneficiaries(ctx, `WHERE b.beneficiary_id = $1`, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxBeneficiaryRepository) ListBeneficiaries(ctx context.Context, agencyID string, search string, limit int, offset int) ([]domain.Beneficiary, error) {
	limit, offset = page(limit, offset)
	if search == "" {
		return r.getBeneficiaries(ctx, `WHERE b.agency_id = $1 ORDER BY b.last_name, b.first_name LIMIT $2 OFFSET $3`, agencyID, limit, offset)
	}
	query := `
		WHERE b.agency_id = $1
		  AND (b.first_name || ' ' || b.last_name ILIKE $2 OR b.email ILIKE $2 OR b.phone ILIKE $2)
		ORDER BY b.last_name, b.first_name
		LIMIT $3 OFFSET $4`
	return r.getBeneficiaries(ctx, query, agencyID, "%"+search+"%", limit, offset)
}

func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) error {
	query := `
		UPDATE beneficiaries
		SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5, notes = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE beneficiary_id = $9;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		b.FirstName, b.LastName, b.Email, b.Phone, b.Address, b.Notes,
		b.LastUpdatedAt, b.LastUpdatedBy, b.BeneficiaryID,
	)
	if err != nil {
		return mapWriteError(err, "beneficiary "+b.BeneficiaryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("beneficiary not found")
	}
	return nil
}

func (r *PgxBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, beneficiaryID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM beneficiaries WHERE beneficiary_id = $1;`, beneficiaryID)
	if err != nil {
		return mapDeleteError(err, "beneficiary "+beneficiaryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("beneficiary not found")
	}
	return nil
}
