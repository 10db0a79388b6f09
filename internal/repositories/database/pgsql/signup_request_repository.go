package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/loandesk_backend/internal/apperrors"
	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSignupRequestRepository struct {
	BaseRepository
}

func newPgxSignupRequestRepository(pool *pgxpool.Pool) portsrepo.SignupRequestRepositoryFacade {
	return &PgxSignupRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SignupRequestRepositoryFacade = (*PgxSignupRequestRepository)(nil)

var FULL_ADMIN_REQUEST_SELECT_QUERY = `
SELECT
	r.request_id, r.first_name, r.last_name, r.email, r.agency_name, r.agency_id,
	r.status, r.reviewed_by, r.reviewed_at, r.created_at
FROM admin_signup_requests r
`

var FULL_VOLUNTEER_REQUEST_SELECT_QUERY = `
SELECT
	r.request_id, r.first_name, r.last_name, r.email, r.phone, r.agency_id,
	r.status, r.reviewed_by, r.reviewed_at, r.created_at
FROM volunteer_signup_requests r
`

func (r *PgxSignupRequestRepository) SaveAdminRequest(ctx context.Context, req domain.AdminSignupRequest) error {
	query := `
		INSERT INTO admin_signup_requests (request_id, first_name, last_name, email, agency_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query, req.RequestID, req.FirstName, req.LastName, req.Email, req.AgencyName, req.Status, req.CreatedAt)
	if err != nil {
		return mapWriteError(err, "admin signup request for "+req.Email)
	}
	return nil
}

func (r *PgxSignupRequestRepository) SaveVolunteerRequest(ctx context.Context, req domain.VolunteerSignupRequest) error {
	query := `
		INSERT INTO volunteer_signup_requests (request_id, first_name, last_name, email, phone, agency_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query, req.RequestID, req.FirstName, req.LastName, req.Email, req.Phone, req.AgencyID, req.Status, req.CreatedAt)
	if err != nil {
		return mapWriteError(err, "volunteer signup request for "+req.Email)
	}
	return nil
}

func (r *PgxSignupRequestRepository) FindAdminRequestByID(ctx context.Context, requestID string) (*domain.AdminSignupRequest, error) {
	items, err := collect[domain.AdminSignupRequest](ctx, r.db(ctx), "admin signup requests",
		FULL_ADMIN_REQUEST_SELECT_QUERY+`WHERE r.request_id = $1`, requestID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("signup request not found")
	}
	return &items[0], nil
}

func (r *PgxSignupRequestRepository) FindVolunteerRequestByID(ctx context.Context, requestID string) (*domain.VolunteerSignupRequest, error) {
	items, err := collect[domain.VolunteerSignupRequest](ctx, r.db(ctx), "volunteer signup requests",
		FULL_VOLUNTEER_REQUEST_SELECT_QUERY+`WHERE r.request_id = $1`, requestID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("signup request not found")
	}
	return &items[0], nil
}

func (r *PgxSignupRequestRepository) ListAdminRequests(ctx context.Context, status domain.RequestStatus) ([]domain.AdminSignupRequest, error) {
	return collect[domain.AdminSignupRequest](ctx, r.db(ctx), "admin signup requests",
		FULL_ADMIN_REQUEST_SELECT_QUERY+`WHERE r.status = $1 ORDER BY r.created_at`, status)
}

func (r *PgxSignupRequestRepository) ListVolunteerRequests(ctx context.Context, agencyID string, status domain.RequestStatus) ([]domain.VolunteerSignupRequest, error) {
	if agencyID == "" {
		return collect[domain.VolunteerSignupRequest](ctx, r.db(ctx), "volunteer signup requests",
			FULL_VOLUNTEER_REQUEST_SELECT_QUERY+`WHERE r.status = $1 ORDER BY r.created_at`, status)
	}
	return collect[domain.VolunteerSignupRequest](ctx, r.db(ctx), "volunteer signup requests",
		FULL_VOLUNTEER_REQUEST_SELECT_QUERY+`WHERE r.agency_id = $1 AND r.status = $2 ORDER BY r.created_at`, agencyID, status)
}

func (r *PgxSignupRequestRepository) ReviewAdminRequest(ctx context.Context, requestID string, review domain.Review) error {
	query := `
		UPDATE admin_signup_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, agency_id = COALESCE($4, agency_id)
		WHERE request_id = $5 AND status = 'pending';
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, review.Status, review.ReviewedBy, review.ReviewedAt, review.AgencyID, requestID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to review admin request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.notPendingOrMissing(ctx, "admin_signup_requests", requestID)
	}
	return nil
}

func (r *PgxSignupRequestRepository) ReviewVolunteerRequest(ctx context.Context, requestID string, review domain.Review) error {
	query := `
		UPDATE volunteer_signup_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE request_id = $4 AND status = 'pending';
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, review.Status, review.ReviewedBy, review.ReviewedAt, requestID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to review volunteer request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.notPendingOrMissing(ctx, "volunteer_signup_requests", requestID)
	}
	return nil
}

// notPendingOrMissing explains why a conditional review touched no row.
func (r *PgxSignupRequestRepository) notPendingOrMissing(ctx context.Context, table string, requestID string) error {
	var status string
	err := r.db(ctx).QueryRow(ctx, `SELECT status FROM `+table+` WHERE request_id = $1`, requestID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("signup request not found")
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read status of request "+requestID, err)
	}
	return apperrors.NewAppError(409, "request already "+status, apperrors.ErrRequestNotPending)
}
