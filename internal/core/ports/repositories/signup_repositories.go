package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// SignupRequestReader defines read operations for admin and volunteer signup requests
type SignupRequestReader interface {
	FindAdminRequestByID(ctx context.Context, requestID string) (*domain.AdminSignupRequest, error)
	FindVolunteerRequestByID(ctx context.Context, requestID string) (*domain.VolunteerSignupRequest, error)

	ListAdminRequests(ctx context.Context, status domain.RequestStatus) ([]domain.AdminSignupRequest, error)
	ListVolunteerRequests(ctx context.Context, agencyID string, status domain.RequestStatus) ([]domain.VolunteerSignupRequest, error)
}

// SignupRequestWriter defines write operations for signup requests
type SignupRequestWriter interface {
	SaveAdminRequest(ctx context.Context, req domain.AdminSignupRequest) error
	SaveVolunteerRequest(ctx context.Context, req domain.VolunteerSignupRequest) error

	// ReviewAdminRequest moves a pending request to the review status.
	// It returns ErrRequestNotPending when the request is no longer pending.
	ReviewAdminRequest(ctx context.Context, requestID string, review domain.Review) error

	// ReviewVolunteerRequest moves a pending request to the review status.
	// It returns ErrRequestNotPending when the request is no longer pending.
	ReviewVolunteerRequest(ctx context.Context, requestID string, review domain.Review) error
}

// SignupRequestRepositoryFacade combines all signup-request repository interfaces
type SignupRequestRepositoryFacade interface {
	SignupRequestReader
	SignupRequestWriter
}
