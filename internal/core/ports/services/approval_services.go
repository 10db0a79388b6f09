package services

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

// ApprovalSvc reviews pending signup requests.
type ApprovalSvc interface {
	// ApproveAdminRequest requires a superadmin reviewer.
	ApproveAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error
	// ApproveVolunteerRequest requires an admin of the request's agency, or a superadmin.
	ApproveVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error
	RejectAdminRequest(ctx context.Context, caller domain.Caller, requestID string) error
	RejectVolunteerRequest(ctx context.Context, caller domain.Caller, requestID string) error
}

// SignupSvc accepts signup requests from the public and lists them for reviewers.
type SignupSvc interface {
	SubmitAdminRequest(ctx context.Context, req dto.CreateAdminSignupRequest) (*domain.AdminSignupRequest, error)
	SubmitVolunteerRequest(ctx context.Context, req dto.CreateVolunteerSignupRequest) (*domain.VolunteerSignupRequest, error)
	ListPendingRequests(ctx context.Context, caller domain.Caller) (*dto.PendingRequestsResponse, error)
}

// SignupSvcFacade combines the signup and approval services
type SignupSvcFacade interface {
	ApprovalSvc
	SignupSvc
}
