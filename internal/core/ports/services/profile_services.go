package services

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/SscSPs/loandesk_backend/internal/dto"
)

// ProfileSvcFacade resolves callers and exposes profiles and agencies.
type ProfileSvcFacade interface {
	// ResolveCaller loads the profile of an authenticated identity.
	ResolveCaller(ctx context.Context, userID string) (*domain.Caller, error)
	GetMe(ctx context.Context, caller domain.Caller) (*dto.MeResponse, error)
	ListAgencyMembers(ctx context.Context, caller domain.Caller, agencyID string) ([]domain.Profile, error)
	ListAgencies(ctx context.Context, caller domain.Caller) ([]domain.Agency, error)
	GetAgency(ctx context.Context, caller domain.Caller, agencyID string) (*domain.Agency, error)
}
