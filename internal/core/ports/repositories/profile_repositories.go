package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// ProfileReader defines read operations for profiles
type ProfileReader interface {
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)
	ListProfilesByAgency(ctx context.Context, agencyID string) ([]domain.Profile, error)
}

// ProfileWriter defines write operations for profiles
type ProfileWriter interface {
	// UpsertProfile creates the profile or overwrites its name, role and agency.
	UpsertProfile(ctx context.Context, profile domain.Profile) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
