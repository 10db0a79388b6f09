package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// DonorReader defines read operations for donors
type DonorReader interface {
	FindDonorByID(ctx context.Context, donorID string) (*domain.Donor, error)
	ListDonors(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Donor, error)
}

// DonorWriter defines write operations for donors
type DonorWriter interface {
	SaveDonor(ctx context.Context, donor domain.Donor) error
	UpdateDonor(ctx context.Context, donor domain.Donor) error
	DeleteDonor(ctx context.Context, donorID string) error
}

// DonorRepositoryFacade combines all donor-related repository interfaces
type DonorRepositoryFacade interface {
	DonorReader
	DonorWriter
}
