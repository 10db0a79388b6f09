package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// BeneficiaryReader defines read operations for beneficiary data
type BeneficiaryReader interface {
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	// ListBeneficiaries returns the agency's beneficiaries whose name, email or phone contains search.
	ListBeneficiaries(ctx context.Context, agencyID string, search string, limit int, offset int) ([]domain.Beneficiary, error)
}

// BeneficiaryWriter defines write operations for beneficiary data
type BeneficiaryWriter interface {
	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	DeleteBeneficiary(ctx context.Context, beneficiaryID string) error
}

// BeneficiaryRepositoryFacade combines all beneficiary-related repository interfaces
type BeneficiaryRepositoryFacade interface {
	BeneficiaryReader
	BeneficiaryWriter
}
