package repositories

import (
	"context"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
)

// AgencyReader defines read operations for agencies
type AgencyReader interface {
	FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error)
	// FindAgencyByName matches names case-insensitively.
	FindAgencyByName(ctx context.Context, name string) (*domain.Agency, error)
	ListAgencies(ctx context.Context) ([]domain.Agency, error)
}

// AgencyWriter defines write operations for agencies
type AgencyWriter interface {
	SaveAgency(ctx context.Context, agency domain.Agency) error

	// AssignAgencyAdmin sets admin_id only when the agency has none yet.
	// It reports whether the row was changed.
	AssignAgencyAdmin(ctx context.Context, agencyID string, adminID string) (bool, error)
}

// AgencyRepositoryFacade combines all agency-related repository interfaces
type AgencyRepositoryFacade interface {
	AgencyReader
	AgencyWriter
}
