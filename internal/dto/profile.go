package dto

import "github.com/SscSPs/loandesk_backend/internal/core/domain"

// MeResponse describes the authenticated user.
type MeResponse struct {
	Profile domain.Profile `json:"profile"`
	Agency  *domain.Agency `json:"agency,omitempty"`
}

// ListAgenciesResponse wraps the list of agencies.
type ListAgenciesResponse struct {
	Agencies []domain.Agency `json:"agencies"`
}

// ListProfilesResponse wraps the members of an agency.
type ListProfilesResponse struct {
	Profiles []domain.Profile `json:"profiles"`
}
