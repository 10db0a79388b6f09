package dto

import "github.com/SscSPs/loandesk_backend/internal/core/domain"

// CreateDonorRequest registers a donor.
type CreateDonorRequest struct {
	Name    string           `json:"name" binding:"required,max=200"`
	Kind    domain.DonorKind `json:"kind" binding:"required,oneof=individual organization"`
	Email   string           `json:"email" binding:"omitempty,email"`
	Phone   string           `json:"phone" binding:"max=50"`
	Address string           `json:"address"`
	Notes   string           `json:"notes"`
}

// UpdateDonorRequest edits a donor.
type UpdateDonorRequest struct {
	Name    *string           `json:"name" binding:"omitempty,max=200"`
	Kind    *domain.DonorKind `json:"kind" binding:"omitempty,oneof=individual organization"`
	Email   *string           `json:"email" binding:"omitempty,email"`
	Phone   *string           `json:"phone" binding:"omitempty,max=50"`
	Address *string           `json:"address"`
	Notes   *string           `json:"notes"`
}

// ListDonorsResponse wraps the list of donors.
type ListDonorsResponse struct {
	Donors []domain.Donor `json:"donors"`
}
