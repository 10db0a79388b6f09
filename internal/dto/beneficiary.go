package dto

import "github.com/SscSPs/loandesk_backend/internal/core/domain"

// CreateBeneficiaryRequest registers a beneficiary.
type CreateBeneficiaryRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"max=50"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// UpdateBeneficiaryRequest edits a beneficiary.
type UpdateBeneficiaryRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
}

// ListParams is the common search and paging query.
type ListParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListBeneficiariesResponse wraps the list of beneficiaries.
type ListBeneficiariesResponse struct {
	Beneficiaries []domain.Beneficiary `json:"beneficiaries"`
}
