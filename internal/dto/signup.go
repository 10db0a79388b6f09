package dto

import "github.com/SscSPs/loandesk_backend/internal/core/domain"

// CreateAdminSignupRequest is submitted by someone who wants to run an agency.
type CreateAdminSignupRequest struct {
	FirstName  string `json:"firstName" binding:"required,max=100"`
	LastName   string `json:"lastName" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	AgencyName string `json:"agencyName" binding:"required,max=200"`
}

// CreateVolunteerSignupRequest is submitted by someone who wants to help an existing agency.
type CreateVolunteerSignupRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"max=50"`
	AgencyID  string `json:"agencyID" binding:"required,uuid"`
}

// PendingRequestsResponse lists the requests the caller may review.
type PendingRequestsResponse struct {
	AdminRequests     []domain.AdminSignupRequest     `json:"adminRequests"`
	VolunteerRequests []domain.VolunteerSignupRequest `json:"volunteerRequests"`
}
