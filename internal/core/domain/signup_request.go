package domain

import "time"

// RequestStatus is the review state of a signup request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsPending reports whether the request can still be reviewed.
func (s RequestStatus) IsPending() bool {
	return s == RequestPending
}

// AdminSignupRequest asks for an admin account on an agency named by the applicant.
// AgencyID is filled in once the request is approved.
type AdminSignupRequest struct {
	RequestID  string        `json:"requestID" db:"request_id"`
	FirstName  string        `json:"firstName" db:"first_name"`
	LastName   string        `json:"lastName" db:"last_name"`
	Email      string        `json:"email" db:"email"`
	AgencyName string        `json:"agencyName" db:"agency_name"`
	AgencyID   *string       `json:"agencyID,omitempty" db:"agency_id"`
	Status     RequestStatus `json:"status" db:"status"`
	ReviewedBy *string       `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}

// VolunteerSignupRequest asks for a volunteer account on an existing agency.
type VolunteerSignupRequest struct {
	RequestID  string        `json:"requestID" db:"request_id"`
	FirstName  string        `json:"firstName" db:"first_name"`
	LastName   string        `json:"lastName" db:"last_name"`
	Email      string        `json:"email" db:"email"`
	Phone      string        `json:"phone" db:"phone"`
	AgencyID   string        `json:"agencyID" db:"agency_id"`
	Status     RequestStatus `json:"status" db:"status"`
	ReviewedBy *string       `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}

// SignupKind distinguishes the two request tables.
type SignupKind string

const (
	SignupAdmin     SignupKind = "admin"
	SignupVolunteer SignupKind = "volunteer"
)

// Review is the outcome recorded on a request by its reviewer.
type Review struct {
	Status     RequestStatus
	ReviewedBy string
	ReviewedAt time.Time
	// AgencyID is back-filled on admin requests when they are approved.
	AgencyID *string
}
