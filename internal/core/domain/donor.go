package domain

// DonorKind tells individuals and organisations apart.
type DonorKind string

const (
	DonorIndividual   DonorKind = "individual"
	DonorOrganization DonorKind = "organization"
)

// Donor gives articles or money to an agency.
type Donor struct {
	DonorID  string    `json:"donorID" db:"donor_id"`
	AgencyID string    `json:"agencyID" db:"agency_id"`
	Name     string    `json:"name" db:"name"`
	Kind     DonorKind `json:"kind" db:"kind"`
	Email    string    `json:"email" db:"email"`
	Phone    string    `json:"phone" db:"phone"`
	Address  string    `json:"address" db:"address"`
	Notes    string    `json:"notes" db:"notes"`
	AuditFields
}
