package domain

// Beneficiary is a person who borrows articles.
type Beneficiary struct {
	BeneficiaryID string `json:"beneficiaryID" db:"beneficiary_id"`
	AgencyID      string `json:"agencyID" db:"agency_id"`
	FirstName     string `json:"firstName" db:"first_name"`
	LastName      string `json:"lastName" db:"last_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone" db:"phone"`
	Address       string `json:"address" db:"address"`
	Notes         string `json:"notes" db:"notes"`
	AuditFields
}

// FullName joins first and last name.
func (b Beneficiary) FullName() string {
	if b.LastName == "" {
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}
