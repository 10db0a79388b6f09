package domain

import "time"

// Role is the application role stored on a profile.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleVolunteer  Role = "volunteer"
)

// Identity is an account known to the identity provider. Its ID is shared by the Profile.
type Identity struct {
	IdentityID    string     `json:"identityID" db:"identity_id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  *string    `json:"-" db:"password_hash"`
	InvitedAt     *time.Time `json:"invitedAt,omitempty" db:"invited_at"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty" db:"confirmed_at"`
	GoogleSubject *string    `json:"-" db:"google_subject"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// IsConfirmed reports whether the invitation has been accepted.
func (i Identity) IsConfirmed() bool {
	return i.ConfirmedAt != nil
}

// Profile is the application-level record of an identity: its name, role and agency.
type Profile struct {
	ProfileID string  `json:"profileID" db:"profile_id"`
	FirstName string  `json:"firstName" db:"first_name"`
	LastName  string  `json:"lastName" db:"last_name"`
	Email     string  `json:"email" db:"email"`
	Role      Role    `json:"role" db:"role"`
	AgencyID  *string `json:"agencyID,omitempty" db:"agency_id"`
	AuditFields
}

// Caller is the authenticated user on whose behalf a service call runs.
type Caller struct {
	UserID   string
	Role     Role
	AgencyID *string
}

// CallerFromProfile builds the caller context from a loaded profile.
func CallerFromProfile(p Profile) Caller {
	return Caller{UserID: p.ProfileID, Role: p.Role, AgencyID: p.AgencyID}
}

// IsSuperadmin reports whether the caller can act across agencies.
func (c Caller) IsSuperadmin() bool {
	return c.Role == RoleSuperadmin
}

// IsAdmin reports whether the caller manages an agency (superadmins included).
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin || c.Role == RoleSuperadmin
}

// BelongsTo reports whether the caller is a member of the given agency.
func (c Caller) BelongsTo(agencyID string) bool {
	return c.AgencyID != nil && *c.AgencyID == agencyID
}

// Agency is the tenant boundary: all articles, loans, donors and money belong to one.
type Agency struct {
	AgencyID string  `json:"agencyID" db:"agency_id"`
	Name     string  `json:"name" db:"name"`
	AdminID  *string `json:"adminID,omitempty" db:"admin_id"`
	Address  string  `json:"address" db:"address"`
	Phone    string  `json:"phone" db:"phone"`
	AuditFields
}
