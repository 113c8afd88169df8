package domain

import "time"

// Role defines user permission level
type Role string

const (
	RoleAdmin  Role = "admin"  // Sees every record and every private field
	RoleMember Role = "member" // Regular staff account
)

// Capability is a named permission grant on an account
type Capability string

const (
	// CapabilityManageProcedures lets the holder see every non-archived procedure
	CapabilityManageProcedures Capability = "procedures.manage"

	// CapabilityTrainingAccess entitles the holder to training videos and presentations
	CapabilityTrainingAccess Capability = "training.access"
)

// RoleGroup is a coarse classification of a person's role, used to gate absence visibility
type RoleGroup string

const (
	RoleGroupSeniorPhysician    RoleGroup = "senior_physician"
	RoleGroupAssistantPhysician RoleGroup = "assistant_physician"
	RoleGroupRotatingStaff      RoleGroup = "rotating_staff"
	RoleGroupAdministrative     RoleGroup = "administrative"
	RoleGroupNursing            RoleGroup = "nursing"
)

// AllRoleGroups lists every known role group in display order
func AllRoleGroups() []RoleGroup {
	return []RoleGroup{
		RoleGroupSeniorPhysician,
		RoleGroupAssistantPhysician,
		RoleGroupRotatingStaff,
		RoleGroupAdministrative,
		RoleGroupNursing,
	}
}

// IsValid reports whether g is a known role group
func (g RoleGroup) IsValid() bool {
	for _, known := range AllRoleGroups() {
		if g == known {
			return true
		}
	}
	return false
}

// User represents a login account. PersonID links it to the personnel directory.
type User struct {
	ID                string       `json:"id"`
	Email             string       `json:"email"`
	PasswordHash      string       `json:"-"` // Never serialize
	Name              string       `json:"name"`
	Role              Role         `json:"role"`
	PersonID          string       `json:"person_id"`
	Capabilities      []Capability `json:"capabilities"`
	VisibleRoleGroups []RoleGroup  `json:"visible_role_groups"` // empty = all groups
	Active            bool         `json:"active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	LastLoginAt       *time.Time   `json:"last_login_at,omitempty"`
}

// UserSummary provides a safe view of user data (no password hash)
type UserSummary struct {
	ID                string       `json:"id"`
	Email             string       `json:"email"`
	Name              string       `json:"name"`
	Role              Role         `json:"role"`
	PersonID          string       `json:"person_id"`
	Capabilities      []Capability `json:"capabilities"`
	VisibleRoleGroups []RoleGroup  `json:"visible_role_groups"`
	Active            bool         `json:"active"`
	LastLoginAt       *time.Time   `json:"last_login_at,omitempty"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		PersonID:          u.PersonID,
		Capabilities:      u.Capabilities,
		VisibleRoleGroups: u.VisibleRoleGroups,
		Active:            u.Active,
		LastLoginAt:       u.LastLoginAt,
	}
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCapability checks the explicit capability list only
func (u *User) HasCapability(c Capability) bool {
	for _, have := range u.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Preferences holds the per-account settings that influence visibility
type Preferences struct {
	VisibleRoleGroups []RoleGroup `json:"visible_role_groups"`
}
