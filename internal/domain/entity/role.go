// Package entity contains the core business objects of the project.
package entity

// RoleID identifies a row of the roles lookup table.
type RoleID int

const (
	// RoleNone is reported when an account has no role assignment.
	RoleNone RoleID = 0
	// RoleMember is the default role granted at registration.
	RoleMember RoleID = 1
)

// String returns the role's name.
func (r RoleID) String() string {
	switch r {
	case RoleMember:
		return "Member"
	case RoleNone:
		return "None"
	default:
		return "Unknown"
	}
}

// IsValid checks if the RoleID names a known role.
func (r RoleID) IsValid() bool {
	switch r {
	case RoleMember:
		return true
	default:
		return false
	}
}
