package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Elevated reports whether the role grants cross-employee write access
// to leave resources.
func (r Role) Elevated() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// User is an authenticated account. Accounts belonging to staff members
// carry the employee id they act for.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	EmployeeID   *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the per-request caller resolved from the access token.
type Identity struct {
	UserID     string
	EmployeeID string
	Role       Role
}
