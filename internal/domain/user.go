package domain

import "time"

// Role enumerates account capability levels.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsStaff reports whether the role can triage tickets outside its own.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// HomeRoute is the client landing route for a role, used as the
// redirect hint on forbidden responses.
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleSuperadmin:
		return "/superadmin"
	default:
		return "/dashboard"
	}
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusFrozen    UserStatus = "frozen"
)

// User is the single account model; role decides what it can do.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeCode string
	CompanyName  string
	DepartmentID *string
	PhoneNumber  string
	Status       UserStatus
	StatusReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}
