package domain

import "time"

// Role is the closed set of account roles.
type Role string

// Account roles.
const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// CanCreate reports whether an actor with role r may create an account with the target role.
// Admin accounts are never created through the API.
func (r Role) CanCreate(target Role) bool {
	switch r {
	case RoleAdmin:
		return target == RoleStudent || target == RoleInstructor
	case RoleInstructor:
		return target == RoleStudent
	case RoleStudent:
		return false
	}
	return false
}

// User represents an account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
}
