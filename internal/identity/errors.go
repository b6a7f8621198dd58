package identity

import "errors"

// Credential errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("name, email, and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes long")
)

// Role errors.
var (
	ErrInvalidRole    = errors.New("role must be either student or instructor")
	ErrAdminSignup    = errors.New("admin account creation is not allowed via signup")
	ErrRoleNotAllowed = errors.New("instructors can only create student accounts")
)

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
