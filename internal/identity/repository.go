package identity

import (
	"context"
	"time"

	"github.com/bissquit/course-garden/internal/domain"
)

// Repository defines the interface for user persistence.
// CreateUser must return ErrEmailExists when the email is already taken,
// GetUserByID and GetUserByEmail must return ErrUserNotFound for unknown users.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CountUsersByRole(ctx context.Context, role domain.Role) (int, error)
}

// Claims are the identity fields carried by a signed token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies stateless identity tokens.
// Verify must return ErrInvalidToken or ErrExpiredToken on failure.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*Claims, error)
}
