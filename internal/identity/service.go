// Package identity manages accounts, credentials and token based authentication.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/bissquit/course-garden/internal/pkg/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var emailCaser = cases.Lower(language.Und)

// Service implements account and authentication business logic.
type Service struct {
	repo   Repository
	tokens TokenService
	hasher *PasswordHasher
}

// NewService creates a new identity service.
func NewService(repo Repository, tokens TokenService, hasher *PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
	}
}

// SignupInput holds data for self-registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// CreateUserInput holds data for staff-created accounts.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Signup registers a student or instructor and returns the user with a fresh token.
// An empty role defaults to student.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	user, err := s.signup(ctx, input)
	if err != nil {
		metrics.RecordAuthAttempt("signup", signupResult(err))
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuthAttempt("signup", "success")
	ctxlog.FromContext(ctx).Info("user signed up", "user_id", user.ID, "role", user.Role)

	return user, token, nil
}

func (s *Service) signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}

	name, email := strings.TrimSpace(input.Name), NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	switch role {
	case domain.RoleAdmin:
		return nil, ErrAdminSignup
	case domain.RoleStudent, domain.RoleInstructor:
	default:
		return nil, ErrInvalidRole
	}

	return s.createUser(ctx, name, email, input.Password, role)
}

// signupResult labels a failed signup: caller mistakes are "rejected", everything else "error".
func signupResult(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrAdminSignup),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrEmailExists):
		return "rejected"
	default:
		return "error"
	}
}

// CreateUser creates an account on behalf of a staff member.
// Instructors may only create students; nobody creates admins.
func (s *Service) CreateUser(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error) {
	name, email := strings.TrimSpace(input.Name), NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" || input.Role == "" {
		return nil, ErrMissingFields
	}

	if err := authorizeCreate(actor.Role, input.Role); err != nil {
		return nil, err
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, name, email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("user created by staff",
		"user_id", user.ID,
		"role", user.Role,
		"created_by", actor.ID,
	)

	return user, nil
}

// authorizeCreate distinguishes "you may not grant this role" (403) from "no such assignable role" (400).
func authorizeCreate(actor, target domain.Role) error {
	if actor.CanCreate(target) {
		return nil
	}
	if target == domain.RoleStudent || target == domain.RoleInstructor || actor != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}
	return ErrInvalidRole
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	// Fast path for a clear error; the unique index remains the authority.
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// VerifyCredentials returns the user matching email and password.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.hasher.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.RecordAuthAttempt("login", "invalid_credentials")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuthAttempt("login", "success")

	return user, token, nil
}

// Authenticate verifies a token and resolves its subject to a live user.
// Token and lookup failures are reported as httputil.ErrUnauthenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", httputil.ErrUnauthenticated, err)
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", httputil.ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// CountByRole returns the number of users with the given role.
func (s *Service) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	count, err := s.repo.CountUsersByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// EnsureAdmin creates an admin account unless the email is already registered.
// Reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	name, email = strings.TrimSpace(name), NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return false, ErrMissingFields
	}
	if err := ValidatePassword(password); err != nil {
		return false, err
	}

	_, err := s.createUser(ctx, name, email, password, domain.RoleAdmin)
	if errors.Is(err, ErrEmailExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return emailCaser.String(strings.TrimSpace(email))
}
