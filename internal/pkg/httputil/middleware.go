package httputil

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
)

type contextKey string

// UserKey is the context key holding the authenticated *domain.User.
const UserKey contextKey = "user"

// ErrUnauthenticated is returned by an Authenticator when the token or its subject is not acceptable.
// Any other error is treated as an internal failure.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves a bearer token to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware creates authentication middleware.
// It resolves the bearer token to a user and stores it in the request context.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				Error(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					Error(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				ctxlog.FromContext(r.Context()).Error("authenticate request", "error", err)
				Error(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = ctxlog.With(ctx, "user_id", user.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates RBAC middleware that admits only the listed roles.
func RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !user.Role.IsValid() || !slices.Contains(allowed, user.Role) {
				Error(w, http.StatusForbidden, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// UserFromContext returns the authenticated user or nil.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(UserKey).(*domain.User); ok {
		return user
	}
	return nil
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
