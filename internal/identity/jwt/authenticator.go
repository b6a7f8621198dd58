// Package jwt implements identity.TokenService with HMAC-signed JWTs.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/identity"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the token lifetime when Config.TokenTTL is zero.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Config contains JWT settings.
type Config struct {
	SecretKey string
	TokenTTL  time.Duration
	Issuer    string
}

// Authenticator issues and verifies stateless tokens. There is no revocation list:
// a token stays valid until it expires or the secret changes.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthenticator creates a JWT authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Authenticator{
		secret: []byte(cfg.SecretKey),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs a token for user.
func (a *Authenticator) Issue(user *domain.User) (string, error) {
	now := a.now()
	c := claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, algorithm, expiry and required claims.
func (a *Authenticator) Verify(tokenString string) (*identity.Claims, error) {
	var c claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, identity.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", identity.ErrInvalidToken, err)
	}

	role := domain.Role(c.Role)
	if c.UserID == "" || c.Email == "" || !role.IsValid() {
		return nil, fmt.Errorf("%w: incomplete claims", identity.ErrInvalidToken)
	}

	result := &identity.Claims{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   role,
	}
	if c.IssuedAt != nil {
		result.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		result.ExpiresAt = c.ExpiresAt.Time
	}
	return result, nil
}
