package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &domain.User{
	ID:    "5f0c6d2e-2a4b-4c8e-9d1a-000000000001",
	Name:  "Alice",
	Email: "a@x.com",
	Role:  domain.RoleStudent,
}

func newTestAuthenticator(now time.Time) *Authenticator {
	a := NewAuthenticator(Config{SecretKey: "test-secret", Issuer: "course-garden"})
	a.now = func() time.Time { return now }
	return a
}

func TestAuthenticator_IssueThenVerify(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	a := newTestAuthenticator(now)

	token, err := a.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, testUser.ID, claims.UserID)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, domain.RoleStudent, claims.Role)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(7*24*time.Hour)), "default lifetime is seven days")
}

func TestAuthenticator_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	token, err := newTestAuthenticator(issuedAt).Issue(testUser)
	require.NoError(t, err)

	_, err = newTestAuthenticator(time.Now()).Verify(token)
	assert.ErrorIs(t, err, identity.ErrExpiredToken)
	assert.NotErrorIs(t, err, identity.ErrInvalidToken)
}

func TestAuthenticator_ExpiryInThePast(t *testing.T) {
	a := newTestAuthenticator(time.Now())

	// Forge a correctly signed token whose expiry was manually set to the past
	c := claims{
		UserID: testUser.ID,
		Email:  testUser.Email,
		Role:   string(testUser.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "course-garden",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.ErrorIs(t, err, identity.ErrExpiredToken)
}

func TestAuthenticator_Invalid(t *testing.T) {
	a := newTestAuthenticator(time.Now())
	valid, err := a.Issue(testUser)
	require.NoError(t, err)

	sign := func(c claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", sign(claims{
			UserID: testUser.ID, Email: testUser.Email, Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "course-garden", ExpiresAt: future},
		}, jwt.SigningMethodHS256, []byte("other-secret"))},
		{"tampered payload", tamper(valid)},
		{"none algorithm", sign(claims{
			UserID: testUser.ID, Email: testUser.Email, Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "course-garden", ExpiresAt: future},
		}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
		{"missing user id", sign(claims{
			Email: testUser.Email, Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "course-garden", ExpiresAt: future},
		}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"unknown role", sign(claims{
			UserID: testUser.ID, Email: testUser.Email, Role: "root",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "course-garden", ExpiresAt: future},
		}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"missing expiry", sign(claims{
			UserID: testUser.ID, Email: testUser.Email, Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "course-garden"},
		}, jwt.SigningMethodHS256, []byte("test-secret"))},
		{"foreign issuer", sign(claims{
			UserID: testUser.ID, Email: testUser.Email, Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: future},
		}, jwt.SigningMethodHS256, []byte("test-secret"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Verify(tt.token)
			assert.ErrorIs(t, err, identity.ErrInvalidToken)
		})
	}
}

func TestAuthenticator_SecretRotationInvalidatesTokens(t *testing.T) {
	token, err := NewAuthenticator(Config{SecretKey: "old"}).Issue(testUser)
	require.NoError(t, err)

	_, err = NewAuthenticator(Config{SecretKey: "new"}).Verify(token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestNewAuthenticator_CustomTTL(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	a := NewAuthenticator(Config{SecretKey: "s", TokenTTL: time.Hour})
	a.now = func() time.Time { return now }

	token, err := a.Issue(testUser)
	require.NoError(t, err)

	claims, err := a.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

// tamper flips the role inside the payload without re-signing.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	forged := strings.Replace(string(payload), `"role":"student"`, `"role":"admin"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	return strings.Join(parts, ".")
}
