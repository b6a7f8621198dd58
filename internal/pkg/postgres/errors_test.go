package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		expected   bool
	}{
		{"matching code, any constraint", unique, "", true},
		{"matching code and constraint", unique, "users_email_key", true},
		{"wrapped error", fmt.Errorf("create user: %w", unique), "users_email_key", true},
		{"other constraint", unique, "enrollments_student_course_key", false},
		{"other code", &pgconn.PgError{Code: "23503"}, "", false},
		{"plain error", errors.New("boom"), "", false},
		{"nil error", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_course_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fk, ""))
	assert.True(t, IsForeignKeyViolation(fk, "enrollments_course_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "enrollments_student_id_fkey"))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}, ""))
}

func TestCalcBackoff(t *testing.T) {
	assert.Equal(t, "1s", calcBackoff(1).String())
	assert.Equal(t, "2s", calcBackoff(2).String())
	assert.Equal(t, "8s", calcBackoff(4).String())
	assert.Equal(t, "16s", calcBackoff(5).String())
	assert.Equal(t, "16s", calcBackoff(10).String())
}
