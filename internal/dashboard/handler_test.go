package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubUsers struct {
	counts map[domain.Role]int
	err    error
}

func (s stubUsers) CountByRole(_ context.Context, role domain.Role) (int, error) {
	return s.counts[role], s.err
}

type stubCourses struct {
	count int
	err   error
}

func (s stubCourses) CountCourses(_ context.Context) (int, error) {
	return s.count, s.err
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		users   stubUsers
		courses stubCourses
		status  int
		body    string
	}{
		{
			name:    "counts students only",
			users:   stubUsers{counts: map[domain.Role]int{domain.RoleStudent: 3, domain.RoleInstructor: 2}},
			courses: stubCourses{count: 5},
			status:  http.StatusOK,
			body:    `{"totalStudents":3,"totalCourses":5}`,
		},
		{
			name:   "empty system",
			status: http.StatusOK,
			body:   `{"totalStudents":0,"totalCourses":0}`,
		},
		{
			name:   "user store failure",
			users:  stubUsers{err: errors.New("db down")},
			status: http.StatusInternalServerError,
			body:   `{"error":"internal error"}`,
		},
		{
			name:    "course store failure",
			courses: stubCourses{err: errors.New("db down")},
			status:  http.StatusInternalServerError,
			body:    `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHandler(tt.users, tt.courses).RegisterStaffRoutes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
