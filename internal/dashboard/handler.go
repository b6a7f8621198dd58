// Package dashboard serves the staff summary view.
package dashboard

import (
	"context"
	"net/http"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// UserCounter counts users by role.
type UserCounter interface {
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

// CourseCounter counts catalog courses.
type CourseCounter interface {
	CountCourses(ctx context.Context) (int, error)
}

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	users   UserCounter
	courses CourseCounter
}

// NewHandler creates a new dashboard handler.
func NewHandler(users UserCounter, courses CourseCounter) *Handler {
	return &Handler{users: users, courses: courses}
}

// RegisterStaffRoutes registers routes for admins and instructors.
func (h *Handler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/admin/dashboard", h.Summary)
}

// Summary is the dashboard response body.
type Summary struct {
	TotalStudents int `json:"totalStudents"`
	TotalCourses  int `json:"totalCourses"`
}

// Summary handles GET /admin/dashboard request.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	students, err := h.users.CountByRole(r.Context(), domain.RoleStudent)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	courses, err := h.courses.CountCourses(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.JSON(w, http.StatusOK, Summary{
		TotalStudents: students,
		TotalCourses:  courses,
	})
}
