package enrollment

import (
	"net/http"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the enrollment module.
type Handler struct {
	service *Service
}

// NewHandler creates a new enrollment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers routes for authenticated users.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/enrollments", h.Enroll)
	r.Get("/enrollments/me", h.ListMine)
}

// EnrollRequest represents the request body for enrolling in a course.
type EnrollRequest struct {
	CourseID string `json:"courseId"`
}

// EnrollResponse wraps a created enrollment.
type EnrollResponse struct {
	Message    string                 `json:"message"`
	Enrollment *domain.EnrolledCourse `json:"enrollment"`
}

// Enroll handles POST /enrollments request.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	user := httputil.UserFromContext(r.Context())
	if user == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req EnrollRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	enrolled, err := h.service.Enroll(r.Context(), user.ID, req.CourseID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, EnrollResponse{
		Message:    "Successfully enrolled in course",
		Enrollment: enrolled,
	})
}

// ListMine handles GET /enrollments/me request.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := httputil.UserFromContext(r.Context())
	if user == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	enrolled, err := h.service.ListForStudent(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	courses := make([]domain.Course, 0, len(enrolled))
	for _, e := range enrolled {
		courses = append(courses, e.Course)
	}

	httputil.JSON(w, http.StatusOK, courses)
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrCourseIDRequired, Status: http.StatusBadRequest},
	{Error: ErrCourseNotFound, Status: http.StatusNotFound},
	{Error: ErrAlreadyEnrolled, Status: http.StatusConflict},
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, errorMappings)
}
