package catalog

import (
	"net/http"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers routes available without authentication.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/courses", h.ListCourses)
	r.Get("/courses/{id}", h.GetCourse)
}

// RegisterStaffRoutes registers routes for admins and instructors.
func (h *Handler) RegisterStaffRoutes(r chi.Router) {
	r.Post("/admin/courses", h.CreateCourse)
}

// CreateCourseRequest represents the request body for creating a course.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Instructor  string `json:"instructor" validate:"required,max=255"`
	Duration    string `json:"duration" validate:"required,max=100"`
}

// CourseResponse wraps a created course.
type CourseResponse struct {
	Message string         `json:"message"`
	Course  *domain.Course `json:"course"`
}

// ListCourses handles GET /courses request.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id} request.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /admin/courses request.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Duration:    req.Duration,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, CourseResponse{
		Message: "Course created successfully",
		Course:  course,
	})
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrInvalidCourse, Status: http.StatusBadRequest},
	{Error: ErrCourseNotFound, Status: http.StatusNotFound},
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, errorMappings)
}
