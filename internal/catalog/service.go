// Package catalog provides HTTP handlers and business logic for the course catalog.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
	"github.com/google/uuid"
)

// Service implements catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCourseInput holds data for creating a course.
type CreateCourseInput struct {
	Title       string
	Description string
	Instructor  string
	Duration    string
}

// CreateCourse validates and stores a new course.
func (s *Service) CreateCourse(ctx context.Context, input CreateCourseInput) (*domain.Course, error) {
	course := &domain.Course{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Instructor:  strings.TrimSpace(input.Instructor),
		Duration:    strings.TrimSpace(input.Duration),
	}
	if course.Title == "" || course.Description == "" || course.Instructor == "" || course.Duration == "" {
		return nil, ErrInvalidCourse
	}

	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	ctxlog.FromContext(ctx).Info("course created", "course_id", course.ID, "title", course.Title)

	return course, nil
}

// GetCourse retrieves a course by ID. Malformed IDs are reported as not found.
func (s *Service) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCourseNotFound
	}
	return s.repo.GetCourseByID(ctx, id)
}

// ListCourses returns all courses in creation order.
func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CountCourses returns the number of courses.
func (s *Service) CountCourses(ctx context.Context) (int, error) {
	count, err := s.repo.CountCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}
