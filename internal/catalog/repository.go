package catalog

import (
	"context"

	"github.com/bissquit/course-garden/internal/domain"
)

// Repository defines the interface for course persistence.
// GetCourseByID must return ErrCourseNotFound for unknown ids.
type Repository interface {
	CreateCourse(ctx context.Context, course *domain.Course) error
	GetCourseByID(ctx context.Context, id string) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	CountCourses(ctx context.Context) (int, error)
}
