package enrollment

import (
	"context"

	"github.com/bissquit/course-garden/internal/domain"
)

// Repository defines the interface for enrollment persistence.
// CreateEnrollment must return ErrAlreadyEnrolled when the (student, course) pair already exists
// and ErrCourseNotFound when the course does not exist at insert time.
type Repository interface {
	CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) error
	EnrollmentExists(ctx context.Context, studentID, courseID string) (bool, error)
	ListStudentCourses(ctx context.Context, studentID string) ([]domain.EnrolledCourse, error)
}

// CourseReader resolves courses. Unknown or malformed ids yield ErrCourseNotFound.
type CourseReader interface {
	GetCourse(ctx context.Context, id string) (*domain.Course, error)
}
