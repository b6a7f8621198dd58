// Package enrollment records which students are enrolled in which courses.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
	"github.com/bissquit/course-garden/internal/pkg/metrics"
)

// Service implements enrollment business logic.
type Service struct {
	repo    Repository
	courses CourseReader
}

// NewService creates a new enrollment service.
func NewService(repo Repository, courses CourseReader) *Service {
	return &Service{
		repo:    repo,
		courses: courses,
	}
}

// Enroll enrolls a student in a course and returns the enrollment joined with the course.
// The existence check only produces an early error; the store's unique constraint decides races.
func (s *Service) Enroll(ctx context.Context, studentID, courseID string) (*domain.EnrolledCourse, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrCourseIDRequired
	}

	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	exists, err := s.repo.EnrollmentExists(ctx, studentID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if exists {
		metrics.EnrollmentConflicts.WithLabelValues("precheck").Inc()
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &domain.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
	}
	if err := s.repo.CreateEnrollment(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyEnrolled):
			metrics.EnrollmentConflicts.WithLabelValues("constraint").Inc()
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, ErrCourseNotFound):
			return nil, ErrCourseNotFound
		default:
			return nil, fmt.Errorf("create enrollment: %w", err)
		}
	}

	metrics.EnrollmentsCreated.Inc()
	ctxlog.FromContext(ctx).Info("student enrolled",
		"enrollment_id", enrollment.ID,
		"course_id", course.ID,
	)

	return &domain.EnrolledCourse{
		Enrollment: *enrollment,
		Course:     *course,
	}, nil
}

// ListForStudent returns the student's enrollments with their courses in enrollment order.
func (s *Service) ListForStudent(ctx context.Context, studentID string) ([]domain.EnrolledCourse, error) {
	enrolled, err := s.repo.ListStudentCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return enrolled, nil
}
