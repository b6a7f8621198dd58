// Package postgres provides PostgreSQL implementation of the enrollment repository.
package postgres

import (
	"context"
	"fmt"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/enrollment"
	pgutil "github.com/bissquit/course-garden/internal/pkg/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names from migrations.
const (
	studentCourseUniqueConstraint = "enrollments_student_course_key"
	courseForeignKeyConstraint    = "enrollments_course_id_fkey"
)

// Repository implements enrollment.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateEnrollment inserts an enrollment and fills in generated fields.
func (r *Repository) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, enrolled_at
	`
	err := r.db.QueryRow(ctx, query, e.StudentID, e.CourseID).Scan(&e.ID, &e.EnrolledAt)
	if err != nil {
		switch {
		case pgutil.IsUniqueViolation(err, studentCourseUniqueConstraint):
			return enrollment.ErrAlreadyEnrolled
		case pgutil.IsForeignKeyViolation(err, courseForeignKeyConstraint):
			return enrollment.ErrCourseNotFound
		default:
			return fmt.Errorf("create enrollment: %w", err)
		}
	}
	return nil
}

// EnrollmentExists reports whether the student is enrolled in the course.
func (r *Repository) EnrollmentExists(ctx context.Context, studentID, courseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check enrollment exists: %w", err)
	}
	return exists, nil
}

// ListStudentCourses retrieves the student's enrollments joined with their courses.
func (r *Repository) ListStudentCourses(ctx context.Context, studentID string) ([]domain.EnrolledCourse, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.enrolled_at,
		       c.id, c.title, c.description, c.instructor, c.duration, c.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at, e.id
	`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	defer rows.Close()

	result := make([]domain.EnrolledCourse, 0)
	for rows.Next() {
		var ec domain.EnrolledCourse
		if err := rows.Scan(
			&ec.ID,
			&ec.StudentID,
			&ec.CourseID,
			&ec.EnrolledAt,
			&ec.Course.ID,
			&ec.Course.Title,
			&ec.Course.Description,
			&ec.Course.Instructor,
			&ec.Course.Duration,
			&ec.Course.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enrolled course: %w", err)
		}
		result = append(result, ec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrolled courses: %w", err)
	}

	return result, nil
}
