// Package postgres provides PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/course-garden/internal/catalog"
	"github.com/bissquit/course-garden/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements catalog.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateCourse inserts a course and fills in generated fields.
func (r *Repository) CreateCourse(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (title, description, instructor, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Instructor,
		course.Duration,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by its ID.
func (r *Repository) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `
		SELECT id, title, description, instructor, duration, created_at
		FROM courses
		WHERE id = $1
	`
	var course domain.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Instructor,
		&course.Duration,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}
	return &course, nil
}

// ListCourses retrieves all courses ordered by creation time.
func (r *Repository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	query := `
		SELECT id, title, description, instructor, duration, created_at
		FROM courses
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Instructor,
			&course.Duration,
			&course.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// CountCourses returns the number of courses.
func (r *Repository) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}
