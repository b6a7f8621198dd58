// Package seed populates an empty installation with sample courses and a bootstrap admin.
package seed

import (
	"context"
	"fmt"

	"github.com/bissquit/course-garden/internal/catalog"
	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/ctxlog"
)

// CourseStore creates and counts courses.
type CourseStore interface {
	CountCourses(ctx context.Context) (int, error)
	CreateCourse(ctx context.Context, input catalog.CreateCourseInput) (*domain.Course, error)
}

// AdminStore creates the bootstrap admin.
type AdminStore interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

// Admin describes the bootstrap admin account. Seeding is skipped when Email is empty.
type Admin struct {
	Name     string
	Email    string
	Password string
}

// Options selects what to seed.
type Options struct {
	Courses bool
	Admin   Admin
}

// Result reports what a run changed.
type Result struct {
	CoursesCreated int
	AdminCreated   bool
}

// SampleCourses is the starter catalog.
var SampleCourses = []catalog.CreateCourseInput{
	{
		Title:       "Introduction to JavaScript",
		Description: "Learn the fundamentals of JavaScript programming language",
		Instructor:  "Dr. Sarah Johnson",
		Duration:    "8 weeks",
	},
	{
		Title:       "React.js Fundamentals",
		Description: "Build dynamic web applications with React.js",
		Instructor:  "Prof. Michael Chen",
		Duration:    "10 weeks",
	},
	{
		Title:       "Node.js Backend Development",
		Description: "Create robust backend applications using Node.js and Express",
		Instructor:  "Dr. Emily Rodriguez",
		Duration:    "12 weeks",
	},
	{
		Title:       "MongoDB Database Design",
		Description: "Master NoSQL database design and operations",
		Instructor:  "Prof. David Kim",
		Duration:    "6 weeks",
	},
	{
		Title:       "Full Stack Web Development",
		Description: "Complete guide to building full stack applications",
		Instructor:  "Dr. Lisa Wang",
		Duration:    "16 weeks",
	},
}

// Seeder applies seed data. Every run is idempotent and never removes data.
type Seeder struct {
	courses CourseStore
	admins  AdminStore
}

// New creates a seeder.
func New(courses CourseStore, admins AdminStore) *Seeder {
	return &Seeder{courses: courses, admins: admins}
}

// Run seeds sample courses into an empty catalog and ensures the bootstrap admin exists.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var result Result
	logger := ctxlog.FromContext(ctx)

	if opts.Courses {
		created, err := s.seedCourses(ctx)
		if err != nil {
			return result, err
		}
		result.CoursesCreated = created
		logger.Info("courses seeded", "created", created)
	}

	if opts.Admin.Email == "" {
		logger.Info("bootstrap admin not configured, skipping")
		return result, nil
	}

	created, err := s.admins.EnsureAdmin(ctx, opts.Admin.Name, opts.Admin.Email, opts.Admin.Password)
	if err != nil {
		return result, fmt.Errorf("ensure admin: %w", err)
	}
	result.AdminCreated = created
	logger.Info("bootstrap admin ensured", "email", opts.Admin.Email, "created", created)

	return result, nil
}

func (s *Seeder) seedCourses(ctx context.Context) (int, error) {
	count, err := s.courses.CountCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i, input := range SampleCourses {
		if _, err := s.courses.CreateCourse(ctx, input); err != nil {
			return i, fmt.Errorf("create course %q: %w", input.Title, err)
		}
	}
	return len(SampleCourses), nil
}
