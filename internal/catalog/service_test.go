package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	mu      sync.Mutex
	courses []domain.Course
	err     error
}

func (m *mockRepository) CreateCourse(_ context.Context, course *domain.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	course.ID = uuid.NewString()
	course.CreatedAt = time.Now()
	m.courses = append(m.courses, *course)
	return nil
}

func (m *mockRepository) GetCourseByID(_ context.Context, id string) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.courses {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, ErrCourseNotFound
}

func (m *mockRepository) ListCourses(_ context.Context) ([]domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Course{}, m.courses...), nil
}

func (m *mockRepository) CountCourses(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, m.err
	}
	return len(m.courses), nil
}

var validCourse = CreateCourseInput{
	Title:       "Go Basics",
	Description: "Learn Go",
	Instructor:  "Rob",
	Duration:    "4 weeks",
}

func TestCreateCourse(t *testing.T) {
	// Arrange
	repo := &mockRepository{}
	service := NewService(repo)

	// Act
	course, err := service.CreateCourse(context.Background(), CreateCourseInput{
		Title:       "  Go Basics ",
		Description: "Learn Go",
		Instructor:  "Rob",
		Duration:    "4 weeks",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "Go Basics", course.Title)
	assert.Len(t, repo.courses, 1)
}

func TestCreateCourse_RequiresAllFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCourseInput)
	}{
		{"title", func(in *CreateCourseInput) { in.Title = "" }},
		{"description", func(in *CreateCourseInput) { in.Description = "  " }},
		{"instructor", func(in *CreateCourseInput) { in.Instructor = "" }},
		{"duration", func(in *CreateCourseInput) { in.Duration = "\t" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			service := NewService(repo)
			input := validCourse
			tt.mutate(&input)

			_, err := service.CreateCourse(context.Background(), input)

			assert.ErrorIs(t, err, ErrInvalidCourse)
			assert.Empty(t, repo.courses)
		})
	}
}

func TestGetCourse(t *testing.T) {
	service := NewService(&mockRepository{})
	ctx := context.Background()

	created, err := service.CreateCourse(ctx, validCourse)
	require.NoError(t, err)

	found, err := service.GetCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	_, err = service.GetCourse(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = service.GetCourse(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListAndCountCourses(t *testing.T) {
	service := NewService(&mockRepository{})
	ctx := context.Background()

	courses, err := service.ListCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)

	for _, title := range []string{"First", "Second"} {
		input := validCourse
		input.Title = title
		_, err := service.CreateCourse(ctx, input)
		require.NoError(t, err)
	}

	courses, err = service.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "First", courses[0].Title)
	assert.Equal(t, "Second", courses[1].Title)

	count, err := service.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_StoreFailure(t *testing.T) {
	service := NewService(&mockRepository{err: errors.New("connection refused")})
	ctx := context.Background()

	_, err := service.CreateCourse(ctx, validCourse)
	assert.ErrorContains(t, err, "connection refused")

	_, err = service.ListCourses(ctx)
	assert.Error(t, err)

	_, err = service.CountCourses(ctx)
	assert.Error(t, err)
}
