package enrollment

import (
	"errors"

	"github.com/bissquit/course-garden/internal/catalog"
)

// Enrollment errors.
var (
	ErrCourseIDRequired = errors.New("course id is required")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrCourseNotFound   = catalog.ErrCourseNotFound
)
