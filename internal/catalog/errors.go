package catalog

import "errors"

// Catalog errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidCourse  = errors.New("title, description, instructor, and duration are required")
)
