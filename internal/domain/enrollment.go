package domain

import "time"

// Enrollment links a student to a course. The (StudentID, CourseID) pair is unique.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	CourseID   string    `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrolledCourse is an enrollment joined with its course on read.
type EnrolledCourse struct {
	Enrollment
	Course Course `json:"course"`
}
