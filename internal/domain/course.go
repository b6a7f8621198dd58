package domain

import "time"

// Course represents a catalog entry.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Duration    string    `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}
