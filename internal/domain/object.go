package domain

import "time"

// Object is a construction site belonging to exactly one project.
type Object struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
	Address     string
	CreatedAt   time.Time
}
