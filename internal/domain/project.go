package domain

import "time"

// Project groups construction objects and the users working on them.
type Project struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// ProjectMember is one row of the project/user membership relation.
type ProjectMember struct {
	UserID   int64
	Nickname string
	Role     Role
	JoinedAt time.Time
}
