package dto

import (
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateProjectRequest payload.
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddMemberRequest payload.
type AddMemberRequest struct {
	UserID int64 `json:"user_id"`
}

// ProjectResponse response.
type ProjectResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectMemberResponse response.
type ProjectMemberResponse struct {
	UserID   int64       `json:"user_id"`
	Nickname string      `json:"nickname"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}
