package dto

import (
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
)

// CreateDefectRequest payload. Priority, due date and assignees are optional;
// photo bytes arrive base64 encoded.
type CreateDefectRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        *string  `json:"priority"`
	DueDate         *string  `json:"due_date"`
	AssignedUserIDs *[]int64 `json:"assigned_user_ids"`
	Photo           []byte   `json:"photo"`
}

// UpdateDefectRequest payload. Absent fields stay untouched.
type UpdateDefectRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Status          *string  `json:"status"`
	Priority        *string  `json:"priority"`
	DueDate         *string  `json:"due_date"`
	AssignedUserIDs *[]int64 `json:"assigned_user_ids"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// SetPhotoRequest payload.
type SetPhotoRequest struct {
	Photo []byte `json:"photo"`
}

// CreateImageRequest payload.
type CreateImageRequest struct {
	Filename  string `json:"filename"`
	ImageData []byte `json:"image_data"`
}

// DefectSummary response.
type DefectSummary struct {
	ID        int64                 `json:"id"`
	ObjectID  int64                 `json:"object_id"`
	Title     string                `json:"title"`
	Status    domain.DefectStatus   `json:"status"`
	Priority  domain.DefectPriority `json:"priority"`
	DueDate   *string               `json:"due_date"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// DefectDetailResponse provides the full defect view.
type DefectDetailResponse struct {
	ID              int64                   `json:"id"`
	ObjectID        int64                   `json:"object_id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Status          domain.DefectStatus     `json:"status"`
	Priority        domain.DefectPriority   `json:"priority"`
	DueDate         *string                 `json:"due_date"`
	AssignedUserIDs []int64                 `json:"assigned_user_ids"`
	HasPhoto        bool                    `json:"has_photo"`
	ImageCount      int                     `json:"image_count"`
	Comments        []DefectCommentResponse `json:"comments"`
	History         []DefectHistoryResponse `json:"history"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// DefectCommentResponse represents one comment.
type DefectCommentResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	UserNickname string    `json:"user_nickname"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefectHistoryResponse represents one audit ledger entry.
type DefectHistoryResponse struct {
	ID           int64     `json:"id"`
	FieldName    string    `json:"field_name"`
	OldValue     *string   `json:"old_value"`
	NewValue     *string   `json:"new_value"`
	UserID       int64     `json:"user_id"`
	UserNickname string    `json:"user_nickname"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefectImageResponse gallery metadata.
type DefectImageResponse struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
