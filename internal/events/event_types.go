package events

import (
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDefectCreated       EventType = "defect_created"
	EventDefectUpdated       EventType = "defect_updated"
	EventDefectStatusChanged EventType = "defect_status_changed"
	EventDefectAssigned      EventType = "defect_assigned"
	EventDefectCommentAdded  EventType = "defect_comment_added"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	DefectID  int64       `json:"defect_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DefectCreatedPayload payload.
type DefectCreatedPayload struct {
	ObjectID int64                 `json:"object_id"`
	Title    string                `json:"title"`
	Priority domain.DefectPriority `json:"priority"`
}

// DefectUpdatedPayload lists the fields that actually changed.
type DefectUpdatedPayload struct {
	ChangedFields []string `json:"changed_fields"`
}

// DefectStatusChangedPayload payload.
type DefectStatusChangedPayload struct {
	OldStatus domain.DefectStatus `json:"old_status"`
	NewStatus domain.DefectStatus `json:"new_status"`
}

// DefectAssignedPayload payload.
type DefectAssignedPayload struct {
	AssignedUserIDs []int64 `json:"assigned_user_ids"`
}

// DefectCommentAddedPayload payload.
type DefectCommentAddedPayload struct {
	CommentID int64 `json:"comment_id"`
}
