package domain

import (
	"strconv"
	"strings"
	"time"
)

// History field names. FieldCreated marks the synthetic entry written once at
// defect creation.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldStatus        = "status"
	FieldPriority      = "priority"
	FieldDueDate       = "due_date"
	FieldAssignedUsers = "assigned_users"
	FieldCreated       = "created"
)

// CreatedHistoryValue is the new_value of the synthetic creation entry.
const CreatedHistoryValue = "Defect created"

// DefectHistory is an immutable audit ledger entry. Old and new values are
// stringified; nil marks an absent value.
type DefectHistory struct {
	ID           int64
	DefectID     int64
	UserID       int64
	UserNickname string
	FieldName    string
	OldValue     *string
	NewValue     *string
	CreatedAt    time.Time
}

// FormatIDSet renders an assignee id set for history values, e.g. "[5, 9]".
// The empty set renders as "[]". Rendering must be stable so stored history
// round-trips on display.
func FormatIDSet(ids []int64) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
