package domain

import (
	"fmt"
	"time"
)

// DefectStatus enumerates lifecycle states for defects.
type DefectStatus string

const (
	DefectStatusNew         DefectStatus = "NEW"
	DefectStatusOpen        DefectStatus = "OPEN"
	DefectStatusInProgress  DefectStatus = "IN_PROGRESS"
	DefectStatusUnderReview DefectStatus = "UNDER_REVIEW"
	DefectStatusClosed      DefectStatus = "CLOSED"
)

// DefectPriority enumerates urgency levels.
type DefectPriority string

const (
	DefectPriorityLow      DefectPriority = "LOW"
	DefectPriorityMedium   DefectPriority = "MEDIUM"
	DefectPriorityHigh     DefectPriority = "HIGH"
	DefectPriorityCritical DefectPriority = "CRITICAL"
)

// ParseDefectStatus validates a raw status string.
func ParseDefectStatus(raw string) (DefectStatus, error) {
	switch DefectStatus(raw) {
	case DefectStatusNew, DefectStatusOpen, DefectStatusInProgress, DefectStatusUnderReview, DefectStatusClosed:
		return DefectStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown defect status %q", raw)
	}
}

// ParseDefectPriority validates a raw priority string.
func ParseDefectPriority(raw string) (DefectPriority, error) {
	switch DefectPriority(raw) {
	case DefectPriorityLow, DefectPriorityMedium, DefectPriorityHigh, DefectPriorityCritical:
		return DefectPriority(raw), nil
	default:
		return "", fmt.Errorf("unknown defect priority %q", raw)
	}
}

var statusLabels = map[DefectStatus]string{
	DefectStatusNew:         "New",
	DefectStatusOpen:        "Open",
	DefectStatusInProgress:  "In progress",
	DefectStatusUnderReview: "Under review",
	DefectStatusClosed:      "Closed",
}

var priorityLabels = map[DefectPriority]string{
	DefectPriorityLow:      "Low",
	DefectPriorityMedium:   "Medium",
	DefectPriorityHigh:     "High",
	DefectPriorityCritical: "Critical",
}

// DisplayLabel returns the human label for a status value. Unknown values
// pass through unchanged so stored history stays renderable.
func (s DefectStatus) DisplayLabel() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// DisplayLabel returns the human label for a priority value.
func (p DefectPriority) DisplayLabel() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// Defect is the aggregate tracked against a construction object. ObjectID is
// immutable after creation.
type Defect struct {
	ID          int64
	ObjectID    int64
	Title       string
	Description string
	Status      DefectStatus
	Priority    DefectPriority
	DueDate     *time.Time
	Photo       []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPhoto reports whether the single photo slot is occupied.
func (d *Defect) HasPhoto() bool {
	return len(d.Photo) > 0
}
