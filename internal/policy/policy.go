// Package policy holds the declarative role capability table for defect
// mutations. Filtering is pure and deterministic: given a role and the
// defect's current status it narrows a proposed field set to what the role
// may write. Disallowed fields are dropped silently; only an OBSERVER
// reaching a write path at all is an error.
package policy

import (
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// ProposedUpdate is a partial defect mutation. Nil pointers mean the field
// was not submitted.
type ProposedUpdate struct {
	Title           *string
	Description     *string
	Status          *domain.DefectStatus
	Priority        *domain.DefectPriority
	DueDate         *time.Time
	AssignedUserIDs *[]int64
}

// FilterUpdate narrows proposed to the fields the role may write. It fails
// only when an OBSERVER attempts a write; for other roles it never errors.
func FilterUpdate(role domain.Role, currentStatus domain.DefectStatus, proposed ProposedUpdate) (ProposedUpdate, error) {
	switch role {
	case domain.RoleManager:
		return proposed, nil
	case domain.RoleEngineer:
		accepted := ProposedUpdate{
			Title:       proposed.Title,
			Description: proposed.Description,
		}
		if proposed.Status != nil && engineerMayTransition(currentStatus, *proposed.Status) {
			accepted.Status = proposed.Status
		}
		return accepted, nil
	case domain.RoleObserver:
		return ProposedUpdate{}, apperrors.NewForbidden("observers cannot modify defects")
	default:
		return ProposedUpdate{}, apperrors.NewForbidden("unknown role")
	}
}

// engineerMayTransition gates engineer status changes: the defect must have
// left NEW already, and the target may never be NEW or CLOSED.
func engineerMayTransition(current, target domain.DefectStatus) bool {
	if current == domain.DefectStatusNew {
		return false
	}
	switch target {
	case domain.DefectStatusOpen, domain.DefectStatusInProgress, domain.DefectStatusUnderReview:
		return true
	default:
		return false
	}
}

// CanWriteDefects reports whether the role may reach defect write paths at
// all (creation, comments, photo and image uploads).
func CanWriteDefects(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleEngineer
}
