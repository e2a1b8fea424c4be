package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/events"
	"github.com/spec-kit/defect-service/internal/persistence"
	"github.com/spec-kit/defect-service/internal/policy"
	"github.com/spec-kit/defect-service/internal/repository"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// DefectService coordinates the defect lifecycle: the role filter, the
// assignment validator, the field diff and the audit trail, committed as one
// unit per mutation.
type DefectService struct {
	defects    repository.DefectRepository
	objects    repository.ObjectRepository
	projects   repository.ProjectRepository
	comments   repository.DefectCommentRepository
	history    repository.DefectHistoryRepository
	images     repository.DefectImageRepository
	members    *persistence.MembershipCache
	dispatcher events.Dispatcher
}

// DefectDependencies bundles collaborators for the defect service.
type DefectDependencies struct {
	DefectRepo  repository.DefectRepository
	ObjectRepo  repository.ObjectRepository
	ProjectRepo repository.ProjectRepository
	CommentRepo repository.DefectCommentRepository
	HistoryRepo repository.DefectHistoryRepository
	ImageRepo   repository.DefectImageRepository
	Members     *persistence.MembershipCache
	Dispatcher  events.Dispatcher
}

// DefectCreateInput describes defect creation payload.
type DefectCreateInput struct {
	ObjectID        int64
	Title           string
	Description     string
	Priority        *domain.DefectPriority
	DueDate         *time.Time
	AssignedUserIDs *[]int64
	Photo           []byte
}

// DefectView is the externally visible projection of a defect. History
// values for status and priority carry display labels.
type DefectView struct {
	Defect          *domain.Defect
	AssignedUserIDs []int64
	Comments        []domain.DefectComment
	History         []domain.DefectHistory
	HasPhoto        bool
	ImageCount      int
}

// NewDefectService constructs the service.
func NewDefectService(deps DefectDependencies) *DefectService {
	return &DefectService{
		defects:    deps.DefectRepo,
		objects:    deps.ObjectRepo,
		projects:   deps.ProjectRepo,
		comments:   deps.CommentRepo,
		history:    deps.HistoryRepo,
		images:     deps.ImageRepo,
		members:    deps.Members,
		dispatcher: deps.Dispatcher,
	}
}

// CreateDefect creates a defect under an object. Status always starts at NEW
// and priority defaults to MEDIUM. Fields the actor's role may not set are
// dropped silently; exactly one synthetic "created" history entry is written
// with the defect in the same transaction.
func (s *DefectService) CreateDefect(ctx context.Context, principal domain.Principal, input DefectCreateInput) (*DefectView, error) {
	if !policy.CanWriteDefects(principal.Role) {
		return nil, apperrors.NewForbidden("observers cannot modify defects")
	}

	object, err := s.objects.GetByID(ctx, input.ObjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("object", map[string]any{"object_id": input.ObjectID})
		}
		return nil, apperrors.MapError(err)
	}

	proposed := policy.ProposedUpdate{
		Priority:        input.Priority,
		DueDate:         input.DueDate,
		AssignedUserIDs: input.AssignedUserIDs,
	}
	accepted, err := policy.FilterUpdate(principal.Role, domain.DefectStatusNew, proposed)
	if err != nil {
		return nil, err
	}

	defect := &domain.Defect{
		ObjectID:    object.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      domain.DefectStatusNew,
		Priority:    domain.DefectPriorityMedium,
		Photo:       input.Photo,
	}
	if accepted.Priority != nil {
		defect.Priority = *accepted.Priority
	}
	if accepted.DueDate != nil {
		defect.DueDate = accepted.DueDate
	}

	assigned := []int64{}
	if accepted.AssignedUserIDs != nil {
		assigned, err = s.validAssignees(ctx, object.ProjectID, *accepted.AssignedUserIDs)
		if err != nil {
			return nil, err
		}
	}

	createdValue := domain.CreatedHistoryValue
	history := []domain.DefectHistory{{
		UserID:    principal.UserID,
		FieldName: domain.FieldCreated,
		OldValue:  nil,
		NewValue:  &createdValue,
	}}

	if err := s.defects.CreateWithHistory(ctx, defect, assigned, history); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, principal, events.Event{
		Type:     events.EventDefectCreated,
		DefectID: defect.ID,
		Payload: events.DefectCreatedPayload{
			ObjectID: defect.ObjectID,
			Title:    defect.Title,
			Priority: defect.Priority,
		},
	})
	if len(assigned) > 0 {
		s.publish(ctx, principal, events.Event{
			Type:     events.EventDefectAssigned,
			DefectID: defect.ID,
			Payload:  events.DefectAssignedPayload{AssignedUserIDs: assigned},
		})
	}

	return s.buildView(ctx, defect)
}

// UpdateDefect applies a partial mutation to a defect. The proposed field set
// is narrowed by role, assignee ids are reduced to project engineers, and
// every accepted change that differs from the stored value yields exactly one
// history entry, committed atomically with the field writes.
func (s *DefectService) UpdateDefect(ctx context.Context, principal domain.Principal, defectID int64, proposed policy.ProposedUpdate) (*DefectView, error) {
	defect, err := s.defects.GetByID(ctx, defectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return nil, apperrors.MapError(err)
	}

	accepted, err := policy.FilterUpdate(principal.Role, defect.Status, proposed)
	if err != nil {
		return nil, err
	}

	var history []domain.DefectHistory
	entry := func(field string, oldVal, newVal *string) {
		history = append(history, domain.DefectHistory{
			UserID:    principal.UserID,
			FieldName: field,
			OldValue:  oldVal,
			NewValue:  newVal,
		})
	}

	oldStatus := defect.Status
	if accepted.Title != nil && *accepted.Title != defect.Title {
		entry(domain.FieldTitle, strPtr(defect.Title), accepted.Title)
		defect.Title = *accepted.Title
	}
	if accepted.Description != nil && *accepted.Description != defect.Description {
		entry(domain.FieldDescription, optStrPtr(defect.Description), optStrPtr(*accepted.Description))
		defect.Description = *accepted.Description
	}
	if accepted.Status != nil && *accepted.Status != defect.Status {
		entry(domain.FieldStatus, strPtr(string(defect.Status)), strPtr(string(*accepted.Status)))
		defect.Status = *accepted.Status
	}
	if accepted.Priority != nil && *accepted.Priority != defect.Priority {
		entry(domain.FieldPriority, strPtr(string(defect.Priority)), strPtr(string(*accepted.Priority)))
		defect.Priority = *accepted.Priority
	}
	if accepted.DueDate != nil && !sameDate(defect.DueDate, accepted.DueDate) {
		entry(domain.FieldDueDate, formatDate(defect.DueDate), formatDate(accepted.DueDate))
		defect.DueDate = accepted.DueDate
	}

	var replaceAssignees *[]int64
	var newAssignees []int64
	if accepted.AssignedUserIDs != nil {
		object, err := s.objects.GetByID(ctx, defect.ObjectID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		valid, err := s.validAssignees(ctx, object.ProjectID, *accepted.AssignedUserIDs)
		if err != nil {
			return nil, err
		}
		current, err := s.defects.AssignedUserIDs(ctx, defect.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !sameIDSet(current, valid) {
			entry(domain.FieldAssignedUsers, strPtr(domain.FormatIDSet(current)), strPtr(domain.FormatIDSet(valid)))
			replaceAssignees = &valid
			newAssignees = valid
		}
	}

	if len(history) > 0 {
		if err := s.defects.UpdateWithHistory(ctx, defect, replaceAssignees, history); err != nil {
			return nil, apperrors.MapError(err)
		}

		changed := make([]string, 0, len(history))
		for _, h := range history {
			changed = append(changed, h.FieldName)
		}
		s.publish(ctx, principal, events.Event{
			Type:     events.EventDefectUpdated,
			DefectID: defect.ID,
			Payload:  events.DefectUpdatedPayload{ChangedFields: changed},
		})
		if defect.Status != oldStatus {
			s.publish(ctx, principal, events.Event{
				Type:     events.EventDefectStatusChanged,
				DefectID: defect.ID,
				Payload: events.DefectStatusChangedPayload{
					OldStatus: oldStatus,
					NewStatus: defect.Status,
				},
			})
		}
		if replaceAssignees != nil {
			s.publish(ctx, principal, events.Event{
				Type:     events.EventDefectAssigned,
				DefectID: defect.ID,
				Payload:  events.DefectAssignedPayload{AssignedUserIDs: newAssignees},
			})
		}
	}

	return s.buildView(ctx, defect)
}

// GetDefect returns the full view of one defect. Reads are unrestricted.
func (s *DefectService) GetDefect(ctx context.Context, defectID int64) (*DefectView, error) {
	defect, err := s.defects.GetByID(ctx, defectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.buildView(ctx, defect)
}

// ListByObject returns the defects of one object.
func (s *DefectService) ListByObject(ctx context.Context, objectID int64) ([]domain.Defect, error) {
	if _, err := s.objects.GetByID(ctx, objectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("object", map[string]any{"object_id": objectID})
		}
		return nil, apperrors.MapError(err)
	}
	defects, err := s.defects.ListByObject(ctx, objectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return defects, nil
}

// DeleteDefect removes a defect with all comments, history and images.
func (s *DefectService) DeleteDefect(ctx context.Context, principal domain.Principal, defectID int64) error {
	if principal.Role != domain.RoleManager {
		return apperrors.NewForbidden("only managers can delete defects")
	}
	if err := s.defects.Delete(ctx, defectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddComment appends a comment to a defect.
func (s *DefectService) AddComment(ctx context.Context, principal domain.Principal, defectID int64, content string) (*domain.DefectComment, error) {
	if !policy.CanWriteDefects(principal.Role) {
		return nil, apperrors.NewForbidden("observers cannot modify defects")
	}
	if _, err := s.defects.GetByID(ctx, defectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return nil, apperrors.MapError(err)
	}

	comment := &domain.DefectComment{
		DefectID: defectID,
		UserID:   principal.UserID,
		Content:  strings.TrimSpace(content),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, principal, events.Event{
		Type:     events.EventDefectCommentAdded,
		DefectID: defectID,
		Payload:  events.DefectCommentAddedPayload{CommentID: comment.ID},
	})
	return comment, nil
}

// SetPhoto stores the defect's single photo slot.
func (s *DefectService) SetPhoto(ctx context.Context, principal domain.Principal, defectID int64, photo []byte) error {
	if !policy.CanWriteDefects(principal.Role) {
		return apperrors.NewForbidden("observers cannot modify defects")
	}
	if err := s.defects.SetPhoto(ctx, defectID, photo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddImage appends a gallery image to a defect.
func (s *DefectService) AddImage(ctx context.Context, principal domain.Principal, defectID int64, filename string, data []byte) (*domain.DefectImage, error) {
	if !policy.CanWriteDefects(principal.Role) {
		return nil, apperrors.NewForbidden("observers cannot modify defects")
	}
	if _, err := s.defects.GetByID(ctx, defectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("defect", map[string]any{"defect_id": defectID})
		}
		return nil, apperrors.MapError(err)
	}

	image := &domain.DefectImage{
		DefectID:  defectID,
		Filename:  filename,
		ImageData: data,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, apperrors.MapError(err)
	}
	return image, nil
}

// GetImage fetches one gallery image with payload.
func (s *DefectService) GetImage(ctx context.Context, defectID, imageID int64) (*domain.DefectImage, error) {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("image", map[string]any{"image_id": imageID})
		}
		return nil, apperrors.MapError(err)
	}
	if image.DefectID != defectID {
		return nil, apperrors.NewNotFound("image", map[string]any{"image_id": imageID})
	}
	return image, nil
}

// validAssignees intersects the proposed ids with the project's engineers,
// keeping membership enumeration order. Ids outside the engineer set are
// dropped without error.
func (s *DefectService) validAssignees(ctx context.Context, projectID int64, proposed []int64) ([]int64, error) {
	engineers, hit := s.members.GetEngineers(ctx, projectID)
	if !hit {
		memberList, err := s.projects.ListMembers(ctx, projectID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		engineers = make([]int64, 0, len(memberList))
		for _, member := range memberList {
			if member.Role == domain.RoleEngineer {
				engineers = append(engineers, member.UserID)
			}
		}
		s.members.SetEngineers(ctx, projectID, engineers)
	}

	proposedSet := make(map[int64]struct{}, len(proposed))
	for _, id := range proposed {
		proposedSet[id] = struct{}{}
	}

	valid := []int64{}
	for _, id := range engineers {
		if _, ok := proposedSet[id]; ok {
			valid = append(valid, id)
		}
	}
	return valid, nil
}

func (s *DefectService) buildView(ctx context.Context, defect *domain.Defect) (*DefectView, error) {
	assigned, err := s.defects.AssignedUserIDs(ctx, defect.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	comments, err := s.comments.ListByDefect(ctx, defect.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	history, err := s.history.ListByDefect(ctx, defect.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	imageCount, err := s.images.CountByDefect(ctx, defect.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DefectView{
		Defect:          defect,
		AssignedUserIDs: assigned,
		Comments:        comments,
		History:         translateHistory(history),
		HasPhoto:        defect.HasPhoto(),
		ImageCount:      imageCount,
	}, nil
}

// translateHistory maps stored status/priority enum values to display labels.
// Translation is presentation only; stored rows keep raw values.
func translateHistory(entries []domain.DefectHistory) []domain.DefectHistory {
	out := make([]domain.DefectHistory, len(entries))
	for i, entry := range entries {
		switch entry.FieldName {
		case domain.FieldStatus:
			entry.OldValue = mapValue(entry.OldValue, func(v string) string { return domain.DefectStatus(v).DisplayLabel() })
			entry.NewValue = mapValue(entry.NewValue, func(v string) string { return domain.DefectStatus(v).DisplayLabel() })
		case domain.FieldPriority:
			entry.OldValue = mapValue(entry.OldValue, func(v string) string { return domain.DefectPriority(v).DisplayLabel() })
			entry.NewValue = mapValue(entry.NewValue, func(v string) string { return domain.DefectPriority(v).DisplayLabel() })
		}
		out[i] = entry
	}
	return out
}

func (s *DefectService) publish(ctx context.Context, principal domain.Principal, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{UserID: principal.UserID, Role: principal.Role}
	_ = s.dispatcher.Publish(ctx, event)
}

func strPtr(s string) *string {
	return &s
}

// optStrPtr treats the empty string as an absent value.
func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameIDSet(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]int64{}, a...)
	bs := append([]int64{}, b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func mapValue(val *string, fn func(string) string) *string {
	if val == nil {
		return nil
	}
	mapped := fn(*val)
	return &mapped
}
