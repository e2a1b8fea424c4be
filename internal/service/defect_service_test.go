package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/policy"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

type fakeDefectRepo struct {
	nextID      int64
	defects     map[int64]*domain.Defect
	assignees   map[int64][]int64
	history     map[int64][]domain.DefectHistory
	updateCalls int
}

func newFakeDefectRepo() *fakeDefectRepo {
	return &fakeDefectRepo{
		nextID:    1,
		defects:   map[int64]*domain.Defect{},
		assignees: map[int64][]int64{},
		history:   map[int64][]domain.DefectHistory{},
	}
}

func (f *fakeDefectRepo) GetByID(ctx context.Context, id int64) (*domain.Defect, error) {
	defect, ok := f.defects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *defect
	return &copied, nil
}

func (f *fakeDefectRepo) ListByObject(ctx context.Context, objectID int64) ([]domain.Defect, error) {
	var result []domain.Defect
	for id := int64(1); id < f.nextID; id++ {
		if defect, ok := f.defects[id]; ok && defect.ObjectID == objectID {
			result = append(result, *defect)
		}
	}
	return result, nil
}

func (f *fakeDefectRepo) AssignedUserIDs(ctx context.Context, defectID int64) ([]int64, error) {
	return append([]int64{}, f.assignees[defectID]...), nil
}

func (f *fakeDefectRepo) CreateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs []int64, history []domain.DefectHistory) error {
	defect.ID = f.nextID
	f.nextID++
	now := time.Now()
	defect.CreatedAt = now
	defect.UpdatedAt = now

	copied := *defect
	f.defects[defect.ID] = &copied
	f.assignees[defect.ID] = append([]int64{}, assignedIDs...)
	f.appendHistory(defect.ID, history)
	return nil
}

func (f *fakeDefectRepo) UpdateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs *[]int64, history []domain.DefectHistory) error {
	f.updateCalls++
	if _, ok := f.defects[defect.ID]; !ok {
		return pgx.ErrNoRows
	}
	defect.UpdatedAt = time.Now()
	copied := *defect
	f.defects[defect.ID] = &copied
	if assignedIDs != nil {
		f.assignees[defect.ID] = append([]int64{}, (*assignedIDs)...)
	}
	f.appendHistory(defect.ID, history)
	return nil
}

func (f *fakeDefectRepo) SetPhoto(ctx context.Context, defectID int64, photo []byte) error {
	defect, ok := f.defects[defectID]
	if !ok {
		return pgx.ErrNoRows
	}
	defect.Photo = photo
	return nil
}

func (f *fakeDefectRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.defects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.defects, id)
	return nil
}

func (f *fakeDefectRepo) appendHistory(defectID int64, entries []domain.DefectHistory) {
	for _, entry := range entries {
		entry.DefectID = defectID
		entry.ID = int64(len(f.history[defectID]) + 1)
		entry.CreatedAt = time.Now()
		f.history[defectID] = append(f.history[defectID], entry)
	}
}

type fakeObjectRepo struct {
	objects map[int64]*domain.Object
}

func (f *fakeObjectRepo) Create(ctx context.Context, object *domain.Object) error { return nil }
func (f *fakeObjectRepo) Update(ctx context.Context, object *domain.Object) error { return nil }
func (f *fakeObjectRepo) Delete(ctx context.Context, id int64) error              { return nil }

func (f *fakeObjectRepo) GetByID(ctx context.Context, id int64) (*domain.Object, error) {
	object, ok := f.objects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return object, nil
}

func (f *fakeObjectRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.Object, error) {
	var result []domain.Object
	for _, object := range f.objects {
		if object.ProjectID == projectID {
			result = append(result, *object)
		}
	}
	return result, nil
}

type fakeProjectRepo struct {
	members map[int64][]domain.ProjectMember
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *domain.Project) error { return nil }
func (f *fakeProjectRepo) Update(ctx context.Context, project *domain.Project) error { return nil }
func (f *fakeProjectRepo) Delete(ctx context.Context, id int64) error                { return nil }

func (f *fakeProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if _, ok := f.members[id]; !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.Project{ID: id}, nil
}

func (f *fakeProjectRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) AddMember(ctx context.Context, projectID, userID int64) error    { return nil }
func (f *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, userID int64) error { return nil }

func (f *fakeProjectRepo) ListMembers(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	return f.members[projectID], nil
}

func (f *fakeProjectRepo) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	for _, member := range f.members[projectID] {
		if member.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments map[int64][]domain.DefectComment
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.DefectComment) error {
	comment.ID = int64(len(f.comments[comment.DefectID]) + 1)
	comment.CreatedAt = time.Now()
	f.comments[comment.DefectID] = append(f.comments[comment.DefectID], *comment)
	return nil
}

func (f *fakeCommentRepo) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectComment, error) {
	return f.comments[defectID], nil
}

// fakeHistoryRepo reads the ledger the defect repo writes, mirroring the
// shared table in production.
type fakeHistoryRepo struct {
	defects *fakeDefectRepo
}

func (f *fakeHistoryRepo) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectHistory, error) {
	return append([]domain.DefectHistory{}, f.defects.history[defectID]...), nil
}

type fakeImageRepo struct {
	images map[int64][]domain.DefectImage
}

func (f *fakeImageRepo) Create(ctx context.Context, image *domain.DefectImage) error {
	image.ID = int64(len(f.images[image.DefectID]) + 1)
	image.CreatedAt = time.Now()
	f.images[image.DefectID] = append(f.images[image.DefectID], *image)
	return nil
}

func (f *fakeImageRepo) GetByID(ctx context.Context, id int64) (*domain.DefectImage, error) {
	for _, list := range f.images {
		for _, image := range list {
			if image.ID == id {
				copied := image
				return &copied, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeImageRepo) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectImage, error) {
	return f.images[defectID], nil
}

func (f *fakeImageRepo) CountByDefect(ctx context.Context, defectID int64) (int, error) {
	return len(f.images[defectID]), nil
}

type fixture struct {
	service  *DefectService
	defects  *fakeDefectRepo
	objects  *fakeObjectRepo
	projects *fakeProjectRepo
}

// newFixture wires a service over one project with engineers 5 and 9,
// manager 1, observer 3 and one object (id 10).
func newFixture() *fixture {
	defects := newFakeDefectRepo()
	objects := &fakeObjectRepo{objects: map[int64]*domain.Object{
		10: {ID: 10, ProjectID: 100, Name: "Tower A"},
	}}
	projects := &fakeProjectRepo{members: map[int64][]domain.ProjectMember{
		100: {
			{UserID: 1, Nickname: "marta", Role: domain.RoleManager},
			{UserID: 5, Nickname: "egor", Role: domain.RoleEngineer},
			{UserID: 9, Nickname: "nina", Role: domain.RoleEngineer},
			{UserID: 3, Nickname: "olga", Role: domain.RoleObserver},
		},
	}}

	svc := NewDefectService(DefectDependencies{
		DefectRepo:  defects,
		ObjectRepo:  objects,
		ProjectRepo: projects,
		CommentRepo: &fakeCommentRepo{comments: map[int64][]domain.DefectComment{}},
		HistoryRepo: &fakeHistoryRepo{defects: defects},
		ImageRepo:   &fakeImageRepo{images: map[int64][]domain.DefectImage{}},
	})

	return &fixture{service: svc, defects: defects, objects: objects, projects: projects}
}

var (
	manager  = domain.Principal{UserID: 1, Role: domain.RoleManager}
	engineer = domain.Principal{UserID: 5, Role: domain.RoleEngineer}
	observer = domain.Principal{UserID: 3, Role: domain.RoleObserver}
)

func mustCreate(t *testing.T, f *fixture, principal domain.Principal, input DefectCreateInput) *DefectView {
	t.Helper()
	view, err := f.service.CreateDefect(context.Background(), principal, input)
	if err != nil {
		t.Fatalf("CreateDefect: %v", err)
	}
	return view
}

func TestCreateDefectDefaults(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "Leaking pipe"})

	if view.Defect.Status != domain.DefectStatusNew {
		t.Errorf("status = %v, want NEW", view.Defect.Status)
	}
	if view.Defect.Priority != domain.DefectPriorityMedium {
		t.Errorf("priority = %v, want MEDIUM", view.Defect.Priority)
	}
	if len(view.AssignedUserIDs) != 0 {
		t.Errorf("assignees = %v, want none", view.AssignedUserIDs)
	}

	if len(view.History) != 1 {
		t.Fatalf("history rows = %d, want exactly 1", len(view.History))
	}
	entry := view.History[0]
	if entry.FieldName != domain.FieldCreated {
		t.Errorf("field = %q, want created", entry.FieldName)
	}
	if entry.OldValue != nil {
		t.Errorf("old value = %v, want nil", *entry.OldValue)
	}
	if entry.NewValue == nil || *entry.NewValue != domain.CreatedHistoryValue {
		t.Errorf("new value = %v, want %q", entry.NewValue, domain.CreatedHistoryValue)
	}
}

func TestCreateDefectManagerSetsEverything(t *testing.T) {
	f := newFixture()
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	priority := domain.DefectPriorityCritical
	ids := []int64{9, 5, 777}

	view := mustCreate(t, f, manager, DefectCreateInput{
		ObjectID:        10,
		Title:           "Foundation crack",
		Priority:        &priority,
		DueDate:         &due,
		AssignedUserIDs: &ids,
	})

	if view.Defect.Priority != domain.DefectPriorityCritical {
		t.Errorf("priority = %v", view.Defect.Priority)
	}
	if view.Defect.DueDate == nil || !view.Defect.DueDate.Equal(due) {
		t.Errorf("due date = %v", view.Defect.DueDate)
	}
	// Unknown id 777 drops silently; survivors keep membership order.
	if got := domain.FormatIDSet(view.AssignedUserIDs); got != "[5, 9]" {
		t.Errorf("assignees = %s, want [5, 9]", got)
	}
	if len(view.History) != 1 {
		t.Errorf("creation must write exactly one history row, got %d", len(view.History))
	}
}

func TestCreateDefectEngineerDropsRestrictedFields(t *testing.T) {
	f := newFixture()
	priority := domain.DefectPriorityHigh
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	ids := []int64{5}

	view := mustCreate(t, f, engineer, DefectCreateInput{
		ObjectID:        10,
		Title:           "Broken window",
		Priority:        &priority,
		DueDate:         &due,
		AssignedUserIDs: &ids,
	})

	if view.Defect.Priority != domain.DefectPriorityMedium {
		t.Errorf("priority = %v, want default MEDIUM", view.Defect.Priority)
	}
	if view.Defect.DueDate != nil {
		t.Errorf("due date = %v, want nil", view.Defect.DueDate)
	}
	if len(view.AssignedUserIDs) != 0 {
		t.Errorf("assignees = %v, want none", view.AssignedUserIDs)
	}
}

func TestCreateDefectObserverForbidden(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateDefect(context.Background(), observer, DefectCreateInput{ObjectID: 10, Title: "x"})
	if !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if len(f.defects.defects) != 0 {
		t.Error("observer create must leave no state behind")
	}
}

func TestCreateDefectUnknownObject(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateDefect(context.Background(), manager, DefectCreateInput{ObjectID: 404, Title: "x"})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateDefectManagerFieldDiff(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "Old title"})
	defectID := view.Defect.ID

	title := "New title"
	status := domain.DefectStatusOpen
	priority := domain.DefectPriorityHigh
	updated, err := f.service.UpdateDefect(context.Background(), manager, defectID, policy.ProposedUpdate{
		Title:    &title,
		Status:   &status,
		Priority: &priority,
	})
	if err != nil {
		t.Fatalf("UpdateDefect: %v", err)
	}

	if updated.Defect.Title != "New title" || updated.Defect.Status != domain.DefectStatusOpen {
		t.Errorf("defect not updated: %+v", updated.Defect)
	}

	// One row per changed field, on top of the creation row.
	raw := f.defects.history[defectID]
	if len(raw) != 4 {
		t.Fatalf("history rows = %d, want 4", len(raw))
	}

	byField := map[string]domain.DefectHistory{}
	for _, entry := range raw {
		byField[entry.FieldName] = entry
	}
	if entry := byField[domain.FieldTitle]; entry.OldValue == nil || *entry.OldValue != "Old title" || *entry.NewValue != "New title" {
		t.Errorf("title entry = %+v", entry)
	}
	// Stored values stay raw enum strings.
	if entry := byField[domain.FieldStatus]; *entry.OldValue != "NEW" || *entry.NewValue != "OPEN" {
		t.Errorf("status entry = %+v", entry)
	}
	if entry := byField[domain.FieldPriority]; *entry.OldValue != "MEDIUM" || *entry.NewValue != "HIGH" {
		t.Errorf("priority entry = %+v", entry)
	}
}

func TestUpdateDefectHistoryDisplayLabels(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	status := domain.DefectStatusInProgress
	updated, err := f.service.UpdateDefect(context.Background(), manager, view.Defect.ID, policy.ProposedUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateDefect: %v", err)
	}

	var statusEntry *domain.DefectHistory
	for i := range updated.History {
		if updated.History[i].FieldName == domain.FieldStatus {
			statusEntry = &updated.History[i]
		}
	}
	if statusEntry == nil {
		t.Fatal("no status history entry")
	}
	if *statusEntry.OldValue != "New" || *statusEntry.NewValue != "In progress" {
		t.Errorf("view must translate enum values to labels, got %q -> %q", *statusEntry.OldValue, *statusEntry.NewValue)
	}
}

func TestUpdateDefectAssignmentHistory(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	ids := []int64{9, 5, 42}
	updated, err := f.service.UpdateDefect(context.Background(), manager, view.Defect.ID, policy.ProposedUpdate{AssignedUserIDs: &ids})
	if err != nil {
		t.Fatalf("UpdateDefect: %v", err)
	}

	if got := domain.FormatIDSet(updated.AssignedUserIDs); got != "[5, 9]" {
		t.Errorf("assignees = %s, want [5, 9]", got)
	}

	var entry *domain.DefectHistory
	count := 0
	for i := range updated.History {
		if updated.History[i].FieldName == domain.FieldAssignedUsers {
			entry = &updated.History[i]
			count++
		}
	}
	if count != 1 {
		t.Fatalf("assignment entries = %d, want a single one", count)
	}
	if *entry.OldValue != "[]" || *entry.NewValue != "[5, 9]" {
		t.Errorf("assignment entry = %q -> %q", *entry.OldValue, *entry.NewValue)
	}
}

func TestUpdateDefectNoChangesWritesNothing(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "Same title"})

	title := "Same title"
	status := domain.DefectStatusNew
	ids := []int64{}
	updated, err := f.service.UpdateDefect(context.Background(), manager, view.Defect.ID, policy.ProposedUpdate{
		Title:           &title,
		Status:          &status,
		AssignedUserIDs: &ids,
	})
	if err != nil {
		t.Fatalf("UpdateDefect: %v", err)
	}

	if f.defects.updateCalls != 0 {
		t.Error("no-op update must skip the write entirely")
	}
	if len(updated.History) != 1 {
		t.Errorf("history rows = %d, want only the creation row", len(updated.History))
	}
}

func TestUpdateDefectSameDueDateWritesNothing(t *testing.T) {
	f := newFixture()
	due := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t", DueDate: &due})

	resubmitted := time.Date(2026, 9, 20, 10, 30, 0, 0, time.UTC)
	updated, err := f.service.UpdateDefect(context.Background(), manager, view.Defect.ID, policy.ProposedUpdate{DueDate: &resubmitted})
	if err != nil {
		t.Fatalf("UpdateDefect: %v", err)
	}

	if f.defects.updateCalls != 0 {
		t.Error("same calendar day must not count as a change")
	}
	if len(updated.History) != 1 {
		t.Errorf("history rows = %d, want only the creation row", len(updated.History))
	}
}

func TestUpdateDefectEngineerSilentFiltering(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	// Manager moves the defect out of NEW first.
	status := domain.DefectStatusOpen
	if _, err := f.service.UpdateDefect(context.Background(), manager, view.Defect.ID, policy.ProposedUpdate{Status: &status}); err != nil {
		t.Fatalf("manager update: %v", err)
	}

	priority := domain.DefectPriorityCritical
	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	ids := []int64{5, 9}
	next := domain.DefectStatusInProgress
	updated, err := f.service.UpdateDefect(context.Background(), engineer, view.Defect.ID, policy.ProposedUpdate{
		Status:          &next,
		Priority:        &priority,
		DueDate:         &due,
		AssignedUserIDs: &ids,
	})
	if err != nil {
		t.Fatalf("engineer update: %v", err)
	}

	if updated.Defect.Status != domain.DefectStatusInProgress {
		t.Errorf("status = %v, want IN_PROGRESS", updated.Defect.Status)
	}
	if updated.Defect.Priority != domain.DefectPriorityMedium {
		t.Errorf("priority = %v, restricted field must not change", updated.Defect.Priority)
	}
	if updated.Defect.DueDate != nil {
		t.Error("due date must not change")
	}
	for _, entry := range updated.History {
		switch entry.FieldName {
		case domain.FieldPriority, domain.FieldDueDate, domain.FieldAssignedUsers:
			t.Errorf("engineer produced history for restricted field %q", entry.FieldName)
		}
	}
}

func TestUpdateDefectObserverForbidden(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	title := "hacked"
	_, err := f.service.UpdateDefect(context.Background(), observer, view.Defect.ID, policy.ProposedUpdate{Title: &title})
	if !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if f.defects.defects[view.Defect.ID].Title != "t" {
		t.Error("observer update must not change state")
	}
}

func TestUpdateDefectNotFound(t *testing.T) {
	f := newFixture()
	title := "x"
	_, err := f.service.UpdateDefect(context.Background(), manager, 404, policy.ProposedUpdate{Title: &title})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteDefectManagerOnly(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	if err := f.service.DeleteDefect(context.Background(), engineer, view.Defect.ID); !isForbidden(err) {
		t.Fatalf("engineer delete: expected FORBIDDEN, got %v", err)
	}
	if err := f.service.DeleteDefect(context.Background(), manager, view.Defect.ID); err != nil {
		t.Fatalf("manager delete: %v", err)
	}
	if err := f.service.DeleteDefect(context.Background(), manager, view.Defect.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("second delete: expected NOT_FOUND, got %v", err)
	}
}

func TestAddCommentObserverForbidden(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})

	if _, err := f.service.AddComment(context.Background(), observer, view.Defect.ID, "nope"); !isForbidden(err) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	comment, err := f.service.AddComment(context.Background(), engineer, view.Defect.ID, "fixed the seal")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Content != "fixed the seal" || comment.UserID != engineer.UserID {
		t.Errorf("comment = %+v", comment)
	}
}

func TestDefectViewPhotoAndImages(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "t"})
	defectID := view.Defect.ID

	if view.HasPhoto || view.ImageCount != 0 {
		t.Fatalf("fresh defect: has_photo=%v image_count=%d", view.HasPhoto, view.ImageCount)
	}

	if err := f.service.SetPhoto(context.Background(), engineer, defectID, []byte{1, 2, 3}); err != nil {
		t.Fatalf("SetPhoto: %v", err)
	}
	if _, err := f.service.AddImage(context.Background(), engineer, defectID, "crack.jpg", []byte{4, 5}); err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	refreshed, err := f.service.GetDefect(context.Background(), defectID)
	if err != nil {
		t.Fatalf("GetDefect: %v", err)
	}
	if !refreshed.HasPhoto {
		t.Error("has_photo must be true after SetPhoto")
	}
	if refreshed.ImageCount != 1 {
		t.Errorf("image_count = %d, want 1", refreshed.ImageCount)
	}
}

func TestGetImageScopedToDefect(t *testing.T) {
	f := newFixture()
	first := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "a"})
	second := mustCreate(t, f, manager, DefectCreateInput{ObjectID: 10, Title: "b"})

	image, err := f.service.AddImage(context.Background(), manager, first.Defect.ID, "x.png", []byte{1})
	if err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	if _, err := f.service.GetImage(context.Background(), second.Defect.ID, image.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("image of another defect: expected NOT_FOUND, got %v", err)
	}
	got, err := f.service.GetImage(context.Background(), first.Defect.ID, image.ID)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if got.Filename != "x.png" {
		t.Errorf("filename = %q", got.Filename)
	}
}

func isForbidden(err error) bool {
	domainErr := apperrors.ToDomainError(err)
	return domainErr != nil && domainErr.Code == "FORBIDDEN"
}
