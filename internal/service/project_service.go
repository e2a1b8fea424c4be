package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/persistence"
	"github.com/spec-kit/defect-service/internal/repository"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// ProjectService coordinates project CRUD and membership.
type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	members  *persistence.MembershipCache
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository, members *persistence.MembershipCache) *ProjectService {
	return &ProjectService{projects: projects, users: users, members: members}
}

// CreateProject creates a project; the creating manager becomes a member.
func (s *ProjectService) CreateProject(ctx context.Context, principal domain.Principal, title, description string) (*domain.Project, error) {
	if principal.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers can manage projects")
	}
	project := &domain.Project{
		Title:       strings.TrimSpace(title),
		Description: description,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.projects.AddMember(ctx, project.ID, principal.UserID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// UpdateProject edits title and description.
func (s *ProjectService) UpdateProject(ctx context.Context, principal domain.Principal, projectID int64, title, description string) (*domain.Project, error) {
	if principal.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers can manage projects")
	}
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Title = strings.TrimSpace(title)
	project.Description = description
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// DeleteProject removes a project and, through cascades, its objects and
// defects.
func (s *ProjectService) DeleteProject(ctx context.Context, principal domain.Principal, projectID int64) error {
	if principal.Role != domain.RoleManager {
		return apperrors.NewForbidden("only managers can manage projects")
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return apperrors.MapError(err)
	}
	s.members.Invalidate(ctx, projectID)
	return nil
}

// GetProject fetches one project.
func (s *ProjectService) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	return s.getProject(ctx, projectID)
}

// ListProjectsForUser returns the projects the user is a member of.
func (s *ProjectService) ListProjectsForUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// AddMember adds a user to a project and invalidates the cached engineer set.
func (s *ProjectService) AddMember(ctx context.Context, principal domain.Principal, projectID, userID int64) error {
	if principal.Role != domain.RoleManager {
		return apperrors.NewForbidden("only managers can manage membership")
	}
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	if err := s.projects.AddMember(ctx, projectID, userID); err != nil {
		return apperrors.MapError(err)
	}
	s.members.Invalidate(ctx, projectID)
	return nil
}

// RemoveMember removes a user from a project.
func (s *ProjectService) RemoveMember(ctx context.Context, principal domain.Principal, projectID, userID int64) error {
	if principal.Role != domain.RoleManager {
		return apperrors.NewForbidden("only managers can manage membership")
	}
	if err := s.projects.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("membership", map[string]any{"project_id": projectID, "user_id": userID})
		}
		return apperrors.MapError(err)
	}
	s.members.Invalidate(ctx, projectID)
	return nil
}

// ListMembers returns the project's member list.
func (s *ProjectService) ListMembers(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return nil, err
	}
	memberList, err := s.projects.ListMembers(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return memberList, nil
}

func (s *ProjectService) getProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}
	return project, nil
}
