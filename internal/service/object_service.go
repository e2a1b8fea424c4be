package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/repository"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// ObjectService coordinates construction object CRUD.
type ObjectService struct {
	objects  repository.ObjectRepository
	projects repository.ProjectRepository
}

// NewObjectService constructs the service.
func NewObjectService(objects repository.ObjectRepository, projects repository.ProjectRepository) *ObjectService {
	return &ObjectService{objects: objects, projects: projects}
}

// CreateObject creates an object under a project.
func (s *ObjectService) CreateObject(ctx context.Context, principal domain.Principal, projectID int64, name, description, address string) (*domain.Object, error) {
	if principal.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers can manage objects")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}

	object := &domain.Object{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Address:     address,
	}
	if err := s.objects.Create(ctx, object); err != nil {
		return nil, apperrors.MapError(err)
	}
	return object, nil
}

// UpdateObject edits an object's descriptive fields. The owning project is
// immutable.
func (s *ObjectService) UpdateObject(ctx context.Context, principal domain.Principal, objectID int64, name, description, address string) (*domain.Object, error) {
	if principal.Role != domain.RoleManager {
		return nil, apperrors.NewForbidden("only managers can manage objects")
	}
	object, err := s.getObject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	object.Name = strings.TrimSpace(name)
	object.Description = description
	object.Address = address
	if err := s.objects.Update(ctx, object); err != nil {
		return nil, apperrors.MapError(err)
	}
	return object, nil
}

// DeleteObject removes an object and, through cascades, its defects.
func (s *ObjectService) DeleteObject(ctx context.Context, principal domain.Principal, objectID int64) error {
	if principal.Role != domain.RoleManager {
		return apperrors.NewForbidden("only managers can manage objects")
	}
	if err := s.objects.Delete(ctx, objectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("object", map[string]any{"object_id": objectID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetObject fetches one object.
func (s *ObjectService) GetObject(ctx context.Context, objectID int64) (*domain.Object, error) {
	return s.getObject(ctx, objectID)
}

// ListByProject returns the objects of one project.
func (s *ObjectService) ListByProject(ctx context.Context, projectID int64) ([]domain.Object, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}
	objects, err := s.objects.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return objects, nil
}

func (s *ObjectService) getObject(ctx context.Context, objectID int64) (*domain.Object, error) {
	object, err := s.objects.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("object", map[string]any{"object_id": objectID})
		}
		return nil, apperrors.MapError(err)
	}
	return object, nil
}
