package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// ProjectRepository encapsulates project and membership persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Project, error)
	AddMember(ctx context.Context, projectID, userID int64) error
	RemoveMember(ctx context.Context, projectID, userID int64) error
	ListMembers(ctx context.Context, projectID int64) ([]domain.ProjectMember, error)
	IsMember(ctx context.Context, projectID, userID int64) (bool, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
	).Scan(&project.ID, &project.CreatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `UPDATE projects SET title=$1, description=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, project.Title, project.Description, project.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a project; objects, defects and their dependents go with it
// via foreign key cascades.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `SELECT id, title, description, created_at FROM projects WHERE id=$1`
	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	const query = `
        SELECT p.id, p.title, p.description, p.created_at
        FROM projects p
        JOIN project_users pu ON pu.project_id = p.id
        WHERE pu.user_id = $1
        ORDER BY p.id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(&project.ID, &project.Title, &project.Description, &project.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID int64) error {
	const query = `
        INSERT INTO project_users (project_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, project_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, projectID, userID)
	return err
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	const query = `DELETE FROM project_users WHERE project_id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListMembers returns members in join order, which the assignment validator
// relies on for deterministic output.
func (r *projectRepository) ListMembers(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	const query = `
        SELECT u.id, u.nickname, u.role, pu.joined_at
        FROM project_users pu
        JOIN users u ON u.id = pu.user_id
        WHERE pu.project_id = $1
        ORDER BY pu.id`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectMember
	for rows.Next() {
		var member domain.ProjectMember
		if err := rows.Scan(&member.UserID, &member.Nickname, &member.Role, &member.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *projectRepository) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM project_users WHERE project_id=$1 AND user_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, projectID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
