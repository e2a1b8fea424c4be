package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// ObjectRepository encapsulates construction object persistence.
type ObjectRepository interface {
	Create(ctx context.Context, object *domain.Object) error
	Update(ctx context.Context, object *domain.Object) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Object, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Object, error)
}

type objectRepository struct {
	pool *pgxpool.Pool
}

// NewObjectRepository instantiates repository.
func NewObjectRepository(pool *pgxpool.Pool) ObjectRepository {
	return &objectRepository{pool: pool}
}

func (r *objectRepository) Create(ctx context.Context, object *domain.Object) error {
	const query = `
        INSERT INTO objects (project_id, name, description, address)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		object.ProjectID,
		object.Name,
		object.Description,
		object.Address,
	).Scan(&object.ID, &object.CreatedAt)
}

func (r *objectRepository) Update(ctx context.Context, object *domain.Object) error {
	const query = `UPDATE objects SET name=$1, description=$2, address=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, object.Name, object.Description, object.Address, object.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *objectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM objects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *objectRepository) GetByID(ctx context.Context, id int64) (*domain.Object, error) {
	const query = `
        SELECT id, project_id, name, description, address, created_at
        FROM objects WHERE id=$1`
	var object domain.Object
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&object.ID,
		&object.ProjectID,
		&object.Name,
		&object.Description,
		&object.Address,
		&object.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *objectRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Object, error) {
	const query = `
        SELECT id, project_id, name, description, address, created_at
        FROM objects WHERE project_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Object
	for rows.Next() {
		var object domain.Object
		if err := rows.Scan(
			&object.ID,
			&object.ProjectID,
			&object.Name,
			&object.Description,
			&object.Address,
			&object.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, object)
	}
	return result, rows.Err()
}
