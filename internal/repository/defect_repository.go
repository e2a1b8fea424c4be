package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// DefectRepository encapsulates defect persistence. Create and update commit
// the defect row, the assignee set and the audit entries as one transaction:
// either every accepted change and its history lands, or none of it does.
type DefectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Defect, error)
	ListByObject(ctx context.Context, objectID int64) ([]domain.Defect, error)
	AssignedUserIDs(ctx context.Context, defectID int64) ([]int64, error)
	CreateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs []int64, history []domain.DefectHistory) error
	UpdateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs *[]int64, history []domain.DefectHistory) error
	SetPhoto(ctx context.Context, defectID int64, photo []byte) error
	Delete(ctx context.Context, id int64) error
}

type defectRepository struct {
	pool *pgxpool.Pool
}

// NewDefectRepository instantiates repository.
func NewDefectRepository(pool *pgxpool.Pool) DefectRepository {
	return &defectRepository{pool: pool}
}

const defectColumns = `id, object_id, title, description, status, priority, due_date, photo, created_at, updated_at`

func (r *defectRepository) GetByID(ctx context.Context, id int64) (*domain.Defect, error) {
	query := `SELECT ` + defectColumns + ` FROM defects WHERE id=$1`
	var defect domain.Defect
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&defect.ID,
		&defect.ObjectID,
		&defect.Title,
		&defect.Description,
		&defect.Status,
		&defect.Priority,
		&defect.DueDate,
		&defect.Photo,
		&defect.CreatedAt,
		&defect.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &defect, nil
}

func (r *defectRepository) ListByObject(ctx context.Context, objectID int64) ([]domain.Defect, error) {
	query := `SELECT ` + defectColumns + ` FROM defects WHERE object_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, objectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Defect
	for rows.Next() {
		var defect domain.Defect
		if err := rows.Scan(
			&defect.ID,
			&defect.ObjectID,
			&defect.Title,
			&defect.Description,
			&defect.Status,
			&defect.Priority,
			&defect.DueDate,
			&defect.Photo,
			&defect.CreatedAt,
			&defect.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, defect)
	}
	return result, rows.Err()
}

// AssignedUserIDs returns assignees in assignment order.
func (r *defectRepository) AssignedUserIDs(ctx context.Context, defectID int64) ([]int64, error) {
	const query = `SELECT user_id FROM defect_users WHERE defect_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, defectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *defectRepository) CreateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs []int64, history []domain.DefectHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertDefect = `
        INSERT INTO defects (object_id, title, description, status, priority, due_date, photo)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertDefect,
		defect.ObjectID,
		defect.Title,
		defect.Description,
		defect.Status,
		defect.Priority,
		defect.DueDate,
		defect.Photo,
	).Scan(&defect.ID, &defect.CreatedAt, &defect.UpdatedAt); err != nil {
		return err
	}

	if err := insertAssignees(ctx, tx, defect.ID, assignedIDs); err != nil {
		return err
	}
	if err := insertHistory(ctx, tx, defect.ID, history); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateWithHistory rewrites the defect's mutable scalar fields, replaces the
// assignee set when assignedIDs is non-nil, and appends the history rows. A
// nil assignedIDs leaves the current set untouched.
func (r *defectRepository) UpdateWithHistory(ctx context.Context, defect *domain.Defect, assignedIDs *[]int64, history []domain.DefectHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const updateDefect = `
        UPDATE defects SET title=$1, description=$2, status=$3, priority=$4, due_date=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, updateDefect,
		defect.Title,
		defect.Description,
		defect.Status,
		defect.Priority,
		defect.DueDate,
		defect.ID,
	).Scan(&defect.UpdatedAt); err != nil {
		return err
	}

	if assignedIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM defect_users WHERE defect_id=$1`, defect.ID); err != nil {
			return err
		}
		if err := insertAssignees(ctx, tx, defect.ID, *assignedIDs); err != nil {
			return err
		}
	}
	if err := insertHistory(ctx, tx, defect.ID, history); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *defectRepository) SetPhoto(ctx context.Context, defectID int64, photo []byte) error {
	const query = `UPDATE defects SET photo=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, photo, defectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a defect; comments, history and images cascade.
func (r *defectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM defects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func insertAssignees(ctx context.Context, tx pgx.Tx, defectID int64, ids []int64) error {
	for _, userID := range ids {
		if _, err := tx.Exec(ctx,
			`INSERT INTO defect_users (defect_id, user_id) VALUES ($1, $2)`,
			defectID, userID,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, defectID int64, history []domain.DefectHistory) error {
	const query = `
        INSERT INTO defect_history (defect_id, user_id, field_name, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)`
	for _, entry := range history {
		if _, err := tx.Exec(ctx, query,
			defectID,
			entry.UserID,
			entry.FieldName,
			entry.OldValue,
			entry.NewValue,
		); err != nil {
			return err
		}
	}
	return nil
}
