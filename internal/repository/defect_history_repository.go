package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// DefectHistoryRepository reads the audit ledger. Writes happen only inside
// the defect repository transactions.
type DefectHistoryRepository interface {
	ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectHistory, error)
}

type defectHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewDefectHistoryRepository builds repository.
func NewDefectHistoryRepository(pool *pgxpool.Pool) DefectHistoryRepository {
	return &defectHistoryRepository{pool: pool}
}

func (r *defectHistoryRepository) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectHistory, error) {
	const query = `
        SELECT h.id, h.defect_id, h.user_id, u.nickname, h.field_name, h.old_value, h.new_value, h.created_at
        FROM defect_history h
        JOIN users u ON u.id = h.user_id
        WHERE h.defect_id=$1 ORDER BY h.created_at ASC, h.id ASC`
	rows, err := r.pool.Query(ctx, query, defectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DefectHistory
	for rows.Next() {
		var entry domain.DefectHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.DefectID,
			&entry.UserID,
			&entry.UserNickname,
			&entry.FieldName,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
