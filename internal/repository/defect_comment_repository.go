package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// DefectCommentRepository stores append-only defect comments.
type DefectCommentRepository interface {
	Create(ctx context.Context, comment *domain.DefectComment) error
	ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectComment, error)
}

type defectCommentRepository struct {
	pool *pgxpool.Pool
}

// NewDefectCommentRepository builds repository.
func NewDefectCommentRepository(pool *pgxpool.Pool) DefectCommentRepository {
	return &defectCommentRepository{pool: pool}
}

func (r *defectCommentRepository) Create(ctx context.Context, comment *domain.DefectComment) error {
	const query = `
        INSERT INTO defect_comments (defect_id, user_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.DefectID,
		comment.UserID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *defectCommentRepository) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectComment, error) {
	const query = `
        SELECT c.id, c.defect_id, c.user_id, u.nickname, c.content, c.created_at
        FROM defect_comments c
        JOIN users u ON u.id = c.user_id
        WHERE c.defect_id=$1 ORDER BY c.created_at ASC, c.id ASC`
	rows, err := r.pool.Query(ctx, query, defectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DefectComment
	for rows.Next() {
		var comment domain.DefectComment
		if err := rows.Scan(
			&comment.ID,
			&comment.DefectID,
			&comment.UserID,
			&comment.UserNickname,
			&comment.Content,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
