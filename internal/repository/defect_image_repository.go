package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/defect-service/internal/domain"
)

// DefectImageRepository stores defect gallery images.
type DefectImageRepository interface {
	Create(ctx context.Context, image *domain.DefectImage) error
	GetByID(ctx context.Context, id int64) (*domain.DefectImage, error)
	ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectImage, error)
	CountByDefect(ctx context.Context, defectID int64) (int, error)
}

type defectImageRepository struct {
	pool *pgxpool.Pool
}

// NewDefectImageRepository builds repository.
func NewDefectImageRepository(pool *pgxpool.Pool) DefectImageRepository {
	return &defectImageRepository{pool: pool}
}

func (r *defectImageRepository) Create(ctx context.Context, image *domain.DefectImage) error {
	const query = `
        INSERT INTO defect_images (defect_id, filename, image_data)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		image.DefectID,
		image.Filename,
		image.ImageData,
	).Scan(&image.ID, &image.CreatedAt)
}

func (r *defectImageRepository) GetByID(ctx context.Context, id int64) (*domain.DefectImage, error) {
	const query = `
        SELECT id, defect_id, filename, image_data, created_at
        FROM defect_images WHERE id=$1`
	var image domain.DefectImage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&image.ID,
		&image.DefectID,
		&image.Filename,
		&image.ImageData,
		&image.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &image, nil
}

// ListByDefect returns gallery metadata without payloads.
func (r *defectImageRepository) ListByDefect(ctx context.Context, defectID int64) ([]domain.DefectImage, error) {
	const query = `
        SELECT id, defect_id, filename, created_at
        FROM defect_images WHERE defect_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, defectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DefectImage
	for rows.Next() {
		var image domain.DefectImage
		if err := rows.Scan(&image.ID, &image.DefectID, &image.Filename, &image.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, image)
	}
	return result, rows.Err()
}

func (r *defectImageRepository) CountByDefect(ctx context.Context, defectID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM defect_images WHERE defect_id=$1`, defectID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
