package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/repository"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// ReportService produces read-side exports. It applies no mutation policy.
type ReportService struct {
	projects repository.ProjectRepository
	objects  repository.ObjectRepository
	defects  repository.DefectRepository
}

// NewReportService constructs the service.
func NewReportService(projects repository.ProjectRepository, objects repository.ObjectRepository, defects repository.DefectRepository) *ReportService {
	return &ReportService{projects: projects, objects: objects, defects: defects}
}

var defectCSVHeader = []string{"defect_id", "object", "title", "status", "priority", "due_date", "created_at", "updated_at"}

// WriteProjectDefectsCSV streams all defects of a project as CSV.
func (s *ReportService) WriteProjectDefectsCSV(ctx context.Context, projectID int64, w io.Writer) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return apperrors.MapError(err)
	}

	objects, err := s.objects.ListByProject(ctx, projectID)
	if err != nil {
		return apperrors.MapError(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(defectCSVHeader); err != nil {
		return apperrors.MapError(err)
	}

	for _, object := range objects {
		defects, err := s.defects.ListByObject(ctx, object.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		for _, defect := range defects {
			record := []string{
				strconv.FormatInt(defect.ID, 10),
				object.Name,
				defect.Title,
				defect.Status.DisplayLabel(),
				defect.Priority.DisplayLabel(),
				dueDateColumn(&defect),
				defect.CreatedAt.Format("2006-01-02 15:04:05"),
				defect.UpdatedAt.Format("2006-01-02 15:04:05"),
			}
			if err := writer.Write(record); err != nil {
				return apperrors.MapError(err)
			}
		}
	}

	writer.Flush()
	return apperrors.MapError(writer.Error())
}

func dueDateColumn(defect *domain.Defect) string {
	if defect.DueDate == nil {
		return ""
	}
	return defect.DueDate.Format("2006-01-02")
}
