package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/defect-service/internal/api/dto"
	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/policy"
	"github.com/spec-kit/defect-service/internal/service"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// DefectsHandler manages defect endpoints.
type DefectsHandler struct {
	service *service.DefectService
}

// NewDefectsHandler constructs handler.
func NewDefectsHandler(defectService *service.DefectService) *DefectsHandler {
	return &DefectsHandler{service: defectService}
}

// ListDefects GET /objects/:id/defects.
func (h *DefectsHandler) ListDefects(c *fiber.Ctx) error {
	objectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	defects, err := h.service.ListByObject(c.Context(), objectID)
	if err != nil {
		return err
	}
	items := make([]dto.DefectSummary, 0, len(defects))
	for i := range defects {
		items = append(items, defectSummary(&defects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDefect POST /objects/:id/defects.
func (h *DefectsHandler) CreateDefect(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	objectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateDefectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	input := service.DefectCreateInput{
		ObjectID:        objectID,
		Title:           req.Title,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
		Photo:           req.Photo,
	}
	if req.Priority != nil {
		priority, err := domain.ParseDefectPriority(*req.Priority)
		if err != nil {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": *req.Priority})
		}
		input.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return err
		}
		input.DueDate = due
	}

	view, err := h.service.CreateDefect(c.Context(), principal, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": defectDetail(view)})
}

// GetDefect GET /defects/:id.
func (h *DefectsHandler) GetDefect(c *fiber.Ctx) error {
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.GetDefect(c.Context(), defectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": defectDetail(view)})
}

// UpdateDefect PUT /defects/:id.
func (h *DefectsHandler) UpdateDefect(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateDefectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	proposed := policy.ProposedUpdate{
		Title:           req.Title,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
	}
	if req.Status != nil {
		status, err := domain.ParseDefectStatus(*req.Status)
		if err != nil {
			return apperrors.NewValidationError("invalid status", map[string]any{"status": *req.Status})
		}
		proposed.Status = &status
	}
	if req.Priority != nil {
		priority, err := domain.ParseDefectPriority(*req.Priority)
		if err != nil {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": *req.Priority})
		}
		proposed.Priority = &priority
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return err
		}
		proposed.DueDate = due
	}

	view, err := h.service.UpdateDefect(c.Context(), principal, defectID, proposed)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": defectDetail(view)})
}

// DeleteDefect DELETE /defects/:id.
func (h *DefectsHandler) DeleteDefect(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteDefect(c.Context(), principal, defectID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddComment POST /defects/:id/comments.
func (h *DefectsHandler) AddComment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}
	comment, err := h.service.AddComment(c.Context(), principal, defectID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// SetPhoto POST /defects/:id/photo.
func (h *DefectsHandler) SetPhoto(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Photo) == 0 {
		return apperrors.NewValidationError("photo required", nil)
	}
	if err := h.service.SetPhoto(c.Context(), principal, defectID, req.Photo); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddImage POST /defects/:id/images.
func (h *DefectsHandler) AddImage(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Filename == "" || len(req.ImageData) == 0 {
		return apperrors.NewValidationError("filename and image_data required", nil)
	}
	image, err := h.service.AddImage(c.Context(), principal, defectID, req.Filename, req.ImageData)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.DefectImageResponse{
		ID:        image.ID,
		Filename:  image.Filename,
		CreatedAt: image.CreatedAt,
	}})
}

// GetImage GET /defects/:id/images/:imageID.
func (h *DefectsHandler) GetImage(c *fiber.Ctx) error {
	defectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := paramID(c, "imageID")
	if err != nil {
		return err
	}
	image, err := h.service.GetImage(c.Context(), defectID, imageID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+image.Filename+`"`)
	return c.Send(image.ImageData)
}

func parseDate(raw string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", map[string]any{"due_date": raw})
	}
	return &parsed, nil
}

func defectSummary(defect *domain.Defect) dto.DefectSummary {
	return dto.DefectSummary{
		ID:        defect.ID,
		ObjectID:  defect.ObjectID,
		Title:     defect.Title,
		Status:    defect.Status,
		Priority:  defect.Priority,
		DueDate:   formatDueDate(defect.DueDate),
		CreatedAt: defect.CreatedAt,
		UpdatedAt: defect.UpdatedAt,
	}
}

func defectDetail(view *service.DefectView) dto.DefectDetailResponse {
	comments := make([]dto.DefectCommentResponse, 0, len(view.Comments))
	for _, comment := range view.Comments {
		comments = append(comments, commentResponse(&comment))
	}
	history := make([]dto.DefectHistoryResponse, 0, len(view.History))
	for _, entry := range view.History {
		history = append(history, dto.DefectHistoryResponse{
			ID:           entry.ID,
			FieldName:    entry.FieldName,
			OldValue:     entry.OldValue,
			NewValue:     entry.NewValue,
			UserID:       entry.UserID,
			UserNickname: entry.UserNickname,
			CreatedAt:    entry.CreatedAt,
		})
	}
	defect := view.Defect
	return dto.DefectDetailResponse{
		ID:              defect.ID,
		ObjectID:        defect.ObjectID,
		Title:           defect.Title,
		Description:     defect.Description,
		Status:          defect.Status,
		Priority:        defect.Priority,
		DueDate:         formatDueDate(defect.DueDate),
		AssignedUserIDs: view.AssignedUserIDs,
		HasPhoto:        view.HasPhoto,
		ImageCount:      view.ImageCount,
		Comments:        comments,
		History:         history,
		CreatedAt:       defect.CreatedAt,
		UpdatedAt:       defect.UpdatedAt,
	}
}

func commentResponse(comment *domain.DefectComment) dto.DefectCommentResponse {
	return dto.DefectCommentResponse{
		ID:           comment.ID,
		UserID:       comment.UserID,
		UserNickname: comment.UserNickname,
		Content:      comment.Content,
		CreatedAt:    comment.CreatedAt,
	}
}

func formatDueDate(due *time.Time) *string {
	if due == nil {
		return nil
	}
	formatted := due.Format("2006-01-02")
	return &formatted
}
