package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/defect-service/internal/api/dto"
	"github.com/spec-kit/defect-service/internal/domain"
	"github.com/spec-kit/defect-service/internal/service"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

// ObjectsHandler manages construction object endpoints.
type ObjectsHandler struct {
	service *service.ObjectService
}

// NewObjectsHandler constructs handler.
func NewObjectsHandler(objectService *service.ObjectService) *ObjectsHandler {
	return &ObjectsHandler{service: objectService}
}

// ListObjects GET /projects/:id/objects.
func (h *ObjectsHandler) ListObjects(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	objects, err := h.service.ListByProject(c.Context(), projectID)
	if err != nil {
		return err
	}
	items := make([]dto.ObjectResponse, 0, len(objects))
	for i := range objects {
		items = append(items, objectResponse(&objects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateObject POST /projects/:id/objects.
func (h *ObjectsHandler) CreateObject(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	projectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	object, err := h.service.CreateObject(c.Context(), principal, projectID, req.Name, req.Description, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": objectResponse(object)})
}

// GetObject GET /objects/:id.
func (h *ObjectsHandler) GetObject(c *fiber.Ctx) error {
	objectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	object, err := h.service.GetObject(c.Context(), objectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": objectResponse(object)})
}

// UpdateObject PUT /objects/:id.
func (h *ObjectsHandler) UpdateObject(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	objectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	object, err := h.service.UpdateObject(c.Context(), principal, objectID, req.Name, req.Description, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": objectResponse(object)})
}

// DeleteObject DELETE /objects/:id.
func (h *ObjectsHandler) DeleteObject(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	objectID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteObject(c.Context(), principal, objectID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func objectResponse(object *domain.Object) dto.ObjectResponse {
	return dto.ObjectResponse{
		ID:          object.ID,
		ProjectID:   object.ProjectID,
		Name:        object.Name,
		Description: object.Description,
		Address:     object.Address,
		CreatedAt:   object.CreatedAt,
	}
}
