package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/defect-service/internal/service"
)

// ReportsHandler serves export endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// ProjectDefectsCSV GET /reports/projects/:id/defects.csv.
func (h *ReportsHandler) ProjectDefectsCSV(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.service.WriteProjectDefectsCSV(c.Context(), projectID, &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="project_%d_defects.csv"`, projectID))
	return c.Send(buf.Bytes())
}
