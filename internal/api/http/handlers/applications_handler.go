package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/dto"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/service"
	"github.com/tsenako/console-service/internal/wizard"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// ApplicationsHandler manages partner onboarding intake and the
// platform review queue.
type ApplicationsHandler struct {
	service *service.PartnerService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(partnerService *service.PartnerService) *ApplicationsHandler {
	return &ApplicationsHandler{service: partnerService}
}

// Submit POST /api/public/partner-applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	values := make(map[string]any, len(req.Fields)+len(req.Files))
	for name, value := range req.Fields {
		values[name] = value
	}
	for name, file := range req.Files {
		values[name] = &wizard.FileRef{
			Name:       file.FileName,
			StorageKey: file.StorageKey,
			SizeBytes:  file.SizeBytes,
		}
	}
	app, err := h.service.SubmitApplication(c.Context(), values)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// List GET /api/platform/partner-applications.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	var statuses []domain.ApplicationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.ApplicationStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	apps, err := h.service.List(c.Context(), statuses, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, applicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/platform/partner-applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// Approve POST /api/platform/partner-applications/:id/approve.
func (h *ApplicationsHandler) Approve(c *fiber.Ctx) error {
	var req dto.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	app, err := h.service.Approve(c.Context(), c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// Reject POST /api/platform/partner-applications/:id/reject.
func (h *ApplicationsHandler) Reject(c *fiber.Ctx) error {
	var req dto.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	app, err := h.service.Reject(c.Context(), c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

func applicationResponse(app *domain.PartnerApplication) dto.ApplicationResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(app.Attachments))
	for _, att := range app.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{
			FieldName:  att.FieldName,
			FileName:   att.FileName,
			StorageKey: att.StorageKey,
			SizeBytes:  att.SizeBytes,
		})
	}
	return dto.ApplicationResponse{
		ID:                app.ID,
		ApplicationNumber: app.ApplicationNumber,
		Fields:            app.Fields,
		Attachments:       attachments,
		Status:            app.Status,
		ReviewNote:        app.ReviewNote,
		CreatedAt:         app.CreatedAt,
		ReviewedAt:        app.ReviewedAt,
	}
}
