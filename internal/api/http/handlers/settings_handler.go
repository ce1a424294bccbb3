package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/dto"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/service"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// SettingsHandler manages console settings sections.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: settingsService}
}

// Get GET /settings/:section.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	section := domain.SettingsSection(c.Params("section"))
	doc, err := h.service.Load(c.Context(), access, section)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{
		Section:       string(section),
		Values:        doc,
		RecentlySaved: h.service.RecentlySaved(c.Context(), access, section),
	}})
}

// UpdateField PATCH /settings/:section.
func (h *SettingsHandler) UpdateField(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSettingsFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	section := domain.SettingsSection(c.Params("section"))
	doc, err := h.service.UpdateField(c.Context(), access, section, req.Path, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{
		Section: string(section),
		Values:  doc,
	}})
}

// Save PUT /settings/:section.
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	var req dto.SaveSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	section := domain.SettingsSection(c.Params("section"))
	if err := h.service.Save(c.Context(), access, section, req.Values); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{
		Section:       string(section),
		Values:        req.Values,
		RecentlySaved: true,
	}})
}

// ChangePassword POST /settings/security/password.
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ChangePassword(c.Context(), access, service.PasswordChangeInput{
		Current:      req.Current,
		New:          req.New,
		Confirmation: req.Confirmation,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
