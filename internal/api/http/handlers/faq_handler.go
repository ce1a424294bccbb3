package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/dto"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/service"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// FAQHandler manages FAQ management and public view/vote endpoints.
type FAQHandler struct {
	service *service.FAQService
}

// NewFAQHandler constructs handler.
func NewFAQHandler(faqService *service.FAQService) *FAQHandler {
	return &FAQHandler{service: faqService}
}

// List GET /faq.
func (h *FAQHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}
	items := make([]dto.FAQResponse, 0, len(entries))
	for i := range entries {
		items = append(items, faqResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /faq/:id.
func (h *FAQHandler) Get(c *fiber.Ctx) error {
	entry, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": faqResponse(entry)})
}

// Create POST /faq.
func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	entry, err := h.service.Add(c.Context(), req.Question, req.Answer, req.Category)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": faqResponse(entry)})
}

// Update PUT /faq/:id.
func (h *FAQHandler) Update(c *fiber.Ctx) error {
	var req dto.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	entry, err := h.service.Update(c.Context(), c.Params("id"), req.Question, req.Answer, req.Category)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": faqResponse(entry)})
}

// Delete DELETE /faq/:id.
func (h *FAQHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RecordView POST /api/public/faq/:id/view.
func (h *FAQHandler) RecordView(c *fiber.Ctx) error {
	if err := h.service.RecordView(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Vote POST /api/public/faq/:id/vote.
func (h *FAQHandler) Vote(c *fiber.Ctx) error {
	var req dto.FAQVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.Vote(c.Context(), c.Params("id"), req.Helpful); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func faqResponse(entry *domain.FAQEntry) dto.FAQResponse {
	resp := dto.FAQResponse{
		ID:             entry.ID,
		Question:       entry.Question,
		Answer:         entry.Answer,
		Category:       entry.Category,
		ViewCount:      entry.ViewCount,
		HelpfulCount:   entry.HelpfulCount,
		UnhelpfulCount: entry.UnhelpfulCount,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
	if ratio, ok := entry.HelpfulRatio(); ok {
		resp.HelpfulRatio = &ratio
	}
	return resp
}
