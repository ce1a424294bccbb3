package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/dto"
	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/service"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints for both consoles and the
// public intake.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Intake POST /api/public/tickets.
func (h *TicketsHandler) Intake(c *fiber.Ctx) error {
	var req dto.TicketIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.Context(), service.TicketIntakeInput{
		ShopID:         req.ShopID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Subject:        req.Subject,
		InitialMessage: req.Message,
		Priority:       req.Priority,
		Category:       req.Category,
		Attachments:    req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.List(c.Context(), access, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.View(c.Context(), access, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Respond POST /tickets/:id/respond.
func (h *TicketsHandler) Respond(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Respond(c.Context(), access, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Close(c.Context(), access, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Reopen POST /tickets/:id/reopen.
func (h *TicketsHandler) Reopen(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Reopen(c.Context(), access, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Stats GET /tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.Context(), access)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketStatsResponse{
		ByStatus:      stats.ByStatus,
		MediumOrAbove: stats.MediumOrAbove,
		Total:         stats.Total,
	}})
}

func accessFromContext(c *fiber.Ctx) (service.Access, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Access{}, apperrors.NewUnauthorized("operator required")
	}
	return service.Access{
		Scope:      principal.Scope,
		OperatorID: principal.Operator.ID,
		ShopID:     principal.ShopID,
	}, nil
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{Search: c.Query("search")}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			filter.Categories = append(filter.Categories, domain.TicketCategory(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:             ticket.ID,
		TicketNumber:   ticket.TicketNumber,
		ShopID:         ticket.ShopID,
		CustomerName:   ticket.Customer.Name,
		CustomerEmail:  ticket.Customer.Email,
		Subject:        ticket.Subject,
		Status:         ticket.Status,
		Priority:       ticket.Priority,
		Category:       ticket.Category,
		CreatedAt:      ticket.CreatedAt,
		LastResponseAt: ticket.LastResponseAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	return dto.TicketDetailResponse{
		TicketSummary: ticketSummary(ticket),
		CustomerPhone: ticket.Customer.Phone,
		Attachments:   ticket.Attachments,
		Conversation:  messageResponses(ticket.Conversation),
	}
}

func messageResponses(messages []domain.Message) []dto.MessageResponse {
	resp := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, dto.MessageResponse{
			ID:        msg.ID,
			Author:    msg.Author,
			Body:      msg.Body,
			Read:      msg.Read,
			CreatedAt: msg.CreatedAt,
		})
	}
	return resp
}
