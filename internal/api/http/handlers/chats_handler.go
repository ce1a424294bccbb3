package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/api/dto"
	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/service"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// ChatsHandler manages live chat endpoints. Sessions are handled in the
// platform console; the start and message endpoints are public for the
// visitor widget.
type ChatsHandler struct {
	service *service.ChatService
}

// NewChatsHandler constructs handler.
func NewChatsHandler(chatService *service.ChatService) *ChatsHandler {
	return &ChatsHandler{service: chatService}
}

// Start POST /api/public/chats.
func (h *ChatsHandler) Start(c *fiber.Ctx) error {
	var req dto.StartChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.IP) == "" {
		req.IP = c.IP()
	}
	session, err := h.service.Start(c.Context(), domain.Visitor{
		Name:     req.Name,
		Email:    req.Email,
		IP:       req.IP,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": chatSummary(session, time.Now())})
}

// List GET /chats.
func (h *ChatsHandler) List(c *fiber.Ctx) error {
	var statuses []domain.ChatStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.ChatStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	sessions, err := h.service.List(c.Context(), statuses, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.ChatSummary, 0, len(sessions))
	for i := range sessions {
		items = append(items, chatSummary(&sessions[i], now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /chats/:id.
func (h *ChatsHandler) Get(c *fiber.Ctx) error {
	session, err := h.service.View(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatDetail(session, time.Now())})
}

// Take POST /chats/:id/take assigns the session to the calling
// operator.
func (h *ChatsHandler) Take(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	session, err := h.service.Take(c.Context(), c.Params("id"), principal.Operator.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatSummary(session, time.Now())})
}

// End POST /chats/:id/end.
func (h *ChatsHandler) End(c *fiber.Ctx) error {
	session, err := h.service.End(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatSummary(session, time.Now())})
}

// Message POST /api/public/chats/:id/messages and
// POST /api/platform/chats/:id/messages.
func (h *ChatsHandler) Message(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.AppendMessage(c.Context(), c.Params("id"), req.Author, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.MessageResponse{
		ID:        msg.ID,
		Author:    msg.Author,
		Body:      msg.Body,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt,
	}})
}

func chatSummary(session *domain.ChatSession, now time.Time) dto.ChatSummary {
	return dto.ChatSummary{
		ID:              session.ID,
		VisitorName:     session.Visitor.Name,
		VisitorEmail:    session.Visitor.Email,
		VisitorIP:       session.Visitor.IP,
		VisitorLocation: session.Visitor.Location,
		Status:          session.Status,
		Agent:           session.Agent,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		DurationSeconds: int64(session.Duration(now).Seconds()),
	}
}

func chatDetail(session *domain.ChatSession, now time.Time) dto.ChatDetailResponse {
	return dto.ChatDetailResponse{
		ChatSummary: chatSummary(session, now),
		Messages:    messageResponses(session.Messages),
	}
}
