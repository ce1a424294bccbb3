package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/export"
	"github.com/tsenako/console-service/internal/service"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// ExportHandler serializes console collections to downloadable files.
type ExportHandler struct {
	tickets *service.TicketService
	chats   *service.ChatService
	faq     *service.FAQService
	maxRows int
}

// NewExportHandler constructs handler.
func NewExportHandler(tickets *service.TicketService, chats *service.ChatService, faq *service.FAQService, maxRows int) *ExportHandler {
	if maxRows <= 0 {
		maxRows = 10000
	}
	return &ExportHandler{tickets: tickets, chats: chats, faq: faq, maxRows: maxRows}
}

// Tickets GET /export/tickets.
func (h *ExportHandler) Tickets(c *fiber.Ctx) error {
	access, err := accessFromContext(c)
	if err != nil {
		return err
	}
	filter := parseTicketQuery(c)
	filter.Limit = h.maxRows
	filter.Offset = 0
	tickets, err := h.tickets.List(c.Context(), access, filter)
	if err != nil {
		return err
	}
	return h.send(c, export.TicketDataset(tickets))
}

// Chats GET /export/chats.
func (h *ExportHandler) Chats(c *fiber.Ctx) error {
	sessions, err := h.chats.List(c.Context(), nil, h.maxRows, 0)
	if err != nil {
		return err
	}
	return h.send(c, export.ChatDataset(sessions, time.Now()))
}

// FAQ GET /export/faq.
func (h *ExportHandler) FAQ(c *fiber.Ctx) error {
	entries, err := h.faq.List(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}
	return h.send(c, export.FAQDataset(entries))
}

func (h *ExportHandler) send(c *fiber.Ctx, ds export.Dataset) error {
	format := c.Query("format", "csv")
	var buf bytes.Buffer
	var contentType string

	switch format {
	case "csv":
		contentType = "text/csv"
		if err := export.WriteCSV(&buf, ds); err != nil {
			return apperrors.NewInternalError(err)
		}
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := export.WriteXLSX(&buf, ds); err != nil {
			return apperrors.NewInternalError(err)
		}
	default:
		return apperrors.NewValidationError("unsupported format", map[string]any{
			"format": fmt.Sprintf("%q is not supported, use csv or xlsx", format),
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", ds.FileName(format, time.Now())))
	return c.Send(buf.Bytes())
}
