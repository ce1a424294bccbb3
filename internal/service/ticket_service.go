package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// Access identifies the console operator performing an action. Shop
// operators only see their own shop's tickets; platform operators see
// everything.
type Access struct {
	Scope      domain.ConsoleScope
	OperatorID string
	ShopID     *string
}

// TicketService coordinates support ticket workflows for both consoles.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.MessageRepository
	Dispatcher  events.Dispatcher
}

// TicketIntakeInput describes a customer-submitted ticket.
type TicketIntakeInput struct {
	ShopID         *string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string
	Subject        string
	InitialMessage string
	Priority       domain.TicketPriority
	Category       domain.TicketCategory
	Attachments    []string
}

// TicketListFilter describes console listing filters. Empty dimensions
// match everything.
type TicketListFilter struct {
	Search     string
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Categories []domain.TicketCategory
	Limit      int
	Offset     int
}

// TicketStats summarizes the current ticket collection for the console
// dashboard badges.
type TicketStats struct {
	ByStatus      map[domain.TicketStatus]int
	MediumOrAbove int
	Total         int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a ticket from the public intake endpoint and seeds
// the conversation with the customer's initial message.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketIntakeInput) (*domain.Ticket, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customer_name"] = "customer_name is required"
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		details["customer_email"] = "customer_email is required"
	}
	if strings.TrimSpace(input.Subject) == "" {
		details["subject"] = "subject is required"
	}
	if strings.TrimSpace(input.InitialMessage) == "" {
		details["message"] = "message is required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("required fields missing", details)
	}

	ticket := &domain.Ticket{
		TicketNumber: generateTicketNumber(time.Now()),
		ShopID:       input.ShopID,
		Customer: domain.Customer{
			Name:  strings.TrimSpace(input.CustomerName),
			Email: strings.TrimSpace(input.CustomerEmail),
			Phone: input.CustomerPhone,
		},
		Subject:     strings.TrimSpace(input.Subject),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		Attachments: input.Attachments,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Category == "" {
		ticket.Category = domain.TicketCategoryOther
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	initial := &domain.Message{
		ParentKind: domain.ParentTicket,
		ParentID:   ticket.ID,
		Author:     domain.AuthorCustomer,
		Body:       strings.TrimSpace(input.InitialMessage),
	}
	if err := s.messages.Create(ctx, initial); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Conversation = []domain.Message{*initial}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			ShopID:       ticket.ShopID,
			Priority:     ticket.Priority,
			Category:     ticket.Category,
			Subject:      ticket.Subject,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the caller, filtered with AND
// semantics across all provided dimensions.
func (s *TicketService) List(ctx context.Context, access Access, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Categories: filter.Categories,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if strings.TrimSpace(filter.Search) != "" {
		search := filter.Search
		repoFilter.Search = &search
	}
	if access.Scope == domain.ScopeShop {
		repoFilter.ShopID = access.ShopID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// View fetches a ticket with its conversation. Pure read: unread flags
// are left untouched.
func (s *TicketService) View(ctx context.Context, access Access, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getScoped(ctx, access, ticketID)
	if err != nil {
		return nil, err
	}
	conversation, err := s.messages.ListByParent(ctx, domain.ParentTicket, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Conversation = conversation
	return ticket, nil
}

// Respond appends exactly one operator message and moves the ticket to
// in-progress. Resolved tickets must be reopened explicitly first.
func (s *TicketService) Respond(ctx context.Context, access Access, ticketID, body string) (*domain.Ticket, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("response body must not be empty", map[string]any{
			"body": "body is required",
		})
	}
	ticket, err := s.getScoped(ctx, access, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewInvalidState("ticket must be reopened before responding", map[string]any{
			"status": ticket.Status,
		})
	}

	msg := &domain.Message{
		ParentKind: domain.ParentTicket,
		ParentID:   ticket.ID,
		Author:     domain.AuthorOperator,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusInProgress
	ticket.LastResponseAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResponded,
		EntityID: ticket.ID,
		Actor:    actorFor(access),
		Payload: events.TicketRespondedPayload{
			MessageID:   msg.ID,
			BodyPreview: stringPreview(msg.Body, 120),
		},
	})
	if oldStatus != ticket.Status {
		s.publishStatusChanged(ctx, access, ticket.ID, oldStatus, ticket.Status)
	}
	return s.View(ctx, access, ticket.ID)
}

// Close resolves a ticket. Closing an already-resolved ticket is a
// no-op, not an error.
func (s *TicketService) Close(ctx context.Context, access Access, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getScoped(ctx, access, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusResolved {
		return s.View(ctx, access, ticket.ID)
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewInvalidState("ticket is closed", map[string]any{"status": ticket.Status})
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusResolved
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChanged(ctx, access, ticket.ID, oldStatus, ticket.Status)
	return s.View(ctx, access, ticket.ID)
}

// Reopen moves a resolved ticket back to in-progress. It is the only
// way back: Respond deliberately refuses resolved tickets.
func (s *TicketService) Reopen(ctx context.Context, access Access, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getScoped(ctx, access, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusResolved {
		return nil, apperrors.NewInvalidState("only resolved tickets can be reopened", map[string]any{
			"status": ticket.Status,
		})
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusInProgress
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChanged(ctx, access, ticket.ID, oldStatus, ticket.Status)
	return s.View(ctx, access, ticket.ID)
}

// Stats recomputes dashboard projections over the visible collection.
func (s *TicketService) Stats(ctx context.Context, access Access) (*TicketStats, error) {
	var shopID *string
	if access.Scope == domain.ScopeShop {
		shopID = access.ShopID
	}
	byStatus, err := s.tickets.CountByStatus(ctx, shopID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	mediumOrAbove, err := s.tickets.CountByPriorityAtOrAbove(ctx, shopID, domain.TicketPriorityMedium)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	total := 0
	for _, count := range byStatus {
		total += count
	}
	return &TicketStats{
		ByStatus:      byStatus,
		MediumOrAbove: mediumOrAbove,
		Total:         total,
	}, nil
}

func (s *TicketService) getScoped(ctx context.Context, access Access, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if access.Scope == domain.ScopeShop {
		if access.ShopID == nil || ticket.ShopID == nil || *ticket.ShopID != *access.ShopID {
			return nil, apperrors.NewForbidden("ticket belongs to another shop")
		}
	}
	return ticket, nil
}

func (s *TicketService) publishStatusChanged(ctx context.Context, access Access, ticketID string, oldStatus, newStatus domain.TicketStatus) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: ticketID,
		Actor:    actorFor(access),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFor(access Access) events.Actor {
	return events.Actor{Scope: access.Scope, OperatorID: access.OperatorID}
}

func generateTicketNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "TKT-" + now.UTC().Format("20060102") + "-" + suffix
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
