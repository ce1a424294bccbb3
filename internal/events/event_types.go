package events

import (
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketResponded      EventType = "ticket_responded"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventChatTaken            EventType = "chat_taken"
	EventChatEnded            EventType = "chat_ended"
	EventApplicationSubmitted EventType = "application_submitted"
	EventFAQChanged           EventType = "faq_changed"
)

// Actor identifies who triggered an event. Public intake endpoints
// publish with an empty OperatorID.
type Actor struct {
	Scope      domain.ConsoleScope `json:"scope,omitempty"`
	OperatorID string              `json:"operator_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	ShopID       *string               `json:"shop_id,omitempty"`
	Priority     domain.TicketPriority `json:"priority"`
	Category     domain.TicketCategory `json:"category"`
	Subject      string                `json:"subject"`
}

// TicketRespondedPayload payload.
type TicketRespondedPayload struct {
	MessageID   string `json:"message_id"`
	BodyPreview string `json:"body_preview"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// ChatTakenPayload payload.
type ChatTakenPayload struct {
	Agent string `json:"agent"`
}

// ChatEndedPayload payload.
type ChatEndedPayload struct {
	Agent           *string `json:"agent,omitempty"`
	DurationSeconds int64   `json:"duration_seconds"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationNumber string `json:"application_number"`
	ShopName          string `json:"shop_name,omitempty"`
}

// FAQChangedPayload payload.
type FAQChangedPayload struct {
	Action   string `json:"action"`
	Question string `json:"question,omitempty"`
}
