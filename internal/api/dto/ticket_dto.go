package dto

import (
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// TicketIntakeRequest payload for the public intake endpoint.
type TicketIntakeRequest struct {
	ShopID        *string               `json:"shop_id"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	CustomerPhone *string               `json:"customer_phone"`
	Subject       string                `json:"subject"`
	Message       string                `json:"message"`
	Priority      domain.TicketPriority `json:"priority"`
	Category      domain.TicketCategory `json:"category"`
	Attachments   []string              `json:"attachments"`
}

// RespondRequest payload.
type RespondRequest struct {
	Body string `json:"body"`
}

// TicketSummary response.
type TicketSummary struct {
	ID             string                `json:"id"`
	TicketNumber   string                `json:"ticket_number"`
	ShopID         *string               `json:"shop_id,omitempty"`
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email"`
	Subject        string                `json:"subject"`
	Status         domain.TicketStatus   `json:"status"`
	Priority       domain.TicketPriority `json:"priority"`
	Category       domain.TicketCategory `json:"category"`
	CreatedAt      time.Time             `json:"created_at"`
	LastResponseAt *time.Time            `json:"last_response_at,omitempty"`
}

// TicketDetailResponse provides full ticket info with its conversation.
type TicketDetailResponse struct {
	TicketSummary
	CustomerPhone *string           `json:"customer_phone,omitempty"`
	Attachments   []string          `json:"attachments,omitempty"`
	Conversation  []MessageResponse `json:"conversation"`
}

// MessageResponse represents one conversation entry.
type MessageResponse struct {
	ID        string               `json:"id"`
	Author    domain.MessageAuthor `json:"author"`
	Body      string               `json:"body"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}

// TicketStatsResponse mirrors the dashboard badge counters.
type TicketStatsResponse struct {
	ByStatus      map[domain.TicketStatus]int `json:"by_status"`
	MediumOrAbove int                         `json:"medium_or_above"`
	Total         int                         `json:"total"`
}
