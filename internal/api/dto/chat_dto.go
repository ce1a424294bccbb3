package dto

import (
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// StartChatRequest payload for the public widget endpoint.
type StartChatRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IP       string  `json:"ip"`
	Location string  `json:"location"`
}

// ChatMessageRequest payload.
type ChatMessageRequest struct {
	Author domain.MessageAuthor `json:"author"`
	Body   string               `json:"body"`
}

// ChatSummary response.
type ChatSummary struct {
	ID              string            `json:"id"`
	VisitorName     *string           `json:"visitor_name,omitempty"`
	VisitorEmail    *string           `json:"visitor_email,omitempty"`
	VisitorIP       string            `json:"visitor_ip"`
	VisitorLocation string            `json:"visitor_location,omitempty"`
	Status          domain.ChatStatus `json:"status"`
	Agent           *string           `json:"agent,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	DurationSeconds int64             `json:"duration_seconds"`
}

// ChatDetailResponse includes the message log.
type ChatDetailResponse struct {
	ChatSummary
	Messages []MessageResponse `json:"messages"`
}
