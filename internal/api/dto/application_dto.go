package dto

import (
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// SubmitApplicationRequest payload. Fields carries the wizard's text
// and choice inputs; Files carries references to already-uploaded
// documents keyed by field name.
type SubmitApplicationRequest struct {
	Fields map[string]string      `json:"fields"`
	Files  map[string]FileRequest `json:"files"`
}

// FileRequest describes an uploaded document reference.
type FileRequest struct {
	FileName   string `json:"file_name"`
	StorageKey string `json:"storage_key"`
	SizeBytes  int64  `json:"size_bytes"`
}

// ReviewApplicationRequest payload for approve/reject.
type ReviewApplicationRequest struct {
	Note string `json:"note"`
}

// ApplicationResponse response.
type ApplicationResponse struct {
	ID                string                   `json:"id"`
	ApplicationNumber string                   `json:"application_number"`
	Fields            map[string]string        `json:"fields"`
	Attachments       []AttachmentResponse     `json:"attachments"`
	Status            domain.ApplicationStatus `json:"status"`
	ReviewNote        *string                  `json:"review_note,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	ReviewedAt        *time.Time               `json:"reviewed_at,omitempty"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	FieldName  string `json:"field_name"`
	FileName   string `json:"file_name"`
	StorageKey string `json:"storage_key"`
	SizeBytes  int64  `json:"size_bytes"`
}
