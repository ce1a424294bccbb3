package domain

import "time"

// ApplicationStatus enumerates the partner application review lifecycle.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// ApplicationAttachment records a document uploaded during onboarding.
// Payloads live in external storage; only the handle is kept.
type ApplicationAttachment struct {
	FieldName  string
	FileName   string
	StorageKey string
	SizeBytes  int64
}

// PartnerApplication is a submitted onboarding form. Fields keeps the
// wizard's text values verbatim under their form field names.
type PartnerApplication struct {
	ID                string
	ApplicationNumber string
	Fields            map[string]string
	Attachments       []ApplicationAttachment
	Status            ApplicationStatus
	ReviewNote        *string
	CreatedAt         time.Time
	ReviewedAt        *time.Time
}
