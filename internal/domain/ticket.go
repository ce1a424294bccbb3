package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	// TicketStatusClosed is reserved; no transition targets it yet.
	TicketStatusClosed TicketStatus = "CLOSED"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Rank orders priorities so they can be compared with >=.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityLow:
		return 1
	case TicketPriorityMedium:
		return 2
	case TicketPriorityHigh:
		return 3
	case TicketPriorityUrgent:
		return 4
	default:
		return 0
	}
}

// TicketCategory is a closed enumeration of support topics.
type TicketCategory string

const (
	TicketCategoryOrder    TicketCategory = "ORDER"
	TicketCategoryPayment  TicketCategory = "PAYMENT"
	TicketCategoryDelivery TicketCategory = "DELIVERY"
	TicketCategoryProduct  TicketCategory = "PRODUCT"
	TicketCategoryAccount  TicketCategory = "ACCOUNT"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// Customer is denormalized onto the ticket; not a foreign key.
type Customer struct {
	Name  string
	Email string
	Phone *string
}

// Ticket is the aggregate for support requests in both consoles.
type Ticket struct {
	ID             string
	TicketNumber   string
	ShopID         *string
	Customer       Customer
	Subject        string
	Status         TicketStatus
	Priority       TicketPriority
	Category       TicketCategory
	Attachments    []string
	CreatedAt      time.Time
	LastResponseAt *time.Time
	Conversation   []Message
}
