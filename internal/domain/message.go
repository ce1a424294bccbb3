package domain

import "time"

// MessageAuthor indicates who wrote a conversation message. Ticket
// conversations use CUSTOMER/OPERATOR, live chats use VISITOR/AGENT;
// both consoles share the same message shape.
type MessageAuthor string

const (
	AuthorCustomer MessageAuthor = "CUSTOMER"
	AuthorOperator MessageAuthor = "OPERATOR"
	AuthorVisitor  MessageAuthor = "VISITOR"
	AuthorAgent    MessageAuthor = "AGENT"
)

// ParentKind distinguishes which aggregate a message belongs to.
type ParentKind string

const (
	ParentTicket ParentKind = "TICKET"
	ParentChat   ParentKind = "CHAT"
)

// Message is an append-only conversation entry. Ordering is insertion
// order, which is chronological. The Read flag is stored and exposed but
// never cleared by this service; a mark-as-read action was deliberately
// not invented.
type Message struct {
	ID         string
	ParentKind ParentKind
	ParentID   string
	Author     MessageAuthor
	Body       string
	Read       bool
	CreatedAt  time.Time
}
