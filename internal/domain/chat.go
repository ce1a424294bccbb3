package domain

import "time"

// ChatStatus enumerates live chat session states.
type ChatStatus string

const (
	ChatStatusWaiting ChatStatus = "WAITING"
	ChatStatusActive  ChatStatus = "ACTIVE"
	ChatStatusEnded   ChatStatus = "ENDED"
)

// Visitor describes the person on the other end of a chat. Name and
// email are optional; IP and location are captured at session start.
type Visitor struct {
	Name     *string
	Email    *string
	IP       string
	Location string
}

// ChatSession is a live conversation handled in the platform console.
type ChatSession struct {
	ID        string
	Visitor   Visitor
	Status    ChatStatus
	Agent     *string
	StartedAt time.Time
	EndedAt   *time.Time
	Messages  []Message
}

// Duration returns elapsed session time. Before the session ends it
// measures against the current clock.
func (s *ChatSession) Duration(now time.Time) time.Duration {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
