package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// Dataset is a generic tabular view of a record collection, ready for
// serialization to any delimited or spreadsheet format.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// TicketDataset flattens tickets for export.
func TicketDataset(tickets []domain.Ticket) Dataset {
	ds := Dataset{
		Name:    "tickets",
		Columns: []string{"ticket_number", "customer_name", "customer_email", "subject", "status", "priority", "category", "created_at", "last_response_at", "messages"},
	}
	for i := range tickets {
		t := &tickets[i]
		lastResponse := ""
		if t.LastResponseAt != nil {
			lastResponse = t.LastResponseAt.Format(time.RFC3339)
		}
		ds.Rows = append(ds.Rows, []string{
			t.TicketNumber,
			t.Customer.Name,
			t.Customer.Email,
			t.Subject,
			string(t.Status),
			string(t.Priority),
			string(t.Category),
			t.CreatedAt.Format(time.RFC3339),
			lastResponse,
			strconv.Itoa(len(t.Conversation)),
		})
	}
	return ds
}

// FAQDataset flattens FAQ entries for export.
func FAQDataset(entries []domain.FAQEntry) Dataset {
	ds := Dataset{
		Name:    "faq",
		Columns: []string{"question", "answer", "category", "views", "helpful", "unhelpful", "helpful_ratio"},
	}
	for i := range entries {
		e := &entries[i]
		ratioStr := ""
		if ratio, ok := e.HelpfulRatio(); ok {
			ratioStr = strconv.FormatFloat(ratio, 'f', 2, 64)
		}
		ds.Rows = append(ds.Rows, []string{
			e.Question,
			e.Answer,
			e.Category,
			strconv.Itoa(e.ViewCount),
			strconv.Itoa(e.HelpfulCount),
			strconv.Itoa(e.UnhelpfulCount),
			ratioStr,
		})
	}
	return ds
}

// ChatDataset flattens chat sessions for export.
func ChatDataset(sessions []domain.ChatSession, now time.Time) Dataset {
	ds := Dataset{
		Name:    "chats",
		Columns: []string{"visitor", "email", "ip", "location", "status", "agent", "started_at", "duration_minutes", "messages"},
	}
	for i := range sessions {
		s := &sessions[i]
		name := ""
		if s.Visitor.Name != nil {
			name = *s.Visitor.Name
		}
		email := ""
		if s.Visitor.Email != nil {
			email = *s.Visitor.Email
		}
		agent := ""
		if s.Agent != nil {
			agent = *s.Agent
		}
		duration := ""
		if s.Status == domain.ChatStatusEnded {
			duration = strconv.FormatFloat(s.Duration(now).Minutes(), 'f', 1, 64)
		}
		ds.Rows = append(ds.Rows, []string{
			name,
			email,
			s.Visitor.IP,
			s.Visitor.Location,
			string(s.Status),
			agent,
			s.StartedAt.Format(time.RFC3339),
			duration,
			strconv.Itoa(len(s.Messages)),
		})
	}
	return ds
}

// FileName derives the attachment name for a given format.
func (d Dataset) FileName(format string, now time.Time) string {
	return strings.Join([]string{d.Name, now.Format("20060102")}, "-") + "." + format
}
