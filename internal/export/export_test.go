package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/domain"
)

func TestWriteCSVQuotesSpecialCharacters(t *testing.T) {
	ds := Dataset{
		Name:    "tickets",
		Columns: []string{"subject", "customer"},
		Rows: [][]string{
			{`Commande "urgente", non livrée`, "Hery, Rakoto"},
			{"Ligne\nmultiple", "Voahangy"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ds.Columns, records[0])
	assert.Equal(t, ds.Rows[0], records[1])
	assert.Equal(t, ds.Rows[1], records[2])
}

func TestTicketDataset(t *testing.T) {
	last := time.Date(2025, 8, 12, 14, 30, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{
			TicketNumber:   "TKT-20250810-0001",
			Customer:       domain.Customer{Name: "Hery Rakoto", Email: "hery@example.mg"},
			Subject:        "Commande non livrée",
			Status:         domain.TicketStatusInProgress,
			Priority:       domain.TicketPriorityHigh,
			Category:       domain.TicketCategoryDelivery,
			CreatedAt:      time.Date(2025, 8, 10, 8, 0, 0, 0, time.UTC),
			LastResponseAt: &last,
			Conversation:   []domain.Message{{}, {}},
		},
		{
			TicketNumber: "TKT-20250812-0002",
			Customer:     domain.Customer{Name: "Voahangy", Email: "voahangy@example.mg"},
			Subject:      "Paiement refusé",
			Status:       domain.TicketStatusOpen,
			Priority:     domain.TicketPriorityUrgent,
			Category:     domain.TicketCategoryPayment,
			CreatedAt:    time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC),
		},
	}

	ds := TicketDataset(tickets)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "TKT-20250810-0001", ds.Rows[0][0])
	assert.Equal(t, "2", ds.Rows[0][9])
	// no response yet leaves the column empty
	assert.Equal(t, "", ds.Rows[1][8])
}

func TestFAQDatasetLeavesRatioBlankWithoutVotes(t *testing.T) {
	entries := []domain.FAQEntry{
		{Question: "Q1", Answer: "R1", HelpfulCount: 3, UnhelpfulCount: 1},
		{Question: "Q2", Answer: "R2"},
	}

	ds := FAQDataset(entries)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "0.75", ds.Rows[0][6])
	assert.Equal(t, "", ds.Rows[1][6])
}

func TestChatDatasetDurationOnlyForEndedSessions(t *testing.T) {
	now := time.Date(2025, 8, 12, 12, 0, 0, 0, time.UTC)
	ended := now.Add(-30 * time.Minute)
	started := ended.Add(-15 * time.Minute)
	agent := "Miora"
	sessions := []domain.ChatSession{
		{Visitor: domain.Visitor{IP: "197.158.1.24"}, Status: domain.ChatStatusEnded, Agent: &agent, StartedAt: started, EndedAt: &ended},
		{Visitor: domain.Visitor{IP: "197.158.1.30"}, Status: domain.ChatStatusActive, Agent: &agent, StartedAt: now.Add(-5 * time.Minute)},
	}

	ds := ChatDataset(sessions, now)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "15.0", ds.Rows[0][7])
	assert.Equal(t, "", ds.Rows[1][7])
}

func TestFileName(t *testing.T) {
	ds := Dataset{Name: "tickets"}
	now := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "tickets-20250812.csv", ds.FileName("csv", now))
	assert.Equal(t, "tickets-20250812.xlsx", ds.FileName("xlsx", now))
}

func TestWriteXLSXProducesWorkbook(t *testing.T) {
	ds := Dataset{
		Name:    "faq",
		Columns: []string{"question", "answer"},
		Rows:    [][]string{{"Q1", "R1"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, ds))
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
}
