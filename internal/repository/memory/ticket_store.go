package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/repository"
)

// TicketStore is a mutex-guarded in-memory TicketRepository. It backs
// the no-database mode and the service tests.
type TicketStore struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketStore creates an empty store.
func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]domain.Ticket)}
}

func (s *TicketStore) Create(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	stored := *ticket
	stored.Conversation = nil
	s.tickets[ticket.ID] = stored
	return nil
}

func (s *TicketStore) Update(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Subject = ticket.Subject
	existing.Status = ticket.Status
	existing.Priority = ticket.Priority
	existing.Category = ticket.Category
	existing.Attachments = append([]string(nil), ticket.Attachments...)
	existing.LastResponseAt = ticket.LastResponseAt
	s.tickets[ticket.ID] = existing
	return nil
}

func (s *TicketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (s *TicketStore) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Ticket
	for _, ticket := range s.tickets {
		if matchesTicketFilter(&ticket, filter) {
			result = append(result, ticket)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}

func (s *TicketStore) CountByStatus(_ context.Context, shopID *string) (map[domain.TicketStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.TicketStatus]int)
	for _, ticket := range s.tickets {
		if shopID != nil && (ticket.ShopID == nil || *ticket.ShopID != *shopID) {
			continue
		}
		counts[ticket.Status]++
	}
	return counts, nil
}

func (s *TicketStore) CountByPriorityAtOrAbove(_ context.Context, shopID *string, min domain.TicketPriority) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, ticket := range s.tickets {
		if shopID != nil && (ticket.ShopID == nil || *ticket.ShopID != *shopID) {
			continue
		}
		if ticket.Priority.Rank() >= min.Rank() {
			count++
		}
	}
	return count, nil
}

func matchesTicketFilter(ticket *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.ShopID != nil && (ticket.ShopID == nil || *ticket.ShopID != *filter.ShopID) {
		return false
	}
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, ticket.Priority) {
		return false
	}
	if len(filter.Categories) > 0 && !containsCategory(filter.Categories, ticket.Category) {
		return false
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		needle := strings.ToLower(strings.TrimSpace(*filter.Search))
		haystacks := []string{ticket.TicketNumber, ticket.Customer.Name, ticket.Subject}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsStatus(list []domain.TicketStatus, v domain.TicketStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.TicketPriority, v domain.TicketPriority) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsCategory(list []domain.TicketCategory, v domain.TicketCategory) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
