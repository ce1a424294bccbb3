package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/repository"
)

// ChatStore is an in-memory ChatRepository.
type ChatStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.ChatSession
}

// NewChatStore creates an empty store.
func NewChatStore() *ChatStore {
	return &ChatStore{sessions: make(map[string]domain.ChatSession)}
}

func (s *ChatStore) Create(_ context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	stored := *session
	stored.Messages = nil
	s.sessions[session.ID] = stored
	return nil
}

func (s *ChatStore) Update(_ context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[session.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Status = session.Status
	existing.Agent = session.Agent
	existing.EndedAt = session.EndedAt
	s.sessions[session.ID] = existing
	return nil
}

func (s *ChatStore) GetByID(_ context.Context, id string) (*domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := session
	return &copied, nil
}

func (s *ChatStore) ListWithFilter(_ context.Context, filter repository.ChatFilter) ([]domain.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.ChatSession
	for _, session := range s.sessions {
		if len(filter.Statuses) > 0 && !containsChatStatus(filter.Statuses, session.Status) {
			continue
		}
		if filter.Agent != nil && (session.Agent == nil || *session.Agent != *filter.Agent) {
			continue
		}
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}

func containsChatStatus(list []domain.ChatStatus, v domain.ChatStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
