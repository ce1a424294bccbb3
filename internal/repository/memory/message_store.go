package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsenako/console-service/internal/domain"
)

// MessageStore is an in-memory MessageRepository.
type MessageStore struct {
	mu       sync.RWMutex
	messages []domain.Message
}

// NewMessageStore creates an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Create(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MessageStore) ListByParent(_ context.Context, kind domain.ParentKind, parentID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Message
	for _, msg := range s.messages {
		if msg.ParentKind == kind && msg.ParentID == parentID {
			result = append(result, msg)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
