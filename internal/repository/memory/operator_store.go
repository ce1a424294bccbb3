package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
)

// OperatorStore is an in-memory OperatorRepository.
type OperatorStore struct {
	mu        sync.RWMutex
	operators map[string]domain.Operator
}

// NewOperatorStore creates an empty store.
func NewOperatorStore() *OperatorStore {
	return &OperatorStore{operators: make(map[string]domain.Operator)}
}

// Put inserts or replaces an operator; used by seeding and tests.
func (s *OperatorStore) Put(op domain.Operator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	op.UpdatedAt = op.CreatedAt
	s.operators[op.ID] = op
}

func (s *OperatorStore) GetByID(_ context.Context, id string) (*domain.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.operators[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := op
	return &copied, nil
}

func (s *OperatorStore) GetByEmail(_ context.Context, email string) (*domain.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, op := range s.operators {
		if op.Email == email {
			copied := op
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *OperatorStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.operators[id]
	if !ok {
		return pgx.ErrNoRows
	}
	op.PasswordHash = hash
	op.UpdatedAt = time.Now()
	s.operators[id] = op
	return nil
}
