package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
)

// FAQStore is an in-memory FAQRepository.
type FAQStore struct {
	mu      sync.RWMutex
	entries map[string]domain.FAQEntry
}

// NewFAQStore creates an empty store.
func NewFAQStore() *FAQStore {
	return &FAQStore{entries: make(map[string]domain.FAQEntry)}
}

func (s *FAQStore) Create(_ context.Context, entry *domain.FAQEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = entry.CreatedAt
	s.entries[entry.ID] = *entry
	return nil
}

func (s *FAQStore) Update(_ context.Context, entry *domain.FAQEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.entries[entry.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Question = entry.Question
	existing.Answer = entry.Answer
	existing.Category = entry.Category
	existing.UpdatedAt = time.Now()
	s.entries[entry.ID] = existing
	entry.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *FAQStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.entries, id)
	return nil
}

func (s *FAQStore) GetByID(_ context.Context, id string) (*domain.FAQEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := entry
	return &copied, nil
}

func (s *FAQStore) List(_ context.Context, category *string) ([]domain.FAQEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.FAQEntry
	for _, entry := range s.entries {
		if category != nil && entry.Category != *category {
			continue
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *FAQStore) IncrementView(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return pgx.ErrNoRows
	}
	entry.ViewCount++
	s.entries[id] = entry
	return nil
}

func (s *FAQStore) AddVote(_ context.Context, id string, helpful bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if helpful {
		entry.HelpfulCount++
	} else {
		entry.UnhelpfulCount++
	}
	s.entries[id] = entry
	return nil
}
