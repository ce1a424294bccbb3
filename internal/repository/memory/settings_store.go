package memory

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
)

type settingsKey struct {
	scope   string
	section domain.SettingsSection
}

// SettingsStore is an in-memory SettingsRepository.
type SettingsStore struct {
	mu   sync.RWMutex
	docs map[settingsKey]domain.SettingsDocument
}

// NewSettingsStore creates an empty store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{docs: make(map[settingsKey]domain.SettingsDocument)}
}

func (s *SettingsStore) Get(_ context.Context, scopeKey string, section domain.SettingsSection) (domain.SettingsDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[settingsKey{scope: scopeKey, section: section}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return doc.DeepCopy(), nil
}

func (s *SettingsStore) Upsert(_ context.Context, scopeKey string, section domain.SettingsSection, doc domain.SettingsDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[settingsKey{scope: scopeKey, section: section}] = doc.DeepCopy()
	return nil
}
