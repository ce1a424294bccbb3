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

// ApplicationStore is an in-memory ApplicationRepository.
type ApplicationStore struct {
	mu   sync.RWMutex
	apps map[string]domain.PartnerApplication
}

// NewApplicationStore creates an empty store.
func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{apps: make(map[string]domain.PartnerApplication)}
}

func (s *ApplicationStore) Create(_ context.Context, app *domain.PartnerApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	s.apps[app.ID] = *app
	return nil
}

func (s *ApplicationStore) Update(_ context.Context, app *domain.PartnerApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.apps[app.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Status = app.Status
	existing.ReviewNote = app.ReviewNote
	existing.ReviewedAt = app.ReviewedAt
	s.apps[app.ID] = existing
	return nil
}

func (s *ApplicationStore) GetByID(_ context.Context, id string) (*domain.PartnerApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := app
	return &copied, nil
}

func (s *ApplicationStore) ListWithFilter(_ context.Context, filter repository.ApplicationFilter) ([]domain.PartnerApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.PartnerApplication
	for _, app := range s.apps {
		if len(filter.Statuses) > 0 && !containsApplicationStatus(filter.Statuses, app.Status) {
			continue
		}
		result = append(result, app)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return paginate(result, filter.Limit, filter.Offset), nil
}

func containsApplicationStatus(list []domain.ApplicationStatus, v domain.ApplicationStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
