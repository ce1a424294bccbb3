package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/repository"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

const savedFlagKeyPrefix = "settings:saved:"

// SettingsService owns the load/mutate/save lifecycle of console
// settings sections and the operator password-change flow.
type SettingsService struct {
	settings   repository.SettingsRepository
	operators  repository.OperatorRepository
	redis      *redis.Client
	bcryptCost int
	savedTTL   time.Duration

	mu     sync.Mutex
	saving map[string]bool
}

// SettingsDependencies bundles collaborators for the settings service.
type SettingsDependencies struct {
	SettingsRepo repository.SettingsRepository
	OperatorRepo repository.OperatorRepository
	Redis        *redis.Client
	BcryptCost   int
	SavedTTL     time.Duration
}

// NewSettingsService constructs the service.
func NewSettingsService(deps SettingsDependencies) *SettingsService {
	ttl := deps.SavedTTL
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &SettingsService{
		settings:   deps.SettingsRepo,
		operators:  deps.OperatorRepo,
		redis:      deps.Redis,
		bcryptCost: deps.BcryptCost,
		savedTTL:   ttl,
		saving:     make(map[string]bool),
	}
}

// Load returns the section snapshot, seeding defaults on first use.
func (s *SettingsService) Load(ctx context.Context, access Access, section domain.SettingsSection) (domain.SettingsDocument, error) {
	if !domain.KnownSection(section) {
		return nil, apperrors.NewNotFound("settings section", map[string]any{"section": section})
	}
	key := scopeKey(access)
	doc, err := s.settings.Get(ctx, key, section)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		doc = domain.DefaultSettings(access.Scope, section)
		if err := s.settings.Upsert(ctx, key, section, doc); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return doc.DeepCopy(), nil
}

// UpdateField applies a single dot-path mutation, preserving siblings.
func (s *SettingsService) UpdateField(ctx context.Context, access Access, section domain.SettingsSection, path string, value any) (domain.SettingsDocument, error) {
	if path == "" {
		return nil, apperrors.NewValidationError("path is required", map[string]any{"path": "path is required"})
	}
	doc, err := s.Load(ctx, access, section)
	if err != nil {
		return nil, err
	}
	updated := doc.SetPath(path, value)
	if err := s.settings.Upsert(ctx, scopeKey(access), section, updated); err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// Save persists a full section snapshot. A save already in flight for
// the same section is refused rather than queued; on success a
// short-lived saved flag is set so the console can show its transient
// confirmation.
func (s *SettingsService) Save(ctx context.Context, access Access, section domain.SettingsSection, doc domain.SettingsDocument) error {
	if !domain.KnownSection(section) {
		return apperrors.NewNotFound("settings section", map[string]any{"section": section})
	}
	key := scopeKey(access) + ":" + string(section)

	s.mu.Lock()
	if s.saving[key] {
		s.mu.Unlock()
		return apperrors.NewInvalidState("a save is already in progress", nil)
	}
	s.saving[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.saving, key)
		s.mu.Unlock()
	}()

	if err := s.settings.Upsert(ctx, scopeKey(access), section, doc); err != nil {
		return apperrors.NewSubmissionError(err)
	}
	s.setSavedFlag(ctx, key)
	return nil
}

// RecentlySaved reports whether the transient saved flag is still set.
func (s *SettingsService) RecentlySaved(ctx context.Context, access Access, section domain.SettingsSection) bool {
	if s.redis == nil {
		return false
	}
	key := savedFlagKeyPrefix + scopeKey(access) + ":" + string(section)
	exists, err := s.redis.Exists(ctx, key).Result()
	return err == nil && exists > 0
}

// PasswordChangeInput carries the security page sub-form.
type PasswordChangeInput struct {
	Current      string
	New          string
	Confirmation string
}

// ChangePassword validates and applies a password change for the
// calling operator. Complexity rules beyond minimum length are
// advisory text in the console, not enforced here.
func (s *SettingsService) ChangePassword(ctx context.Context, access Access, input PasswordChangeInput) error {
	details := map[string]any{}
	if input.Current == "" {
		details["current"] = "current password is required"
	}
	if input.New == "" {
		details["new"] = "new password is required"
	} else if len(input.New) < 8 {
		details["new"] = "new password must be at least 8 characters"
	}
	if input.New != input.Confirmation {
		details["confirmation"] = "confirmation does not match"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid password change", details)
	}

	operator, err := s.operators.GetByID(ctx, access.OperatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("operator", map[string]any{"operator_id": access.OperatorID})
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(operator.PasswordHash, input.Current); err != nil {
		return apperrors.NewValidationError("current password is incorrect", map[string]any{
			"current": "current password is incorrect",
		})
	}

	hash, err := auth.HashPassword(input.New, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.operators.UpdatePasswordHash(ctx, operator.ID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *SettingsService) setSavedFlag(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Set(ctx, savedFlagKeyPrefix+key, "1", s.savedTTL).Err()
}

func scopeKey(access Access) string {
	if access.Scope == domain.ScopeShop && access.ShopID != nil {
		return "shop:" + *access.ShopID
	}
	return "platform"
}
