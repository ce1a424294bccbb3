package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/auth"
	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/repository"
	"github.com/tsenako/console-service/internal/repository/memory"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func newSettingsFixture(t *testing.T) (*SettingsService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	svc := NewSettingsService(SettingsDependencies{
		SettingsRepo: stores.Settings,
		OperatorRepo: stores.Operators,
		BcryptCost:   4,
		SavedTTL:     time.Second,
	})
	return svc, stores
}

func TestLoadSeedsDefaultsOnFirstUse(t *testing.T) {
	svc, _ := newSettingsFixture(t)
	doc, err := svc.Load(context.Background(), shopAccess("shop-ravinala"), domain.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, "MGA", doc["devise"])

	// the seeded snapshot persists
	again, err := svc.Load(context.Background(), shopAccess("shop-ravinala"), domain.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestLoadRejectsUnknownSection(t *testing.T) {
	svc, _ := newSettingsFixture(t)
	_, err := svc.Load(context.Background(), platformAccess(), domain.SettingsSection("facturation"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestUpdateFieldPreservesSiblings(t *testing.T) {
	svc, _ := newSettingsFixture(t)
	access := shopAccess("shop-ravinala")

	doc, err := svc.UpdateField(context.Background(), access, domain.SectionSecurity, "doubleAuth.methode", "sms")
	require.NoError(t, err)

	sub := doc["doubleAuth"].(map[string]any)
	assert.Equal(t, "sms", sub["methode"])
	assert.Equal(t, false, sub["active"])

	persisted, err := svc.Load(context.Background(), access, domain.SectionSecurity)
	require.NoError(t, err)
	assert.Equal(t, "sms", persisted["doubleAuth"].(map[string]any)["methode"])
}

func TestUpdateFieldIsScopedPerConsole(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	_, err := svc.UpdateField(context.Background(), shopAccess("shop-ravinala"), domain.SectionGeneral, "nom", "Ravinala Shop")
	require.NoError(t, err)

	platformDoc, err := svc.Load(context.Background(), platformAccess(), domain.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, "Tsenako", platformDoc["nom"])
}

func TestSavePersistsSnapshot(t *testing.T) {
	svc, stores := newSettingsFixture(t)
	access := platformAccess()

	doc := domain.SettingsDocument{"active": true, "message": "Maintenance en cours"}
	require.NoError(t, svc.Save(context.Background(), access, domain.SectionMaintenance, doc))

	stored, err := stores.Settings.Get(context.Background(), "platform", domain.SectionMaintenance)
	require.NoError(t, err)
	assert.Equal(t, true, stored["active"])
}

type gatedSettingsRepo struct {
	inner   repository.SettingsRepository
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *gatedSettingsRepo) Get(ctx context.Context, scopeKey string, section domain.SettingsSection) (domain.SettingsDocument, error) {
	return r.inner.Get(ctx, scopeKey, section)
}

func (r *gatedSettingsRepo) Upsert(ctx context.Context, scopeKey string, section domain.SettingsSection, doc domain.SettingsDocument) error {
	r.once.Do(func() {
		close(r.started)
		<-r.release
	})
	return r.inner.Upsert(ctx, scopeKey, section, doc)
}

func TestSaveRefusesConcurrentSaveOfSameSection(t *testing.T) {
	stores := memory.NewStores()
	repo := &gatedSettingsRepo{
		inner:   stores.Settings,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewSettingsService(SettingsDependencies{
		SettingsRepo: repo,
		OperatorRepo: stores.Operators,
		BcryptCost:   4,
	})
	access := platformAccess()
	doc := domain.SettingsDocument{"active": false}

	done := make(chan error, 1)
	go func() {
		done <- svc.Save(context.Background(), access, domain.SectionMaintenance, doc)
	}()
	<-repo.started

	err := svc.Save(context.Background(), access, domain.SectionMaintenance, doc)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))

	close(repo.release)
	require.NoError(t, <-done)

	// the busy flag is released once the first save finishes
	require.NoError(t, svc.Save(context.Background(), access, domain.SectionMaintenance, doc))
}

type failingSettingsRepo struct {
	repository.SettingsRepository
}

func (r *failingSettingsRepo) Upsert(context.Context, string, domain.SettingsSection, domain.SettingsDocument) error {
	return errors.New("connection reset")
}

func TestSaveFailureSurfacesAsSubmissionError(t *testing.T) {
	stores := memory.NewStores()
	svc := NewSettingsService(SettingsDependencies{
		SettingsRepo: &failingSettingsRepo{SettingsRepository: stores.Settings},
		OperatorRepo: stores.Operators,
		BcryptCost:   4,
	})

	err := svc.Save(context.Background(), platformAccess(), domain.SectionGeneral, domain.SettingsDocument{"nom": "Tsenako"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "SUBMISSION_FAILED"))

	// the busy flag does not stay stuck after a failed save
	err = svc.Save(context.Background(), platformAccess(), domain.SectionGeneral, domain.SettingsDocument{"nom": "Tsenako"})
	assert.True(t, apperrors.IsCode(err, "SUBMISSION_FAILED"))
}

func seedOperator(t *testing.T, stores *memory.Stores, password string) domain.Operator {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	op := domain.Operator{
		ID:           "op-platform-1",
		Name:         "Miora",
		Email:        "miora@tsenako.mg",
		Scope:        domain.ScopePlatform,
		PasswordHash: hash,
	}
	stores.Operators.Put(op)
	return op
}

func TestChangePasswordValidationMatrix(t *testing.T) {
	svc, stores := newSettingsFixture(t)
	seedOperator(t, stores, "ancien-secret")

	cases := []struct {
		name  string
		input PasswordChangeInput
		field string
	}{
		{"missing current", PasswordChangeInput{New: "nouveau-secret", Confirmation: "nouveau-secret"}, "current"},
		{"missing new", PasswordChangeInput{Current: "ancien-secret"}, "new"},
		{"too short", PasswordChangeInput{Current: "ancien-secret", New: "court", Confirmation: "court"}, "new"},
		{"mismatch", PasswordChangeInput{Current: "ancien-secret", New: "nouveau-secret", Confirmation: "autre-chose"}, "confirmation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), platformAccess(), tc.input)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
			assert.Contains(t, apperrors.ToDomainError(err).Details, tc.field)
		})
	}
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	svc, stores := newSettingsFixture(t)
	seedOperator(t, stores, "ancien-secret")

	err := svc.ChangePassword(context.Background(), platformAccess(), PasswordChangeInput{
		Current:      "mauvais-secret",
		New:          "nouveau-secret",
		Confirmation: "nouveau-secret",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestChangePasswordUpdatesHash(t *testing.T) {
	svc, stores := newSettingsFixture(t)
	op := seedOperator(t, stores, "ancien-secret")

	require.NoError(t, svc.ChangePassword(context.Background(), platformAccess(), PasswordChangeInput{
		Current:      "ancien-secret",
		New:          "nouveau-secret",
		Confirmation: "nouveau-secret",
	}))

	fresh, err := stores.Operators.GetByID(context.Background(), op.ID)
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(fresh.PasswordHash, "nouveau-secret"))
	assert.Error(t, auth.ComparePassword(fresh.PasswordHash, "ancien-secret"))
}
