package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository/memory"
	"github.com/tsenako/console-service/internal/wizard"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func newPartnerFixture(t *testing.T) (*PartnerService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	return NewPartnerService(stores.Applications, events.NewInMemoryDispatcher()), stores
}

func completeApplicationValues() map[string]any {
	return map[string]any{
		"nom":               "Razafindrakoto",
		"prenom":            "Lalaina",
		"email":             "lalaina@example.mg",
		"telephone":         "+261 34 05 123 45",
		"nomBoutique":       "Ravinala Artisanat",
		"categorieProduits": "artisanat",
		"ville":             "Antananarivo",
		"cin":               &wizard.FileRef{Name: "cin.pdf", StorageKey: "uploads/cin.pdf", SizeBytes: 2048},
		"registreCommerce":  &wizard.FileRef{Name: "rc.pdf", StorageKey: "uploads/rc.pdf", SizeBytes: 4096},
		"accepteConditions": true,
	}
}

func TestSubmitApplicationReportsFirstBlockedStep(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	values := completeApplicationValues()
	delete(values, "nom")

	_, err := svc.SubmitApplication(context.Background(), values)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	details := apperrors.ToDomainError(err).Details
	assert.Equal(t, "identite", details["step"])
	assert.Equal(t, "nom is required", details["nom"])
}

func TestSubmitApplicationRequiresDocuments(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	values := completeApplicationValues()
	values["cin"] = (*wizard.FileRef)(nil)

	_, err := svc.SubmitApplication(context.Background(), values)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Equal(t, "documents", apperrors.ToDomainError(err).Details["step"])
}

func TestSubmitApplicationCreatesPendingApplication(t *testing.T) {
	svc, _ := newPartnerFixture(t)

	app, err := svc.SubmitApplication(context.Background(), completeApplicationValues())
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.True(t, strings.HasPrefix(app.ApplicationNumber, "CAND-"))
	assert.Equal(t, "Ravinala Artisanat", app.Fields["nomBoutique"])
	assert.Equal(t, "true", app.Fields["accepteConditions"])

	require.Len(t, app.Attachments, 2)
	byField := map[string]domain.ApplicationAttachment{}
	for _, att := range app.Attachments {
		byField[att.FieldName] = att
	}
	assert.Equal(t, "uploads/cin.pdf", byField["cin"].StorageKey)
	assert.Equal(t, int64(4096), byField["registreCommerce"].SizeBytes)
}

func TestApproveSetsStatusAndNote(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	app, err := svc.SubmitApplication(context.Background(), completeApplicationValues())
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), app.ID, "dossier complet")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewNote)
	assert.Equal(t, "dossier complet", *approved.ReviewNote)
	assert.NotNil(t, approved.ReviewedAt)
}

func TestReviewIsFinal(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	app, err := svc.SubmitApplication(context.Background(), completeApplicationValues())
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), app.ID, "registre de commerce illisible")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), app.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestListApplicationsByStatus(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	app, err := svc.SubmitApplication(context.Background(), completeApplicationValues())
	require.NoError(t, err)
	_, err = svc.SubmitApplication(context.Background(), completeApplicationValues())
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), app.ID, "")
	require.NoError(t, err)

	pending, err := svc.List(context.Background(), []domain.ApplicationStatus{domain.ApplicationStatusPending}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := svc.List(context.Background(), []domain.ApplicationStatus{domain.ApplicationStatusApproved}, 0, 0)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, app.ID, approved[0].ID)
}

func TestGetUnknownApplication(t *testing.T) {
	svc, _ := newPartnerFixture(t)
	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
