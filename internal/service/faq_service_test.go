package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository/memory"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func newFAQFixture(t *testing.T) *FAQService {
	t.Helper()
	stores := memory.NewStores()
	return NewFAQService(stores.FAQ, events.NewInMemoryDispatcher())
}

func TestAddRequiresQuestionAndAnswer(t *testing.T) {
	svc := newFAQFixture(t)
	_, err := svc.Add(context.Background(), "  ", "", "paiement")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAddStartsWithZeroedCounters(t *testing.T) {
	svc := newFAQFixture(t)
	entry, err := svc.Add(context.Background(), "Comment payer ?", "Par MVola ou carte bancaire.", "paiement")
	require.NoError(t, err)

	assert.Zero(t, entry.ViewCount)
	assert.Zero(t, entry.HelpfulCount)
	assert.Zero(t, entry.UnhelpfulCount)
	_, ok := entry.HelpfulRatio()
	assert.False(t, ok)
}

func TestUpdateOverwritesContent(t *testing.T) {
	svc := newFAQFixture(t)
	entry, err := svc.Add(context.Background(), "Comment payer ?", "Par MVola.", "paiement")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), entry.ID, "Comment payer ?", "Par MVola, Orange Money ou carte.", "paiement")
	require.NoError(t, err)
	assert.Equal(t, "Par MVola, Orange Money ou carte.", updated.Answer)
}

func TestUpdateUnknownEntry(t *testing.T) {
	svc := newFAQFixture(t)
	_, err := svc.Update(context.Background(), "missing", "Q ?", "R.", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestRemove(t *testing.T) {
	svc := newFAQFixture(t)
	entry, err := svc.Add(context.Background(), "Question ?", "Réponse.", "")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), entry.ID))

	_, err = svc.Get(context.Background(), entry.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	err = svc.Remove(context.Background(), entry.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestViewsAndVotesAccumulate(t *testing.T) {
	svc := newFAQFixture(t)
	entry, err := svc.Add(context.Background(), "Délai de livraison ?", "3 à 5 jours à Antananarivo.", "livraison")
	require.NoError(t, err)

	require.NoError(t, svc.RecordView(context.Background(), entry.ID))
	require.NoError(t, svc.RecordView(context.Background(), entry.ID))
	require.NoError(t, svc.Vote(context.Background(), entry.ID, true))
	require.NoError(t, svc.Vote(context.Background(), entry.ID, true))
	require.NoError(t, svc.Vote(context.Background(), entry.ID, false))

	fresh, err := svc.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.ViewCount)
	assert.Equal(t, 2, fresh.HelpfulCount)
	assert.Equal(t, 1, fresh.UnhelpfulCount)

	ratio, ok := fresh.HelpfulRatio()
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-9)
}

func TestListByCategory(t *testing.T) {
	svc := newFAQFixture(t)
	_, err := svc.Add(context.Background(), "Comment payer ?", "Par MVola.", "paiement")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "Délai de livraison ?", "3 à 5 jours.", "livraison")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paiement, err := svc.List(context.Background(), "paiement")
	require.NoError(t, err)
	require.Len(t, paiement, 1)
	assert.Equal(t, "Comment payer ?", paiement[0].Question)
}
