package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository/memory"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func newTicketFixture(t *testing.T) (*TicketService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  stores.Tickets,
		MessageRepo: stores.Messages,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	return svc, stores
}

func platformAccess() Access {
	return Access{Scope: domain.ScopePlatform, OperatorID: "op-platform-1"}
}

func shopAccess(shopID string) Access {
	return Access{Scope: domain.ScopeShop, OperatorID: "op-shop-1", ShopID: &shopID}
}

func openTicket(t *testing.T, svc *TicketService, shopID *string) *domain.Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), TicketIntakeInput{
		ShopID:         shopID,
		CustomerName:   "Hery Rakoto",
		CustomerEmail:  "hery@example.mg",
		Subject:        "Commande non livrée",
		InitialMessage: "Ma commande n'est pas arrivée.",
		Priority:       domain.TicketPriorityHigh,
		Category:       domain.TicketCategoryDelivery,
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketValidation(t *testing.T) {
	svc, _ := newTicketFixture(t)
	_, err := svc.CreateTicket(context.Background(), TicketIntakeInput{
		CustomerName: "  ",
		Subject:      "Aide",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCreateTicketSeedsConversation(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Contains(t, ticket.TicketNumber, "TKT-")
	require.Len(t, ticket.Conversation, 1)
	assert.Equal(t, domain.AuthorCustomer, ticket.Conversation[0].Author)
}

func TestRespondAppendsMessageAndMovesToInProgress(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	updated, err := svc.Respond(context.Background(), platformAccess(), ticket.ID, "Nous vérifions avec le transporteur.")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	require.NotNil(t, updated.LastResponseAt)
	require.Len(t, updated.Conversation, 2)
	assert.Equal(t, domain.AuthorOperator, updated.Conversation[1].Author)
}

func TestRespondWithBlankBodyLeavesTicketUntouched(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	_, err := svc.Respond(context.Background(), platformAccess(), ticket.ID, "   \n\t")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	fresh, err := svc.View(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, fresh.Status)
	assert.Len(t, fresh.Conversation, 1)
	assert.Nil(t, fresh.LastResponseAt)
}

func TestRespondRefusedOnResolvedTicket(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)
	_, err := svc.Close(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)

	_, err = svc.Respond(context.Background(), platformAccess(), ticket.ID, "Encore une réponse")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestCloseIsIdempotentOnResolved(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	first, err := svc.Close(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, first.Status)

	second, err := svc.Close(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, second.Status)
}

func TestReopenResolvedTicket(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)
	_, err := svc.Close(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)

	reopened, err := svc.Reopen(context.Background(), platformAccess(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, reopened.Status)

	// responding works again after the explicit reopen
	_, err = svc.Respond(context.Background(), platformAccess(), ticket.ID, "On reprend le dossier.")
	require.NoError(t, err)
}

func TestReopenRequiresResolvedStatus(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	_, err := svc.Reopen(context.Background(), platformAccess(), ticket.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestViewUnknownTicket(t *testing.T) {
	svc, _ := newTicketFixture(t)
	_, err := svc.View(context.Background(), platformAccess(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestShopScopingOnViewAndList(t *testing.T) {
	svc, _ := newTicketFixture(t)
	shopA := "shop-ravinala"
	shopB := "shop-baobab"
	mine := openTicket(t, svc, &shopA)
	other := openTicket(t, svc, &shopB)
	openTicket(t, svc, nil)

	_, err := svc.View(context.Background(), shopAccess(shopA), other.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	visible, err := svc.List(context.Background(), shopAccess(shopA), TicketListFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, mine.ID, visible[0].ID)

	all, err := svc.List(context.Background(), platformAccess(), TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListFiltersCombineWithAnd(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)
	_, err := svc.Respond(context.Background(), platformAccess(), ticket.ID, "On s'en occupe.")
	require.NoError(t, err)
	openTicket(t, svc, nil)

	result, err := svc.List(context.Background(), platformAccess(), TicketListFilter{
		Statuses:   []domain.TicketStatus{domain.TicketStatusInProgress},
		Priorities: []domain.TicketPriority{domain.TicketPriorityHigh},
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, ticket.ID, result[0].ID)

	none, err := svc.List(context.Background(), platformAccess(), TicketListFilter{
		Statuses:   []domain.TicketStatus{domain.TicketStatusInProgress},
		Priorities: []domain.TicketPriority{domain.TicketPriorityLow},
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newTicketFixture(t)
	ticket := openTicket(t, svc, nil)

	result, err := svc.List(context.Background(), platformAccess(), TicketListFilter{Search: "commande NON"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, ticket.ID, result[0].ID)

	none, err := svc.List(context.Background(), platformAccess(), TicketListFilter{Search: "introuvable"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStats(t *testing.T) {
	svc, _ := newTicketFixture(t)
	first := openTicket(t, svc, nil)
	openTicket(t, svc, nil)
	_, err := svc.Close(context.Background(), platformAccess(), first.ID)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), platformAccess())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[domain.TicketStatusResolved])
	assert.Equal(t, 1, stats.ByStatus[domain.TicketStatusOpen])
	assert.Equal(t, 2, stats.MediumOrAbove)
}
