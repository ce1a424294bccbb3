package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository/memory"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

func newChatFixture(t *testing.T) (*ChatService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	svc := NewChatService(ChatDependencies{
		ChatRepo:    stores.Chats,
		MessageRepo: stores.Messages,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})
	return svc, stores
}

func waitingChat(t *testing.T, svc *ChatService) *domain.ChatSession {
	t.Helper()
	name := "Tahina"
	session, err := svc.Start(context.Background(), domain.Visitor{
		Name:     &name,
		IP:       "197.158.1.24",
		Location: "Antananarivo, MG",
	})
	require.NoError(t, err)
	return session
}

func TestStartRequiresIP(t *testing.T) {
	svc, _ := newChatFixture(t)
	_, err := svc.Start(context.Background(), domain.Visitor{Location: "Toamasina, MG"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestTakeAssignsAgentAndActivates(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)

	taken, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusActive, taken.Status)
	require.NotNil(t, taken.Agent)
	assert.Equal(t, "Miora", *taken.Agent)
}

func TestTakeRefusedWhenNotWaiting(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)
	_, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)

	_, err = svc.Take(context.Background(), session.ID, "Lalaina")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))

	// first agent keeps the session
	fresh, err := svc.View(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.Agent)
	assert.Equal(t, "Miora", *fresh.Agent)
}

func TestEndComputesDurationFromSessionClock(t *testing.T) {
	svc, stores := newChatFixture(t)
	start := time.Now().Add(-9 * time.Minute)
	session := &domain.ChatSession{
		Visitor:   domain.Visitor{IP: "197.158.1.30"},
		Status:    domain.ChatStatusWaiting,
		StartedAt: start,
	}
	require.NoError(t, stores.Chats.Create(context.Background(), session))
	_, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)

	ended, err := svc.End(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChatStatusEnded, ended.Status)
	require.NotNil(t, ended.EndedAt)

	elapsed := ended.Duration(time.Now())
	assert.Equal(t, ended.EndedAt.Sub(start), elapsed)
	assert.GreaterOrEqual(t, elapsed, 9*time.Minute)
	assert.Less(t, elapsed, 10*time.Minute)
}

func TestEndRequiresActiveSession(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)

	_, err := svc.End(context.Background(), session.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestAppendMessageOnActiveChat(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)
	_, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)

	msg, err := svc.AppendMessage(context.Background(), session.ID, domain.AuthorAgent, "Bonjour, comment puis-je aider ?")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthorAgent, msg.Author)

	detail, err := svc.View(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
}

func TestAppendMessageRejectsTicketAuthors(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)
	_, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), session.ID, domain.AuthorCustomer, "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAppendMessageRefusedOnEndedChat(t *testing.T) {
	svc, _ := newChatFixture(t)
	session := waitingChat(t, svc)
	_, err := svc.Take(context.Background(), session.ID, "Miora")
	require.NoError(t, err)
	_, err = svc.End(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), session.ID, domain.AuthorVisitor, "toujours là ?")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _ := newChatFixture(t)
	first := waitingChat(t, svc)
	waitingChat(t, svc)
	_, err := svc.Take(context.Background(), first.ID, "Miora")
	require.NoError(t, err)

	waiting, err := svc.List(context.Background(), []domain.ChatStatus{domain.ChatStatusWaiting}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, waiting, 1)

	active, err := svc.List(context.Background(), []domain.ChatStatus{domain.ChatStatusActive}, 0, 0)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)
}
