package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

const agentPresenceKeyPrefix = "chat:agent:online:"

// ChatService manages live chat sessions for the platform console.
type ChatService struct {
	chats      repository.ChatRepository
	messages   repository.MessageRepository
	redis      *redis.Client
	dispatcher events.Dispatcher
}

// ChatDependencies bundles collaborators for chat service. Redis is
// optional; presence tracking is skipped without it.
type ChatDependencies struct {
	ChatRepo    repository.ChatRepository
	MessageRepo repository.MessageRepository
	Redis       *redis.Client
	Dispatcher  events.Dispatcher
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	return &ChatService{
		chats:      deps.ChatRepo,
		messages:   deps.MessageRepo,
		redis:      deps.Redis,
		dispatcher: deps.Dispatcher,
	}
}

// Start opens a waiting session for a visitor.
func (s *ChatService) Start(ctx context.Context, visitor domain.Visitor) (*domain.ChatSession, error) {
	if strings.TrimSpace(visitor.IP) == "" {
		return nil, apperrors.NewValidationError("visitor ip is required", map[string]any{
			"ip": "ip is required",
		})
	}
	session := &domain.ChatSession{
		Visitor: visitor,
		Status:  domain.ChatStatusWaiting,
	}
	if err := s.chats.Create(ctx, session); err != nil {
		return nil, apperrors.MapError(err)
	}
	return session, nil
}

// List returns sessions filtered by status.
func (s *ChatService) List(ctx context.Context, statuses []domain.ChatStatus, limit, offset int) ([]domain.ChatSession, error) {
	sessions, err := s.chats.ListWithFilter(ctx, repository.ChatFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sessions, nil
}

// View fetches a session with its message log.
func (s *ChatService) View(ctx context.Context, chatID string) (*domain.ChatSession, error) {
	session, err := s.get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByParent(ctx, domain.ParentChat, session.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	session.Messages = msgs
	return session, nil
}

// Take assigns a waiting session to an agent and activates it.
func (s *ChatService) Take(ctx context.Context, chatID, agentName string) (*domain.ChatSession, error) {
	if strings.TrimSpace(agentName) == "" {
		return nil, apperrors.NewValidationError("agent name is required", map[string]any{
			"agent": "agent is required",
		})
	}
	session, err := s.get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.ChatStatusWaiting {
		return nil, apperrors.NewInvalidState("chat is not waiting for an agent", map[string]any{
			"status": session.Status,
		})
	}

	agent := strings.TrimSpace(agentName)
	session.Status = domain.ChatStatusActive
	session.Agent = &agent
	if err := s.chats.Update(ctx, session); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.markAgentPresent(ctx, agent)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventChatTaken,
		EntityID: session.ID,
		Payload:  events.ChatTakenPayload{Agent: agent},
	})
	return session, nil
}

// End closes an active session. Duration is computed from the session
// clock, not invented.
func (s *ChatService) End(ctx context.Context, chatID string) (*domain.ChatSession, error) {
	session, err := s.get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.ChatStatusActive {
		return nil, apperrors.NewInvalidState("only active chats can be ended", map[string]any{
			"status": session.Status,
		})
	}

	now := time.Now()
	session.Status = domain.ChatStatusEnded
	session.EndedAt = &now
	if err := s.chats.Update(ctx, session); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventChatEnded,
		EntityID: session.ID,
		Payload: events.ChatEndedPayload{
			Agent:           session.Agent,
			DurationSeconds: int64(session.Duration(now).Seconds()),
		},
	})
	return session, nil
}

// AppendMessage adds a message to an active session.
func (s *ChatService) AppendMessage(ctx context.Context, chatID string, author domain.MessageAuthor, body string) (*domain.Message, error) {
	if author != domain.AuthorVisitor && author != domain.AuthorAgent {
		return nil, apperrors.NewValidationError("chat messages are authored by visitors or agents", nil)
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("message body must not be empty", map[string]any{
			"body": "body is required",
		})
	}
	session, err := s.get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.ChatStatusActive {
		return nil, apperrors.NewInvalidState("chat is not active", map[string]any{
			"status": session.Status,
		})
	}

	msg := &domain.Message{
		ParentKind: domain.ParentChat,
		ParentID:   session.ID,
		Author:     author,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	return msg, nil
}

func (s *ChatService) get(ctx context.Context, chatID string) (*domain.ChatSession, error) {
	session, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("chat session", map[string]any{"chat_id": chatID})
		}
		return nil, apperrors.MapError(err)
	}
	return session, nil
}

func (s *ChatService) markAgentPresent(ctx context.Context, agent string) {
	if s.redis == nil {
		return
	}
	// best effort; presence is a UX affordance, not a correctness concern
	_ = s.redis.Set(ctx, agentPresenceKeyPrefix+agent, time.Now().Format(time.RFC3339), 30*time.Minute).Err()
}

func (s *ChatService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
