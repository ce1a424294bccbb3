package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// FAQService manages the published FAQ for a console.
type FAQService struct {
	faq        repository.FAQRepository
	dispatcher events.Dispatcher
}

// NewFAQService constructs the service.
func NewFAQService(faq repository.FAQRepository, dispatcher events.Dispatcher) *FAQService {
	return &FAQService{faq: faq, dispatcher: dispatcher}
}

// Add publishes a new entry with zeroed counters.
func (s *FAQService) Add(ctx context.Context, question, answer, category string) (*domain.FAQEntry, error) {
	if err := validateFAQInput(question, answer); err != nil {
		return nil, err
	}
	entry := &domain.FAQEntry{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Category: strings.TrimSpace(category),
	}
	if err := s.faq.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, "added", entry.Question)
	return entry, nil
}

// Update overwrites an entry's content and stamps updatedAt.
func (s *FAQService) Update(ctx context.Context, id, question, answer, category string) (*domain.FAQEntry, error) {
	if err := validateFAQInput(question, answer); err != nil {
		return nil, err
	}
	entry, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Question = strings.TrimSpace(question)
	entry.Answer = strings.TrimSpace(answer)
	entry.Category = strings.TrimSpace(category)
	if err := s.faq.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("faq entry", map[string]any{"faq_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	s.publishChange(ctx, "updated", entry.Question)
	return entry, nil
}

// Remove deletes an entry. The caller is expected to have obtained user
// confirmation; that is a UI concern.
func (s *FAQService) Remove(ctx context.Context, id string) error {
	if err := s.faq.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("faq entry", map[string]any{"faq_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishChange(ctx, "removed", "")
	return nil
}

// List returns entries, optionally limited to one category.
func (s *FAQService) List(ctx context.Context, category string) ([]domain.FAQEntry, error) {
	var cat *string
	if strings.TrimSpace(category) != "" {
		trimmed := strings.TrimSpace(category)
		cat = &trimmed
	}
	entries, err := s.faq.List(ctx, cat)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// Get returns a single entry.
func (s *FAQService) Get(ctx context.Context, id string) (*domain.FAQEntry, error) {
	return s.get(ctx, id)
}

// RecordView bumps the view counter.
func (s *FAQService) RecordView(ctx context.Context, id string) error {
	if err := s.faq.IncrementView(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("faq entry", map[string]any{"faq_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Vote records a helpful/unhelpful vote.
func (s *FAQService) Vote(ctx context.Context, id string, helpful bool) error {
	if err := s.faq.AddVote(ctx, id, helpful); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("faq entry", map[string]any{"faq_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *FAQService) get(ctx context.Context, id string) (*domain.FAQEntry, error) {
	entry, err := s.faq.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("faq entry", map[string]any{"faq_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

func validateFAQInput(question, answer string) error {
	details := map[string]any{}
	if strings.TrimSpace(question) == "" {
		details["question"] = "question is required"
	}
	if strings.TrimSpace(answer) == "" {
		details["answer"] = "answer is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("required fields missing", details)
	}
	return nil
}

func (s *FAQService) publishChange(ctx context.Context, action, question string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFAQChanged,
		Timestamp: time.Now(),
		Payload: events.FAQChangedPayload{
			Action:   action,
			Question: question,
		},
	})
}
