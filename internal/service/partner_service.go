package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tsenako/console-service/internal/domain"
	"github.com/tsenako/console-service/internal/events"
	"github.com/tsenako/console-service/internal/repository"
	"github.com/tsenako/console-service/internal/wizard"
	apperrors "github.com/tsenako/console-service/pkg/util/errorutil"
)

// OnboardingSteps is the partner application form layout: identity,
// shop details, supporting documents, then review and consent.
var OnboardingSteps = []wizard.Step{
	{Index: 1, Name: "identite", Required: []string{"nom", "prenom", "email", "telephone"}},
	{Index: 2, Name: "boutique", Required: []string{"nomBoutique", "categorieProduits", "ville"}},
	{Index: 3, Name: "documents", Required: []string{"cin", "registreCommerce"}},
	{Index: 4, Name: "recapitulatif", Required: []string{"accepteConditions"}},
}

// PartnerService runs the onboarding wizard and the platform-side
// application review queue.
type PartnerService struct {
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
}

// NewPartnerService constructs the service.
func NewPartnerService(applications repository.ApplicationRepository, dispatcher events.Dispatcher) *PartnerService {
	return &PartnerService{applications: applications, dispatcher: dispatcher}
}

// NewController builds a wizard controller wired to persist the
// application on final submit.
func (s *PartnerService) NewController() *wizard.Controller {
	return wizard.NewController(OnboardingSteps, wizard.SubmitterFunc(func(ctx context.Context, values map[string]any) error {
		_, err := s.persist(ctx, values)
		return err
	}))
}

// SubmitApplication drives a controller through every step with the
// provided values. Each step is validated in order, so the error for an
// incomplete application names the first step that blocked it.
func (s *PartnerService) SubmitApplication(ctx context.Context, values map[string]any) (*domain.PartnerApplication, error) {
	var created *domain.PartnerApplication
	ctrl := wizard.NewController(OnboardingSteps, wizard.SubmitterFunc(func(ctx context.Context, values map[string]any) error {
		app, err := s.persist(ctx, values)
		if err != nil {
			return err
		}
		created = app
		return nil
	}))
	for name, value := range values {
		ctrl.SetField(name, value)
	}
	for step := 1; step < len(OnboardingSteps); step++ {
		if !ctrl.Advance() {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("step %q is incomplete", OnboardingSteps[step-1].Name),
				stepErrorDetails(OnboardingSteps[step-1].Name, ctrl.Errors()),
			)
		}
	}
	if err := ctrl.Submit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// List returns applications for the review queue.
func (s *PartnerService) List(ctx context.Context, statuses []domain.ApplicationStatus, limit, offset int) ([]domain.PartnerApplication, error) {
	apps, err := s.applications.ListWithFilter(ctx, repository.ApplicationFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return apps, nil
}

// Get returns one application.
func (s *PartnerService) Get(ctx context.Context, id string) (*domain.PartnerApplication, error) {
	return s.get(ctx, id)
}

// Approve accepts a pending application.
func (s *PartnerService) Approve(ctx context.Context, id, note string) (*domain.PartnerApplication, error) {
	return s.review(ctx, id, domain.ApplicationStatusApproved, note)
}

// Reject declines a pending application.
func (s *PartnerService) Reject(ctx context.Context, id, note string) (*domain.PartnerApplication, error) {
	return s.review(ctx, id, domain.ApplicationStatusRejected, note)
}

func (s *PartnerService) review(ctx context.Context, id string, status domain.ApplicationStatus, note string) (*domain.PartnerApplication, error) {
	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return nil, apperrors.NewInvalidState("application has already been reviewed", map[string]any{
			"status": app.Status,
		})
	}
	now := time.Now()
	app.Status = status
	app.ReviewedAt = &now
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		app.ReviewNote = &trimmed
	}
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, apperrors.MapError(err)
	}
	return app, nil
}

func (s *PartnerService) get(ctx context.Context, id string) (*domain.PartnerApplication, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"application_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return app, nil
}

func (s *PartnerService) persist(ctx context.Context, values map[string]any) (*domain.PartnerApplication, error) {
	app := &domain.PartnerApplication{
		ApplicationNumber: generateApplicationNumber(time.Now()),
		Fields:            make(map[string]string),
		Status:            domain.ApplicationStatusPending,
	}
	for name, value := range values {
		switch typed := value.(type) {
		case string:
			app.Fields[name] = typed
		case bool:
			app.Fields[name] = fmt.Sprintf("%t", typed)
		case *wizard.FileRef:
			if typed != nil {
				app.Attachments = append(app.Attachments, domain.ApplicationAttachment{
					FieldName:  name,
					FileName:   typed.Name,
					StorageKey: typed.StorageKey,
					SizeBytes:  typed.SizeBytes,
				})
			}
		case wizard.FileRef:
			app.Attachments = append(app.Attachments, domain.ApplicationAttachment{
				FieldName:  name,
				FileName:   typed.Name,
				StorageKey: typed.StorageKey,
				SizeBytes:  typed.SizeBytes,
			})
		default:
			app.Fields[name] = fmt.Sprintf("%v", typed)
		}
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventApplicationSubmitted,
			EntityID:  app.ID,
			Timestamp: time.Now(),
			Payload: events.ApplicationSubmittedPayload{
				ApplicationNumber: app.ApplicationNumber,
				ShopName:          app.Fields["nomBoutique"],
			},
		})
	}
	return app, nil
}

func stepErrorDetails(stepName string, errs map[string]string) map[string]any {
	details := map[string]any{"step": stepName}
	for field, msg := range errs {
		details[field] = msg
	}
	return details
}

func generateApplicationNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "CAND-" + now.UTC().Format("20060102") + "-" + suffix
}
