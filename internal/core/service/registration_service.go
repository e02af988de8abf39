package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) guarding against an
// account registering twice for the same event.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, accountID, eventID string) (bool, error)
	Mark(ctx context.Context, accountID, eventID string) error
}

type registrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	dedup         DedupChecker
	log           zerolog.Logger
}

func NewRegistrationService(
	registrations ports.RegistrationRepository,
	events ports.EventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.RegistrationService {
	return &registrationService{
		registrations: registrations,
		events:        events,
		dedup:         dedup,
		log:           log,
	}
}

// Create registers the account for the event. Contact fields default from
// the account record; the event name is denormalised from the event.
func (s *registrationService) Create(ctx context.Context, in ports.RegisterForEventInput) (*domain.Registration, error) {
	if in.Account == nil {
		return nil, domain.ErrNoCredential
	}
	if in.EventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}

	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	isDup, err := s.dedup.IsDuplicate(ctx, in.Account.ID, in.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", in.EventID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		return nil, fmt.Errorf("%w: already registered for this event", domain.ErrConflict)
	}

	name := in.Name
	if name == "" {
		name = in.Account.Username
	}
	email := in.Email
	if email == "" {
		email = in.Account.Email
	}
	phone := in.Phone
	if phone == "" {
		phone = in.Account.Phone
	}

	now := time.Now().UTC()
	created, err := s.registrations.Create(ctx, &domain.Registration{
		AccountID: in.Account.ID,
		EventID:   event.ID,
		EventName: event.Title,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    domain.RegistrationConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if markErr := s.dedup.Mark(ctx, in.Account.ID, in.EventID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", in.EventID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("registration_id", created.ID).
		Str("event_id", event.ID).
		Str("account_id", in.Account.ID).
		Msg("registration created")

	return created, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.registrations.ListByEvent(ctx, eventID)
}

func (s *registrationService) ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error) {
	return s.registrations.ListByAccount(ctx, accountID)
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	if _, err := s.registrations.FindByID(ctx, id); err != nil {
		return err
	}
	return s.registrations.Delete(ctx, id)
}

func (s *registrationService) DeleteAll(ctx context.Context) error {
	return s.registrations.DeleteAll(ctx)
}
