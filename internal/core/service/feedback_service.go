package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

const maxFeedbackMessage = 500

type feedbackService struct {
	feedback ports.FeedbackRepository
	events   ports.EventRepository
	log      zerolog.Logger
}

func NewFeedbackService(feedback ports.FeedbackRepository, events ports.EventRepository, log zerolog.Logger) ports.FeedbackService {
	return &feedbackService{feedback: feedback, events: events, log: log}
}

func (s *feedbackService) Create(ctx context.Context, in ports.FeedbackInput) (*domain.Feedback, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: feedback message is required", domain.ErrInvalidInput)
	}
	if len(message) > maxFeedbackMessage {
		return nil, fmt.Errorf("%w: feedback message exceeds %d characters", domain.ErrInvalidInput, maxFeedbackMessage)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if !in.Anonymous && in.AccountID == "" {
		return nil, fmt.Errorf("%w: non-anonymous feedback requires an account", domain.ErrInvalidInput)
	}

	if _, err := s.events.FindByID(ctx, in.EventID); err != nil {
		return nil, err
	}

	accountID := in.AccountID
	if in.Anonymous {
		accountID = ""
	}

	now := time.Now().UTC()
	created, err := s.feedback.Create(ctx, &domain.Feedback{
		EventID:   in.EventID,
		AccountID: accountID,
		Rating:    in.Rating,
		Anonymous: in.Anonymous,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("feedback_id", created.ID).Str("event_id", in.EventID).Int("rating", in.Rating).Msg("feedback recorded")
	return created, nil
}

func (s *feedbackService) ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.feedback.ListByEvent(ctx, eventID)
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	if _, err := s.feedback.FindByID(ctx, id); err != nil {
		return err
	}
	return s.feedback.Delete(ctx, id)
}
