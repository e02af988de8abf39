package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type eventService struct {
	events  ports.EventRepository
	media   ports.MediaStore
	cleanup ports.CleanupQueue
	log     zerolog.Logger
}

func NewEventService(events ports.EventRepository, media ports.MediaStore, cleanup ports.CleanupQueue, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, media: media, cleanup: cleanup, log: log}
}

func normalizeCategory(category string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case domain.CategoryEvent:
		return domain.CategoryEvent, nil
	case domain.CategoryBlog:
		return domain.CategoryBlog, nil
	}
	return "", fmt.Errorf("%w: category must be %q or %q", domain.ErrInvalidInput, domain.CategoryEvent, domain.CategoryBlog)
}

func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	if in.Title == "" || in.Description == "" || in.Content == "" || in.Location == "" || in.Date.IsZero() || in.Media == nil {
		return nil, fmt.Errorf("%w: all fields and a media file are required", domain.ErrInvalidInput)
	}
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}

	upload, err := s.media.Upload(ctx, in.Media)
	if err != nil {
		return nil, fmt.Errorf("upload event media: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.events.Create(ctx, &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Content:     in.Content,
		Category:    category,
		Media:       upload.URL,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		// The asset is already on the media host; don't leak it.
		s.cleanup.Enqueue(upload.URL)
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("category", created.Category).Msg("event created")
	return created, nil
}

func (s *eventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no events", domain.ErrNotFound)
	}
	return events, nil
}

// Get resolves by id first and falls back to a case-insensitive title match,
// so both /events/<id> and /events/<title> work.
func (s *eventService) Get(ctx context.Context, identifier string) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, identifier)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.events.FindByTitle(ctx, identifier)
}

func (s *eventService) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		event.Title = in.Title
	}
	if in.Description != "" {
		event.Description = in.Description
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Time != "" {
		event.Time = in.Time
	}
	if in.Content != "" {
		event.Content = in.Content
	}
	if in.Location != "" {
		event.Location = in.Location
	}
	if in.Category != "" {
		category, err := normalizeCategory(in.Category)
		if err != nil {
			return nil, err
		}
		event.Category = category
	}

	replaced := ""
	if in.Media != nil {
		upload, err := s.media.Upload(ctx, in.Media)
		if err != nil {
			return nil, fmt.Errorf("upload event media: %w", err)
		}
		replaced = event.Media
		event.Media = upload.URL
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.events.Update(ctx, event); err != nil {
		if event.Media != replaced && replaced != "" {
			s.cleanup.Enqueue(event.Media)
		}
		return nil, err
	}

	if replaced != "" {
		s.cleanup.Enqueue(replaced)
	}

	s.log.Info().Str("event_id", event.ID).Msg("event updated")
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	if event.Media != "" {
		s.cleanup.Enqueue(event.Media)
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
