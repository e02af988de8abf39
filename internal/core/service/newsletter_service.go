package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type newsletterService struct {
	newsletters ports.NewsletterRepository
	media       ports.MediaStore
	cleanup     ports.CleanupQueue
	log         zerolog.Logger
}

func NewNewsletterService(newsletters ports.NewsletterRepository, media ports.MediaStore, cleanup ports.CleanupQueue, log zerolog.Logger) ports.NewsletterService {
	return &newsletterService{newsletters: newsletters, media: media, cleanup: cleanup, log: log}
}

func (s *newsletterService) Create(ctx context.Context, in ports.CreateNewsletterInput) (*domain.Newsletter, error) {
	if in.Title == "" || in.Description == "" || in.Date.IsZero() || in.Media == nil {
		return nil, fmt.Errorf("%w: title, description, date and a media file are required", domain.ErrInvalidInput)
	}

	upload, err := s.media.Upload(ctx, in.Media)
	if err != nil {
		return nil, fmt.Errorf("upload newsletter media: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.newsletters.Create(ctx, &domain.Newsletter{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Media:       upload.URL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.cleanup.Enqueue(upload.URL)
		return nil, err
	}

	s.log.Info().Str("newsletter_id", created.ID).Msg("newsletter created")
	return created, nil
}

func (s *newsletterService) List(ctx context.Context) ([]domain.Newsletter, error) {
	newsletters, err := s.newsletters.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(newsletters) == 0 {
		return nil, fmt.Errorf("%w: no newsletters", domain.ErrNotFound)
	}
	return newsletters, nil
}

func (s *newsletterService) Update(ctx context.Context, id string, in ports.UpdateNewsletterInput) (*domain.Newsletter, error) {
	newsletter, err := s.newsletters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		newsletter.Title = in.Title
	}
	if in.Description != "" {
		newsletter.Description = in.Description
	}
	if in.Date != nil {
		newsletter.Date = *in.Date
	}

	replaced := ""
	if in.Media != nil {
		upload, err := s.media.Upload(ctx, in.Media)
		if err != nil {
			return nil, fmt.Errorf("upload newsletter media: %w", err)
		}
		replaced = newsletter.Media
		newsletter.Media = upload.URL
	}

	newsletter.UpdatedAt = time.Now().UTC()
	if err := s.newsletters.Update(ctx, newsletter); err != nil {
		return nil, err
	}

	if replaced != "" {
		s.cleanup.Enqueue(replaced)
	}
	return newsletter, nil
}

func (s *newsletterService) Delete(ctx context.Context, id string) error {
	newsletter, err := s.newsletters.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.newsletters.Delete(ctx, id); err != nil {
		return err
	}
	if newsletter.Media != "" {
		s.cleanup.Enqueue(newsletter.Media)
	}
	s.log.Info().Str("newsletter_id", id).Msg("newsletter deleted")
	return nil
}
