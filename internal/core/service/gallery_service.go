package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type galleryService struct {
	galleries ports.GalleryRepository
	media     ports.MediaStore
	cleanup   ports.CleanupQueue
	log       zerolog.Logger
}

func NewGalleryService(galleries ports.GalleryRepository, media ports.MediaStore, cleanup ports.CleanupQueue, log zerolog.Logger) ports.GalleryService {
	return &galleryService{galleries: galleries, media: media, cleanup: cleanup, log: log}
}

func (s *galleryService) Create(ctx context.Context, title, description string) (*domain.Gallery, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: gallery title is required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	return s.galleries.Create(ctx, &domain.Gallery{
		Title:       title,
		Description: description,
		Images:      []domain.GalleryImage{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *galleryService) AddImage(ctx context.Context, galleryID string, file *ports.MediaFile) (*domain.Gallery, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: an image file is required", domain.ErrInvalidInput)
	}
	if _, err := s.galleries.FindByID(ctx, galleryID); err != nil {
		return nil, err
	}

	upload, err := s.media.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("upload gallery image: %w", err)
	}

	image := domain.GalleryImage{
		URL:        upload.URL,
		PublicID:   upload.PublicID,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.galleries.AddImage(ctx, galleryID, image); err != nil {
		s.cleanup.Enqueue(upload.URL)
		return nil, err
	}

	s.log.Info().Str("gallery_id", galleryID).Str("url", upload.URL).Msg("gallery image added")
	return s.galleries.FindByID(ctx, galleryID)
}

func (s *galleryService) List(ctx context.Context) ([]domain.Gallery, error) {
	return s.galleries.List(ctx)
}

func (s *galleryService) Get(ctx context.Context, id string) (*domain.Gallery, error) {
	return s.galleries.FindByID(ctx, id)
}

func (s *galleryService) RemoveImage(ctx context.Context, galleryID, url string) error {
	gallery, err := s.galleries.FindByID(ctx, galleryID)
	if err != nil {
		return err
	}

	found := false
	for _, img := range gallery.Images {
		if img.URL == url {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: image not in gallery", domain.ErrNotFound)
	}

	if err := s.galleries.RemoveImage(ctx, galleryID, url); err != nil {
		return err
	}
	s.cleanup.Enqueue(url)
	return nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	gallery, err := s.galleries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.galleries.Delete(ctx, id); err != nil {
		return err
	}
	for _, img := range gallery.Images {
		s.cleanup.Enqueue(img.URL)
	}
	s.log.Info().Str("gallery_id", id).Int("images", len(gallery.Images)).Msg("gallery deleted")
	return nil
}
