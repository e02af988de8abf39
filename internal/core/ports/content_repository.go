package ports

import (
	"context"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	// List returns all events newest-first.
	List(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindByTitle matches the title case-insensitively.
	FindByTitle(ctx context.Context, title string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}

type FacultyRepository interface {
	Create(ctx context.Context, member *domain.FacultyMember) (*domain.FacultyMember, error)
	// List returns members of the given group, or all when group is empty.
	List(ctx context.Context, group string) ([]domain.FacultyMember, error)
	FindByID(ctx context.Context, id string) (*domain.FacultyMember, error)
	Update(ctx context.Context, member *domain.FacultyMember) error
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	Create(ctx context.Context, gallery *domain.Gallery) (*domain.Gallery, error)
	List(ctx context.Context) ([]domain.Gallery, error)
	FindByID(ctx context.Context, id string) (*domain.Gallery, error)
	AddImage(ctx context.Context, id string, image domain.GalleryImage) error
	RemoveImage(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *domain.Newsletter) (*domain.Newsletter, error)
	List(ctx context.Context) ([]domain.Newsletter, error)
	FindByID(ctx context.Context, id string) (*domain.Newsletter, error)
	Update(ctx context.Context, newsletter *domain.Newsletter) error
	Delete(ctx context.Context, id string) error
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error)
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
