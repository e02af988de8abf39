package ports

import (
	"context"
	"time"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Time        string
	Content     string
	Category    string
	Location    string
	Media       *MediaFile
}

// UpdateEventInput carries optional replacements; empty/nil fields are left
// untouched.
type UpdateEventInput struct {
	Title       string
	Description string
	Date        *time.Time
	Time        string
	Content     string
	Category    string
	Location    string
	Media       *MediaFile
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	// Get resolves an event by id, falling back to a case-insensitive title
	// match.
	Get(ctx context.Context, identifier string) (*domain.Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type FacultyInput struct {
	Group       string
	Name        string
	Designation string
	Image       string
	Testimonial string
	Department  string
	Email       string
}

type FacultyService interface {
	Add(ctx context.Context, in FacultyInput) (*domain.FacultyMember, error)
	List(ctx context.Context, group string) ([]domain.FacultyMember, error)
	Update(ctx context.Context, id string, in FacultyInput) (*domain.FacultyMember, error)
	Remove(ctx context.Context, id string) error
}

type GalleryService interface {
	Create(ctx context.Context, title, description string) (*domain.Gallery, error)
	AddImage(ctx context.Context, galleryID string, file *MediaFile) (*domain.Gallery, error)
	List(ctx context.Context) ([]domain.Gallery, error)
	Get(ctx context.Context, id string) (*domain.Gallery, error)
	RemoveImage(ctx context.Context, galleryID, url string) error
	Delete(ctx context.Context, id string) error
}

type FeedbackInput struct {
	EventID   string
	AccountID string
	Rating    int
	Anonymous bool
	Message   string
}

type FeedbackService interface {
	Create(ctx context.Context, in FeedbackInput) (*domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type CreateNewsletterInput struct {
	Title       string
	Description string
	Date        time.Time
	Media       *MediaFile
}

type UpdateNewsletterInput struct {
	Title       string
	Description string
	Date        *time.Time
	Media       *MediaFile
}

type NewsletterService interface {
	Create(ctx context.Context, in CreateNewsletterInput) (*domain.Newsletter, error)
	List(ctx context.Context) ([]domain.Newsletter, error)
	Update(ctx context.Context, id string, in UpdateNewsletterInput) (*domain.Newsletter, error)
	Delete(ctx context.Context, id string) error
}

// RegisterForEventInput defaults Name/Email/Phone from the account when the
// caller leaves them empty.
type RegisterForEventInput struct {
	EventID string
	Account *domain.Account
	Name    string
	Email   string
	Phone   string
}

type RegistrationService interface {
	Create(ctx context.Context, in RegisterForEventInput) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
