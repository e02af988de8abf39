package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type stubEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.nextID++
	clone := *event
	clone.ID = fmt.Sprintf("evt_%d", r.nextID)
	r.events[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) List(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) FindByTitle(_ context.Context, title string) (*domain.Event, error) {
	for _, e := range r.events {
		if strings.EqualFold(e.Title, title) {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type stubMediaStore struct {
	uploads int
	deleted []string
	fail    bool
}

func (m *stubMediaStore) Upload(_ context.Context, file *ports.MediaFile) (*ports.MediaUpload, error) {
	if m.fail {
		return nil, errors.New("media host unavailable")
	}
	m.uploads++
	id := fmt.Sprintf("asset_%d", m.uploads)
	return &ports.MediaUpload{
		URL:      "https://media.example.com/" + id + ".jpg",
		PublicID: id,
	}, nil
}

func (m *stubMediaStore) Delete(_ context.Context, publicID string) error {
	m.deleted = append(m.deleted, publicID)
	return nil
}

type stubCleanupQueue struct {
	enqueued []string
}

func (q *stubCleanupQueue) Enqueue(mediaURL string) {
	q.enqueued = append(q.enqueued, mediaURL)
}

func validEventInput() ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       "Tech Fest",
		Description: "Annual tech festival",
		Date:        time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		Content:     "Full schedule inside",
		Category:    "event",
		Location:    "Main auditorium",
		Media:       &ports.MediaFile{Filename: "poster.jpg", Reader: strings.NewReader("img")},
	}
}

func TestEventService_Create(t *testing.T) {
	repo := newStubEventRepo()
	media := &stubMediaStore{}
	queue := &stubCleanupQueue{}
	svc := NewEventService(repo, media, queue, zerolog.Nop())

	event, err := svc.Create(context.Background(), validEventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID == "" || event.Media == "" {
		t.Fatalf("created event incomplete: %+v", event)
	}
	if media.uploads != 1 {
		t.Fatalf("expected one upload, got %d", media.uploads)
	}
}

func TestEventService_Create_MissingFields(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), &stubMediaStore{}, &stubCleanupQueue{}, zerolog.Nop())

	in := validEventInput()
	in.Title = ""
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}

	in = validEventInput()
	in.Media = nil
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing media, got %v", err)
	}

	in = validEventInput()
	in.Category = "webinar"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad category, got %v", err)
	}
}

func TestEventService_Get_ByIDOrTitle(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, &stubMediaStore{}, &stubCleanupQueue{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), validEventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := svc.Get(context.Background(), created.ID)
	if err != nil || byID.ID != created.ID {
		t.Fatalf("get by id failed: %v", err)
	}

	byTitle, err := svc.Get(context.Background(), "tech fest")
	if err != nil || byTitle.ID != created.ID {
		t.Fatalf("get by title failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventService_Update_EnqueuesReplacedMedia(t *testing.T) {
	repo := newStubEventRepo()
	media := &stubMediaStore{}
	queue := &stubCleanupQueue{}
	svc := NewEventService(repo, media, queue, zerolog.Nop())

	created, err := svc.Create(context.Background(), validEventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldMedia := created.Media

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEventInput{
		Title: "Tech Fest 2026",
		Media: &ports.MediaFile{Filename: "new.jpg", Reader: strings.NewReader("img2")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Tech Fest 2026" {
		t.Fatalf("title not updated")
	}
	if updated.Media == oldMedia {
		t.Fatalf("media not replaced")
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != oldMedia {
		t.Fatalf("expected exactly the replaced asset enqueued, got %v", queue.enqueued)
	}
}

func TestEventService_Delete_EnqueuesMedia(t *testing.T) {
	repo := newStubEventRepo()
	queue := &stubCleanupQueue{}
	svc := NewEventService(repo, &stubMediaStore{}, queue, zerolog.Nop())

	created, err := svc.Create(context.Background(), validEventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != created.Media {
		t.Fatalf("expected deleted event media enqueued, got %v", queue.enqueued)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("event still present after delete")
	}
}

func TestEventService_List_EmptyIsNotFound(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), &stubMediaStore{}, &stubCleanupQueue{}, zerolog.Nop())

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty list, got %v", err)
	}
}
