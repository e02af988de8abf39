package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/api/metrics"
	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

// EventHandler handles HTTP requests for events and blog posts. Create and
// update arrive as multipart/form-data because they carry the media asset.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		date, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339", domain.ErrInvalidInput)
	}
	return date, nil
}

// formMedia opens the uploaded form file. A missing file is not an error
// here; required-ness is decided by the service.
func formMedia(c echo.Context, field string) (*ports.MediaFile, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open uploaded file: %w", err)
	}
	return &ports.MediaFile{Filename: header.Filename, Reader: file}, file, nil
}

// Create handles POST /events/create.
//
// @Summary      Create an event or blog post
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      400  {object}  map[string]any
// @Router       /events/create [post]
func (h *EventHandler) Create(c echo.Context) error {
	date, err := parseDate(c.FormValue("date"))
	if err != nil {
		return err
	}

	media, file, err := formMedia(c, "media")
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Date:        date,
		Time:        c.FormValue("time"),
		Content:     c.FormValue("content"),
		Category:    c.FormValue("category"),
		Location:    c.FormValue("location"),
		Media:       media,
	})
	if err != nil {
		if media != nil {
			metrics.MediaUploadsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()

	return respond(c, http.StatusCreated, event, "event created successfully")
}

// List handles GET /events.
//
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, events, "all events fetched successfully")
}

// Get handles GET /events/:identifier (id or title).
//
// @Summary      Get an event by id or title
// @Tags         events
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /events/{identifier} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.events.Get(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, event, "event details fetched successfully")
}

// Update handles PATCH /events/update/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /events/update/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	in := ports.UpdateEventInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Time:        c.FormValue("time"),
		Content:     c.FormValue("content"),
		Category:    c.FormValue("category"),
		Location:    c.FormValue("location"),
	}

	if raw := c.FormValue("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return err
		}
		in.Date = &date
	}

	media, file, err := formMedia(c, "media")
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	in.Media = media

	event, err := h.events.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, event, "event updated successfully")
}

// Delete handles DELETE /events/delete/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /events/delete/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "event deleted successfully")
}
