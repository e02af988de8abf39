package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/ports"
)

type NewsletterHandler struct {
	newsletters ports.NewsletterService
}

func NewNewsletterHandler(newsletters ports.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletters: newsletters}
}

// Create handles POST /newsletters/create (multipart/form-data).
func (h *NewsletterHandler) Create(c echo.Context) error {
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

	newsletter, err := h.newsletters.Create(c.Request().Context(), ports.CreateNewsletterInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Date:        date,
		Media:       media,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, newsletter, "newsletter created successfully")
}

// List handles GET /newsletters.
func (h *NewsletterHandler) List(c echo.Context) error {
	newsletters, err := h.newsletters.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, newsletters, "all newsletters fetched successfully")
}

// Update handles PATCH /newsletters/update/:id.
func (h *NewsletterHandler) Update(c echo.Context) error {
	in := ports.UpdateNewsletterInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
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

	newsletter, err := h.newsletters.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, newsletter, "newsletter updated successfully")
}

// Delete handles DELETE /newsletters/delete/:id.
func (h *NewsletterHandler) Delete(c echo.Context) error {
	if err := h.newsletters.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "newsletter deleted successfully")
}
