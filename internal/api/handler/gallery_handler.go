package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/api/metrics"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type GalleryHandler struct {
	galleries ports.GalleryService
}

func NewGalleryHandler(galleries ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleries: galleries}
}

type createGalleryRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type removeImageRequest struct {
	URL string `json:"url" validate:"required"`
}

// Create handles POST /gallery/create.
func (h *GalleryHandler) Create(c echo.Context) error {
	var req createGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	gallery, err := h.galleries.Create(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, gallery, "gallery created successfully")
}

// AddImage handles POST /gallery/:id/images (multipart/form-data).
func (h *GalleryHandler) AddImage(c echo.Context) error {
	image, file, err := formMedia(c, "image")
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	gallery, err := h.galleries.AddImage(c.Request().Context(), c.Param("id"), image)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()

	return respond(c, http.StatusCreated, gallery, "image added successfully")
}

// List handles GET /gallery.
func (h *GalleryHandler) List(c echo.Context) error {
	galleries, err := h.galleries.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, galleries, "galleries fetched successfully")
}

// Get handles GET /gallery/:id.
func (h *GalleryHandler) Get(c echo.Context) error {
	gallery, err := h.galleries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, gallery, "gallery fetched successfully")
}

// RemoveImage handles DELETE /gallery/:id/images.
func (h *GalleryHandler) RemoveImage(c echo.Context) error {
	var req removeImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.galleries.RemoveImage(c.Request().Context(), c.Param("id"), req.URL); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "image removed successfully")
}

// Delete handles DELETE /gallery/delete/:id.
func (h *GalleryHandler) Delete(c echo.Context) error {
	if err := h.galleries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "gallery deleted successfully")
}
