package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/ports"
)

type FeedbackHandler struct {
	feedback ports.FeedbackService
}

func NewFeedbackHandler(feedback ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type createFeedbackRequest struct {
	Rating    int    `json:"rating"    validate:"required,min=1,max=5"`
	Message   string `json:"message"   validate:"required,max=500"`
	Anonymous bool   `json:"anonymous"`
}

// Create handles POST /feedback/:eventId.
func (h *FeedbackHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req createFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feedback, err := h.feedback.Create(c.Request().Context(), ports.FeedbackInput{
		EventID:   c.Param("eventId"),
		AccountID: ident.ID,
		Rating:    req.Rating,
		Anonymous: req.Anonymous,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, feedback, "feedback recorded successfully")
}

// ListByEvent handles GET /feedback/:eventId.
func (h *FeedbackHandler) ListByEvent(c echo.Context) error {
	feedback, err := h.feedback.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, feedback, "feedback fetched successfully")
}

// Delete handles DELETE /feedback/delete/:id.
func (h *FeedbackHandler) Delete(c echo.Context) error {
	if err := h.feedback.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "feedback deleted successfully")
}
