package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/api/metrics"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

type RegistrationHandler struct {
	registrations ports.RegistrationService
}

func NewRegistrationHandler(registrations ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type createRegistrationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// Create handles POST /registrations/:eventId. Contact fields default from
// the authenticated account.
func (h *RegistrationHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req createRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	registration, err := h.registrations.Create(c.Request().Context(), ports.RegisterForEventInput{
		EventID: c.Param("eventId"),
		Account: ident,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsCreatedTotal.Inc()

	return respond(c, http.StatusCreated, registration, "registration created successfully")
}

// ListByEvent handles GET /registrations/event/:eventId.
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	registrations, err := h.registrations.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, registrations, "registrations fetched successfully")
}

// ListMine handles GET /registrations/me.
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	registrations, err := h.registrations.ListByAccount(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, registrations, "registrations fetched successfully")
}

// Delete handles DELETE /registrations/delete/:id.
func (h *RegistrationHandler) Delete(c echo.Context) error {
	if err := h.registrations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "registration deleted successfully")
}

// DeleteAll handles DELETE /registrations.
func (h *RegistrationHandler) DeleteAll(c echo.Context) error {
	if err := h.registrations.DeleteAll(c.Request().Context()); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "all registrations deleted successfully")
}
