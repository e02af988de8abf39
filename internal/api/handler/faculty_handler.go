package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/ports"
)

type FacultyHandler struct {
	faculty ports.FacultyService
}

func NewFacultyHandler(faculty ports.FacultyService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty}
}

type facultyRequest struct {
	Group       string `json:"group"       validate:"required,oneof=head member"`
	Name        string `json:"name"        validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Image       string `json:"image"       validate:"required"`
	Testimonial string `json:"testimonial"`
	Department  string `json:"department"  validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
}

type facultyUpdateRequest struct {
	Group       string `json:"group" validate:"omitempty,oneof=head member"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
	Testimonial string `json:"testimonial"`
	Department  string `json:"department"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// Add handles POST /faculty/add.
func (h *FacultyHandler) Add(c echo.Context) error {
	var req facultyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.faculty.Add(c.Request().Context(), ports.FacultyInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, member, "faculty member added successfully")
}

// List handles GET /faculty with an optional ?group=head|member filter.
func (h *FacultyHandler) List(c echo.Context) error {
	members, err := h.faculty.List(c.Request().Context(), c.QueryParam("group"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, members, "faculty fetched successfully")
}

// Update handles PATCH /faculty/update/:id.
func (h *FacultyHandler) Update(c echo.Context) error {
	var req facultyUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.faculty.Update(c.Request().Context(), c.Param("id"), ports.FacultyInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, member, "faculty member updated successfully")
}

// Remove handles DELETE /faculty/delete/:id.
func (h *FacultyHandler) Remove(c echo.Context) error {
	if err := h.faculty.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "faculty member removed successfully")
}
