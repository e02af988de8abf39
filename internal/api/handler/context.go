package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/api/middleware"
	"github.com/opencampus/campus-cms/internal/core/domain"
)

// identity extracts the authenticated account injected by the Authenticate
// middleware. Handlers behind the auth gate fast-fail with 401 when the
// identity is missing (the gate did not run or was bypassed).
func identity(c echo.Context) (*domain.Account, error) {
	ident := middleware.Identity(c)
	if ident == nil {
		return nil, domain.ErrNoCredential
	}
	return ident, nil
}
