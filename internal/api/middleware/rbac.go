package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

// RequireRole gates a route to the given roles. An absent identity fails as
// unauthenticated (401); a present identity with a role outside the allowed
// set fails as forbidden (403). The two failure kinds stay distinct.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := Identity(c)
			if ident == nil || ident.Role == "" {
				return domain.ErrNoCredential
			}
			if _, ok := allowed[ident.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
