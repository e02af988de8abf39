package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
	"github.com/opencampus/campus-cms/internal/core/token"
)

// identityKey is where the authenticated account lives on the echo context.
const identityKey = "identity"

// Authenticate extracts a bearer access token (accessToken cookie first, then
// the Authorization header), verifies it, resolves the subject account and
// attaches a sanitized identity to the request context. Expired and malformed
// tokens surface as distinct errors so clients can decide between silent
// refresh and full re-login.
func Authenticate(issuer *token.Issuer, accounts ports.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return domain.ErrNoCredential
			}

			claims, err := issuer.Verify(raw, token.Access)
			if err != nil {
				return err
			}

			acct, err := accounts.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Token is valid but the account is gone.
					return domain.ErrInvalidCredentials
				}
				return err
			}

			c.Set(identityKey, acct.Sanitized())
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Identity returns the authenticated account attached by Authenticate, or
// nil when the request is unauthenticated.
func Identity(c echo.Context) *domain.Account {
	acct, _ := c.Get(identityKey).(*domain.Account)
	return acct
}
