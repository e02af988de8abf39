package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/api/metrics"
	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
)

// AuthHandler exposes the session state machine over HTTP.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin contentManager user"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" validate:"required"`
}

func (r loginRequest) identifier() string {
	for _, v := range []string{r.Identifier, r.Username, r.Email, r.Phone} {
		if v != "" {
			return v
		}
	}
	return ""
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type sessionResponse struct {
	User         *domain.Account `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /admin/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	acct, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, acct, "account registered successfully")
}

// Login authenticates an account and sets the session cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  map[string]any
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Login(c.Request().Context(), ports.LoginInput{
		Identifier: req.identifier(),
		Password:   req.Password,
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	setSessionCookies(c, result)
	return respond(c, http.StatusOK, sessionResponse{
		User:         result.Account,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "logged in successfully")
}

// Refresh rotates the token pair. The refresh token is read from the
// refreshToken cookie, falling back to the request body.
//
// @Summary      Rotate the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /admin/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	presented := ""
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	result, err := h.sessions.Refresh(c.Request().Context(), presented)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()

	setSessionCookies(c, result)
	return respond(c, http.StatusOK, sessionResponse{
		User:         result.Account,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "session refreshed successfully")
}

// Logout clears the stored refresh token and expires the session cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), ident.ID); err != nil {
		return err
	}

	clearSessionCookies(c)
	return respond(c, http.StatusOK, nil, "logged out successfully")
}

// ChangePassword re-verifies the current secret before accepting a new one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /admin/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), ident.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return respond(c, http.StatusOK, nil, "password changed successfully")
}

// Current returns the authenticated identity; useful for token validation.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /admin/current [get]
func (h *AuthHandler) Current(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, ident, "token is valid")
}

// Session cookies are HTTP-only and transport-secure; client script never
// sees the tokens.
func setSessionCookies(c echo.Context, result *ports.SessionResult) {
	c.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
	c.SetCookie(&http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
}

func clearSessionCookies(c echo.Context) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
		})
	}
}
