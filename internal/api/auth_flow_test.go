package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/api/handler"
	"github.com/opencampus/campus-cms/internal/api/middleware"
	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/service"
	"github.com/opencampus/campus-cms/internal/core/token"
)

// memAccounts is an in-memory account store for exercising the full HTTP
// session flow without MongoDB.
type memAccounts struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[string]*domain.Account)}
}

func (m *memAccounts) FindByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	for _, a := range m.accounts {
		if a.Username == identifier || a.Email == identifier || a.Phone == identifier {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range m.accounts {
		if a.Username == account.Username || a.Email == account.Email || a.Phone == account.Phone {
			return nil, domain.ErrConflict
		}
	}
	m.nextID++
	created := *account
	created.ID = strconv.Itoa(m.nextID)
	m.accounts[created.ID] = &created
	stored := created
	return &stored, nil
}

func (m *memAccounts) SetRefreshToken(_ context.Context, id, tok string) error {
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.RefreshToken = tok
	return nil
}

func (m *memAccounts) SetSecretHash(_ context.Context, id, hash string) error {
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.SecretHash = hash
	return nil
}

func newSessionServer(t *testing.T) *echo.Echo {
	t.Helper()

	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret-for-flow-test",
		RefreshSecret: "refresh-secret-for-flow-test",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	accounts := newMemAccounts()
	sessions := service.NewSessionService(accounts, issuer, zerolog.Nop())
	authHandler := handler.NewAuthHandler(sessions)
	authed := middleware.Authenticate(issuer, accounts)

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	admin := e.Group("/api/v1/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)
	admin.POST("/refresh-token", authHandler.Refresh)
	admin.POST("/logout", authHandler.Logout, authed)
	admin.GET("/current", authHandler.Current, authed)

	return e
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSessionFlow_RegisterLoginRefreshReplay(t *testing.T) {
	e := newSessionServer(t)

	// Register.
	rec := doJSON(e, http.MethodPost, "/api/v1/admin/register",
		`{"username":"dean","email":"dean@campus.edu","phone":"5550100","password":"Sup3r$ecret","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secretHash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("register response leaks the secret hash: %s", rec.Body.String())
	}

	// Login with the email as identifier.
	rec = doJSON(e, http.MethodPost, "/api/v1/admin/login",
		`{"email":"dean@campus.edu","password":"Sup3r$ecret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	access := cookieNamed(t, rec, "accessToken")
	refresh := cookieNamed(t, rec, "refreshToken")
	if !access.HttpOnly || !refresh.HttpOnly {
		t.Fatal("session cookies must be http-only")
	}

	// The access cookie authenticates protected routes.
	rec = doJSON(e, http.MethodGet, "/api/v1/admin/current", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("current: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	// Rotate: a new pair is minted.
	rec = doJSON(e, http.MethodPost, "/api/v1/admin/refresh-token", "", refresh)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	rotated := cookieNamed(t, rec, "refreshToken")
	if rotated.Value == refresh.Value {
		t.Fatal("refresh token was not rotated")
	}

	// Replaying the consumed token must fail without revealing why.
	rec = doJSON(e, http.MethodPost, "/api/v1/admin/refresh-token", "", refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("replay: got %d, want 401 (%s)", rec.Code, rec.Body.String())
	}
	var fail failEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &fail); err != nil {
		t.Fatalf("decode failure envelope: %v", err)
	}
	if fail.Success || fail.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected failure envelope: %+v", fail)
	}
	if strings.Contains(strings.ToLower(fail.Message), "replay") {
		t.Fatalf("failure message must stay generic, got %q", fail.Message)
	}

	// The rotated token still works exactly once more.
	rec = doJSON(e, http.MethodPost, "/api/v1/admin/refresh-token", "", rotated)
	if rec.Code != http.StatusOK {
		t.Fatalf("rotated refresh: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
}

func TestSessionFlow_LogoutInvalidatesRefresh(t *testing.T) {
	e := newSessionServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/admin/register",
		`{"username":"editor","email":"editor@campus.edu","phone":"5550101","password":"Sup3r$ecret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/admin/login",
		`{"username":"editor","password":"Sup3r$ecret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d (%s)", rec.Code, rec.Body.String())
	}
	access := cookieNamed(t, rec, "accessToken")
	refresh := cookieNamed(t, rec, "refreshToken")

	rec = doJSON(e, http.MethodPost, "/api/v1/admin/logout", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: got %d (%s)", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Value != "" || c.MaxAge >= 0 {
			t.Fatalf("logout must expire cookie %q", c.Name)
		}
	}

	// The cleared slot rejects the old refresh token.
	rec = doJSON(e, http.MethodPost, "/api/v1/admin/refresh-token", "", refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: got %d, want 401 (%s)", rec.Code, rec.Body.String())
	}
}

func TestSessionFlow_RefreshWithoutCredential(t *testing.T) {
	e := newSessionServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/admin/refresh-token", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401 (%s)", rec.Code, rec.Body.String())
	}
	var fail failEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &fail); err != nil {
		t.Fatalf("decode failure envelope: %v", err)
	}
	if fail.Message != "no credential supplied" {
		t.Fatalf("got message %q, want %q", fail.Message, "no credential supplied")
	}
}
