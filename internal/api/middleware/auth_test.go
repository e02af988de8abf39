package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/token"
)

type stubAccounts struct {
	accounts map[string]*domain.Account
}

func (r *stubAccounts) FindByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == identifier || a.Email == identifier || a.Phone == identifier {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccounts) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.accounts[a.ID] = a
	return a, nil
}

func (r *stubAccounts) SetRefreshToken(_ context.Context, id, tok string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.RefreshToken = tok
	return nil
}

func (r *stubAccounts) SetSecretHash(_ context.Context, id, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.SecretHash = hash
	return nil
}

func newAuthFixture(t *testing.T) (*token.Issuer, *stubAccounts, *domain.Account) {
	t.Helper()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	acct := &domain.Account{
		ID:         "acc_1",
		Username:   "alice",
		Email:      "a@x.com",
		Phone:      "1234567890",
		SecretHash: "hash",
		Role:       domain.RoleAdmin,
	}
	repo := &stubAccounts{accounts: map[string]*domain.Account{acct.ID: acct}}
	return issuer, repo, acct
}

func runAuth(t *testing.T, issuer *token.Issuer, repo *stubAccounts, prepare func(*http.Request)) (error, *domain.Account) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Account
	handler := Authenticate(issuer, repo)(func(c echo.Context) error {
		seen = Identity(c)
		return c.NoContent(http.StatusOK)
	})
	return handler(c), seen
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	issuer, repo, acct := newAuthFixture(t)
	signed, err := issuer.IssueAccess(acct)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	err, seen := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen == nil || seen.ID != acct.ID {
		t.Fatalf("identity not attached: %+v", seen)
	}
	if seen.SecretHash != "" || seen.RefreshToken != "" {
		t.Fatalf("identity must be sanitized: %+v", seen)
	}
}

func TestAuthenticate_CookieTakesPrecedence(t *testing.T) {
	issuer, repo, acct := newAuthFixture(t)
	signed, _ := issuer.IssueAccess(acct)

	err, seen := runAuth(t, issuer, repo, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: signed})
		req.Header.Set("Authorization", "Bearer garbage")
	})
	if err != nil {
		t.Fatalf("cookie token should win: %v", err)
	}
	if seen == nil || seen.ID != acct.ID {
		t.Fatalf("identity not attached")
	}
}

func TestAuthenticate_MissingCredential(t *testing.T) {
	issuer, repo, _ := newAuthFixture(t)

	err, _ := runAuth(t, issuer, repo, func(*http.Request) {})
	if !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}

	err, _ = runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
	if !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("non-bearer scheme should count as no credential, got %v", err)
	}
}

func TestAuthenticate_ExpiredVersusMalformed(t *testing.T) {
	issuer, repo, acct := newAuthFixture(t)

	// Signed with the gate's access secret but already past its expiry.
	expiredClaims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	err, _ = runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+expired)
	})
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	err, _ = runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	issuer, repo, acct := newAuthFixture(t)
	refresh, _ := issuer.IssueRefresh(acct)

	err, _ := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+refresh)
	})
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("refresh token must not authenticate a request, got %v", err)
	}
}

func TestAuthenticate_AccountGone(t *testing.T) {
	issuer, repo, acct := newAuthFixture(t)
	signed, _ := issuer.IssueAccess(acct)
	delete(repo.accounts, acct.ID)

	err, _ := runAuth(t, issuer, repo, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for vanished account, got %v", err)
	}
}
