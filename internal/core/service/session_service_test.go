package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
	"github.com/opencampus/campus-cms/internal/core/token"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == identifier || a.Email == identifier || a.Phone == identifier {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == account.Username || a.Email == account.Email || a.Phone == account.Phone {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	clone := cloneAccount(account)
	clone.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.accounts[clone.ID] = clone
	return cloneAccount(clone), nil
}

func (r *stubAccountRepo) SetRefreshToken(_ context.Context, id, tok string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.RefreshToken = tok
	return nil
}

func (r *stubAccountRepo) SetSecretHash(_ context.Context, id, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.SecretHash = hash
	return nil
}

func newTestSession(t *testing.T) (ports.SessionService, *stubAccountRepo, *token.Issuer) {
	t.Helper()
	repo := newStubAccountRepo()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return NewSessionService(repo, issuer, zerolog.Nop()), repo, issuer
}

func registerAlice(t *testing.T, svc ports.SessionService) *domain.Account {
	t.Helper()
	acct, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Phone:    "1234567890",
		Password: "Abcd123!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return acct
}

func TestSession_RegisterThenLogin(t *testing.T) {
	svc, _, _ := newTestSession(t)

	acct := registerAlice(t, svc)
	if acct.SecretHash != "" || acct.RefreshToken != "" {
		t.Fatalf("registered account leaks secrets: %+v", acct)
	}
	if acct.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", acct.Role)
	}

	for _, identifier := range []string{"alice", "a@x.com", "1234567890"} {
		result, err := svc.Login(context.Background(), ports.LoginInput{Identifier: identifier, Password: "Abcd123!"})
		if err != nil {
			t.Fatalf("login via %q: %v", identifier, err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Fatalf("login returned empty token pair")
		}
		if result.Account.SecretHash != "" || result.Account.RefreshToken != "" {
			t.Fatalf("login result leaks secrets")
		}
	}
}

func TestSession_Register_Validation(t *testing.T) {
	svc, _, _ := newTestSession(t)

	cases := []ports.RegisterInput{
		{Username: "  ", Email: "a@x.com", Phone: "1", Password: "Abcd123!"},
		{Username: "alice", Email: "a@x.com", Phone: "1", Password: "weak"},
		{Username: "alice", Email: "a@x.com", Phone: "1", Password: "Abcd123!", Role: "superuser"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSession_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestSession(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice2",
		Email:    "a@x.com", // duplicate email
		Phone:    "0987654321",
		Password: "Abcd123!",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSession_Login_GenericFailureMessage(t *testing.T) {
	svc, _, _ := newTestSession(t)
	registerAlice(t, svc)

	_, errWrongSecret := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Wrong123!"})
	_, errUnknownUser := svc.Login(context.Background(), ports.LoginInput{Identifier: "nobody", Password: "Abcd123!"})

	if !errors.Is(errWrongSecret, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong secret: expected ErrInvalidCredentials, got %v", errWrongSecret)
	}
	if !errors.Is(errUnknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown identifier: expected ErrInvalidCredentials, got %v", errUnknownUser)
	}
	if errWrongSecret.Error() != errUnknownUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrongSecret, errUnknownUser)
	}
}

func TestSession_Login_OverwritesRefreshSlot(t *testing.T) {
	svc, repo, _ := newTestSession(t)
	acct := registerAlice(t, svc)

	first, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Abcd123!"})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Abcd123!"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	stored := repo.accounts[acct.ID].RefreshToken
	if stored != second.RefreshToken {
		t.Fatalf("stored slot should hold the latest refresh token")
	}

	// The first session's refresh token is now superseded.
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("superseded token should be rejected, got %v", err)
	}
}

func TestSession_Refresh_RotatesAndRejectsReplay(t *testing.T) {
	svc, _, _ := newTestSession(t)
	registerAlice(t, svc)

	login, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "a@x.com", Password: "Abcd123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == login.RefreshToken {
		t.Fatalf("refresh must rotate the refresh token")
	}
	if rotated.AccessToken == "" {
		t.Fatalf("refresh returned empty access token")
	}

	// Replaying the pre-rotation token fails even though it is time-valid.
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("replayed token should fail, got %v", err)
	}

	// The new token works exactly once before the next rotation.
	again, err := svc.Refresh(context.Background(), rotated.RefreshToken)
	if err != nil {
		t.Fatalf("refresh with rotated token: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), rotated.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("second use of rotated token should fail, got %v", err)
	}
	_ = again
}

func TestSession_Refresh_ForgedToken(t *testing.T) {
	svc, _, _ := newTestSession(t)
	registerAlice(t, svc)

	if _, err := svc.Refresh(context.Background(), "forged.token.value"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("forged token should fail with ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("empty token should fail with ErrNoCredential, got %v", err)
	}
}

func TestSession_Refresh_AccessTokenNotAccepted(t *testing.T) {
	svc, _, _ := newTestSession(t)
	registerAlice(t, svc)

	login, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Abcd123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("access token must not pass the refresh path, got %v", err)
	}
}

func TestSession_Logout_InvalidatesRefreshNotAccess(t *testing.T) {
	svc, repo, issuer := newTestSession(t)
	acct := registerAlice(t, svc)

	login, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Abcd123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), acct.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if repo.accounts[acct.ID].RefreshToken != "" {
		t.Fatalf("logout should clear the refresh-token slot")
	}

	if _, err := svc.Refresh(context.Background(), login.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("refresh after logout should fail, got %v", err)
	}

	// The access token still verifies until its natural expiry.
	if _, err := issuer.Verify(login.AccessToken, token.Access); err != nil {
		t.Fatalf("access token should outlive logout: %v", err)
	}
}

func TestSession_ChangePassword(t *testing.T) {
	svc, _, _ := newTestSession(t)
	acct := registerAlice(t, svc)

	if err := svc.ChangePassword(context.Background(), acct.ID, "Wrong123!", "Next1234!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current secret should fail, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), acct.ID, "Abcd123!", "weak"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("weak new secret should fail, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), acct.ID, "Abcd123!", "Next1234!"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Abcd123!"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old secret should no longer log in, got %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Identifier: "alice", Password: "Next1234!"}); err != nil {
		t.Fatalf("new secret should log in: %v", err)
	}
}
