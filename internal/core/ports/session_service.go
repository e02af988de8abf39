package ports

import (
	"context"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Role     string
}

type LoginInput struct {
	// Identifier is a username, email or phone number.
	Identifier string
	Password   string
}

// SessionResult is returned by Login and Refresh: the sanitized account plus
// a freshly issued token pair.
type SessionResult struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
}

// SessionService drives the per-account session state machine:
// Anonymous → Authenticated → (Refreshed)* → LoggedOut.
type SessionService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, in LoginInput) (*SessionResult, error)
	// Refresh rotates the token pair. The presented token must exactly match
	// the account's stored slot; a superseded token fails permanently.
	Refresh(ctx context.Context, presented string) (*SessionResult, error)
	Logout(ctx context.Context, accountID string) error
	ChangePassword(ctx context.Context, accountID, current, next string) error
}
