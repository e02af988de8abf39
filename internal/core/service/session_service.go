package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/password"
	"github.com/opencampus/campus-cms/internal/core/ports"
	"github.com/opencampus/campus-cms/internal/core/token"
)

type sessionService struct {
	accounts ports.AccountRepository
	issuer   *token.Issuer
	log      zerolog.Logger
}

// NewSessionService returns the SessionService implementation. It is the only
// writer of the account's refresh-token slot.
func NewSessionService(accounts ports.AccountRepository, issuer *token.Issuer, log zerolog.Logger) ports.SessionService {
	return &sessionService{accounts: accounts, issuer: issuer, log: log}
}

// Register validates the input, hashes the secret and creates the account.
// Identifier uniqueness is enforced by the store; a conflict surfaces as
// domain.ErrConflict without mutating state.
func (s *sessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if username == "" || email == "" || phone == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email, phone and password are required", domain.ErrInvalidInput)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}

	if err := password.ValidateStrength(in.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.accounts.Create(ctx, &domain.Account{
		Username:   username,
		Email:      email,
		Phone:      phone,
		SecretHash: hash,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", created.ID).Str("role", created.Role).Msg("account registered")
	return created.Sanitized(), nil
}

// Login resolves the account by any identifier and verifies the secret. Both
// an unknown identifier and a wrong secret collapse to the same
// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *sessionService) Login(ctx context.Context, in ports.LoginInput) (*ports.SessionResult, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", domain.ErrInvalidInput)
	}

	acct, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(in.Password, acct.SecretHash) {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issuePair(ctx, acct)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", acct.ID).Msg("login succeeded")
	return result, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token must
// verify under the refresh secret and exactly match the stored slot; a
// superseded token is a replay and fails. Every failure collapses to
// domain.ErrInvalidCredentials so the client learns nothing about which
// check tripped.
func (s *sessionService) Refresh(ctx context.Context, presented string) (*ports.SessionResult, error) {
	if presented == "" {
		return nil, domain.ErrNoCredential
	}

	claims, err := s.issuer.Verify(presented, token.Refresh)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := s.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if acct.RefreshToken == "" || acct.RefreshToken != presented {
		s.log.Warn().Str("account_id", acct.ID).Msg("superseded refresh token presented")
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issuePair(ctx, acct)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", acct.ID).Msg("session refreshed")
	return result, nil
}

// Logout clears the refresh-token slot, invalidating every outstanding
// refresh token for the account. The current access token stays valid until
// its natural expiry.
func (s *sessionService) Logout(ctx context.Context, accountID string) error {
	if err := s.accounts.SetRefreshToken(ctx, accountID, ""); err != nil {
		return err
	}
	s.log.Info().Str("account_id", accountID).Msg("logged out")
	return nil
}

// ChangePassword re-verifies the current secret before accepting the new one,
// so a stolen access token alone is not enough to take over the account. The
// refresh-token slot is left untouched.
func (s *sessionService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if !password.Verify(current, acct.SecretHash) {
		return domain.ErrInvalidCredentials
	}

	if err := password.ValidateStrength(next); err != nil {
		return err
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}

	if err := s.accounts.SetSecretHash(ctx, accountID, hash); err != nil {
		return err
	}

	s.log.Info().Str("account_id", accountID).Msg("password changed")
	return nil
}

// issuePair mints a fresh access+refresh pair and overwrites the stored
// refresh-token slot (rotation). Concurrent calls race on the single slot;
// last writer wins and the loser's token fails its next comparison, which is
// the intended replay defense.
func (s *sessionService) issuePair(ctx context.Context, acct *domain.Account) (*ports.SessionResult, error) {
	access, err := s.issuer.IssueAccess(acct)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefresh(acct)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.SetRefreshToken(ctx, acct.ID, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &ports.SessionResult{
		Account:      acct.Sanitized(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
