// Package token issues and verifies the two JWT classes used by the session
// layer. Access and refresh tokens are signed with independent secrets, so a
// refresh token can never pass verification as an access token or vice versa.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

// Class selects which signing secret and lifetime apply to a token.
type Class int

const (
	Access Class = iota
	Refresh
)

// Config is the immutable signing configuration, built once at startup.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Validate rejects configurations the process must not start with.
func (c Config) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return errors.New("token: both signing secrets are required")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("token: token lifetimes must be positive")
	}
	return nil
}

// Claims is the payload carried by both token classes. Access tokens embed
// the full identity; refresh tokens carry only the account id (Subject) to
// minimise what a leaked token exposes.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer creates and verifies signed, time-bounded tokens.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg}, nil
}

// IssueAccess signs a short-lived access token for the account.
func (i *Issuer) IssueAccess(a *domain.Account) (string, error) {
	return i.sign(Claims{
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.cfg.AccessTTL)),
		},
	}, i.cfg.AccessSecret)
}

// IssueRefresh signs a long-lived refresh token carrying only the account id.
// The jti makes every mint unique, so a rotated-out token never compares
// equal to its successor even within the same second.
func (i *Issuer) IssueRefresh(a *domain.Account) (string, error) {
	return i.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.cfg.RefreshTTL)),
		},
	}, i.cfg.RefreshSecret)
}

func (i *Issuer) sign(claims Claims, secret string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and validates a token under the secret for class. Expired
// tokens fail with domain.ErrTokenExpired; everything else (malformed input,
// wrong signature, wrong class) fails with domain.ErrTokenMalformed.
func (i *Issuer) Verify(tokenString string, class Class) (*Claims, error) {
	secret := i.cfg.AccessSecret
	if class == Refresh {
		secret = i.cfg.RefreshSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
