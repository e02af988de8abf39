package domain

import "errors"

// Sentinel errors shared across the core. Services wrap them with context via
// fmt.Errorf("...: %w", err); the HTTP boundary matches with errors.Is and
// renders the envelope, so no raw internal error ever reaches a client.
var (
	// ErrInvalidInput covers missing or malformed request fields (400).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict covers uniqueness violations: duplicate login identifiers,
	// duplicate event registrations (409).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is the single generic credential failure: unknown
	// identifier, wrong password, replayed refresh token, vanished account.
	// The message is deliberately identical for all of them (401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoCredential means no token was supplied at all (401).
	ErrNoCredential = errors.New("no credential supplied")

	// ErrTokenExpired means a structurally valid, correctly signed token whose
	// lifetime has passed. Kept distinct from ErrTokenMalformed so clients can
	// attempt a silent refresh instead of a full re-login (401).
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers unparseable tokens and bad signatures (401).
	ErrTokenMalformed = errors.New("invalid token")

	// ErrForbidden means authenticated but lacking the required role (403).
	ErrForbidden = errors.New("insufficient privileges")

	// ErrNotFound covers missing content resources (404).
	ErrNotFound = errors.New("resource not found")
)
