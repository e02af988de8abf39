// Package password wraps bcrypt hashing and enforces the password strength
// policy. bcrypt embeds a fresh random salt in every hash and compares in
// constant time, so verification needs no separate salt storage.
package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/opencampus/campus-cms/internal/core/domain"
)

const minLength = 8

// Hash derives a salted one-way hash of secret. Two calls with the same
// secret produce different stored values.
func Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether secret matches the stored hash.
func Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// ValidateStrength enforces the registration policy: at least 8 characters
// with one lowercase, one uppercase, one digit and one symbol.
func ValidateStrength(secret string) error {
	if len(secret) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minLength)
	}

	var lower, upper, digit, symbol bool
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("%w: password must contain lowercase, uppercase, digit and symbol characters", domain.ErrInvalidInput)
	}
	return nil
}
