package domain

import "time"

const (
	RoleAdmin          = "admin"
	RoleContentManager = "contentManager"
	RoleUser           = "user"
)

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleContentManager, RoleUser:
		return true
	}
	return false
}

// Account models an authenticated actor. Username, email and phone are each
// globally unique and interchangeable as login identifiers. RefreshToken is
// the single live refresh credential for the account; it is overwritten on
// every login/refresh and cleared on logout.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	SecretHash   string    `json:"-"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to transport layers: no secret hash,
// no refresh token.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.SecretHash = ""
	clone.RefreshToken = ""
	return &clone
}
