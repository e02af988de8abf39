package domain

import "time"

const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// Registration records an account signing up for an event. Name, email and
// phone are denormalised from the account at creation time so the record
// survives later account edits.
type Registration struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	EventID   string    `json:"event_id"`
	EventName string    `json:"event_name"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
