package domain

import "time"

// Feedback is a rating plus message left for an event. AccountID is empty
// when the feedback was submitted anonymously.
type Feedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	AccountID string    `json:"account_id,omitempty"`
	Rating    int       `json:"rating"`
	Anonymous bool      `json:"anonymous"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
