package domain

import "time"

const (
	FacultyGroupHead   = "head"
	FacultyGroupMember = "member"
)

// FacultyMember is one entry on the faculty page, either a department head or
// a regular member.
type FacultyMember struct {
	ID          string    `json:"id"`
	Group       string    `json:"group"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Image       string    `json:"image"`
	Testimonial string    `json:"testimonial,omitempty"`
	Department  string    `json:"department"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
