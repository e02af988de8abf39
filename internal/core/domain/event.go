package domain

import "time"

const (
	CategoryEvent = "event"
	CategoryBlog  = "blog"
)

// Event is a published campus event or blog post. Media holds the public URL
// of the uploaded asset on the media host.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Media       string    `json:"media"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
