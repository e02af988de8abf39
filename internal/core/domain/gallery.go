package domain

import "time"

// GalleryImage is a single uploaded asset inside a gallery.
type GalleryImage struct {
	URL        string    `json:"url"`
	PublicID   string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Gallery is a titled collection of uploaded images.
type Gallery struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Images      []GalleryImage `json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
