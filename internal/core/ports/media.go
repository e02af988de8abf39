package ports

import (
	"context"
	"io"
)

// MediaFile is an inbound upload as received by the transport layer.
type MediaFile struct {
	Filename string
	Reader   io.Reader
}

// MediaUpload is the result of a successful upload to the media host.
type MediaUpload struct {
	URL      string
	PublicID string
}

// MediaStore abstracts the remote media host (Cloudinary-compatible).
type MediaStore interface {
	Upload(ctx context.Context, file *MediaFile) (*MediaUpload, error)
	Delete(ctx context.Context, publicID string) error
}

// CleanupQueue accepts URLs of assets that should be deleted from the media
// host off the request path (replaced or orphaned uploads).
type CleanupQueue interface {
	Enqueue(mediaURL string)
}
