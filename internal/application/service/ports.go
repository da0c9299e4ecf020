package service

import "context"

// ObjectStorage is the interface product image storage backends implement
type ObjectStorage interface {
	// Upload stores an object under the given key with public-read access
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes an object from storage
	Delete(ctx context.Context, key string) error
	// PublicURL returns the public URL for an object key
	PublicURL(key string) string
}

// ImageModerator screens uploaded images for unsafe content
type ImageModerator interface {
	// DetectLabels returns the moderation labels found in the image.
	// An empty slice means the image is clean.
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}
