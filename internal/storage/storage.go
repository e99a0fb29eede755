package storage

import (
	"context"
	"io"
)

// BlobStore is the content-addressed object store behind the conversation
// and audio caches.
//
// Exists and Download never mutate state and are safe for concurrent use.
// Upload is at-least-once safe: racing writers for the same object are
// expected to carry byte-equivalent content, so last-writer-wins is fine.
type BlobStore interface {
	Exists(ctx context.Context, objectName string) (bool, error)
	Download(ctx context.Context, objectName string) ([]byte, error)
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) error

	// PublicURL returns the stable public URL for an object. It does not
	// check that the object exists.
	PublicURL(objectName string) string
}
