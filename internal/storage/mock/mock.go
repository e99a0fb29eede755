// Package mock provides an in-memory test double for storage.BlobStore.
//
// Objects live in a map; per-object upload failures can be injected through
// UploadErrFor to exercise partial-failure paths.
package mock

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/wenlu-app/wenlu/internal/storage"
)

// UploadCall records a single invocation of Upload.
type UploadCall struct {
	ObjectName  string
	ContentType string
	Data        []byte
}

// Store is a mock implementation of storage.BlobStore.
type Store struct {
	mu sync.Mutex

	// Objects maps object name to content. Pre-populate to simulate an
	// already-warm cache.
	Objects map[string][]byte

	// ContentTypes records the content type of every stored object.
	ContentTypes map[string]string

	// ExistsErr, if non-nil, is returned by every Exists call.
	ExistsErr error

	// DownloadErr, if non-nil, is returned by every Download call.
	DownloadErr error

	// UploadErr, if non-nil, is returned by every Upload call.
	UploadErr error

	// UploadErrFor maps object names to errors returned only for that
	// object. Takes precedence over UploadErr.
	UploadErrFor map[string]error

	// UploadCalls records every Upload invocation in order, including
	// failed ones.
	UploadCalls []UploadCall
}

// New returns an empty Store ready for use.
func New() *Store {
	return &Store{
		Objects:      map[string][]byte{},
		ContentTypes: map[string]string{},
		UploadErrFor: map[string]error{},
	}
}

func (s *Store) Exists(ctx context.Context, objectName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	_, ok := s.Objects[objectName]
	return ok, nil
}

func (s *Store) Download(ctx context.Context, objectName string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DownloadErr != nil {
		return nil, s.DownloadErr
	}
	b, ok := s.Objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %q does not exist", objectName)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *Store) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.UploadCalls = append(s.UploadCalls, UploadCall{ObjectName: objectName, ContentType: contentType, Data: data})

	if e, ok := s.UploadErrFor[objectName]; ok && e != nil {
		return e
	}
	if s.UploadErr != nil {
		return s.UploadErr
	}

	s.Objects[objectName] = data
	s.ContentTypes[objectName] = contentType
	return nil
}

func (s *Store) PublicURL(objectName string) string {
	return "https://storage.test/wenlu/" + objectName
}

// Ensure Store implements storage.BlobStore at compile time.
var _ storage.BlobStore = (*Store)(nil)
