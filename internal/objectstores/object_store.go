package objectstores

import (
	"context"
	"errors"

	"proxy-logs/internal/models"
)

var (
	// ErrAuth means the credential for a location could not be acquired or is invalid.
	ErrAuth = errors.New("object store credential failure")
	// ErrStorageUnavailable means a listing or download failed or timed out.
	ErrStorageUnavailable = errors.New("object store unavailable")
	ErrObjectNotFound     = errors.New("object not found")
)

// ObjectStore is read-only access to one bucket. Implementations do not retry.
//
//go:generate mockgen -source=object_store.go -destination=./mocks/object_store_mock.go -package=mocks
type ObjectStore interface {
	// List returns every object whose name starts with prefix, following the backend's
	// pagination until it is exhausted.
	List(ctx context.Context, prefix string) ([]models.ObjectDescriptor, error)
	// Read returns the full content of one object.
	Read(ctx context.Context, name string) ([]byte, error)
	Close() error
}
