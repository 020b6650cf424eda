package sidecaches

import (
	"context"
	"errors"
)

// ErrWriteConflict means the document changed between the read and the write.
var ErrWriteConflict = errors.New("side cache write conflict")

// DocumentStore keeps whole documents by name. Writes are compare-and-swap on the full
// document content, so concurrent query processes never lose each other's updates silently.
//
//go:generate mockgen -source=document_store.go -destination=./mocks/document_store_mock.go -package=mocks
type DocumentStore interface {
	// Read returns the current content of name. A missing document reads as nil.
	Read(ctx context.Context, name string) ([]byte, error)
	// CompareAndWrite replaces name with next if its content is still expected, and
	// fails with ErrWriteConflict otherwise. A nil expected means the document must not exist
	// or be empty.
	CompareAndWrite(ctx context.Context, name string, expected, next []byte) error
}
