package sidecaches

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"proxy-logs/internal/shared/filestorages"
)

// fileDocumentStore keeps documents as files under one directory. The compare step is
// serialized per document inside this process; updates are an atomic rename and creates
// an atomic link that fails when the document already exists.
type fileDocumentStore struct {
	files filestorages.FileStorage

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileDocumentStore(files filestorages.FileStorage) DocumentStore {
	return &fileDocumentStore{files: files, locks: make(map[string]*sync.Mutex)}
}

func (s *fileDocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.files.Get(ctx, name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open document %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", name, err)
	}
	return data, nil
}

func (s *fileDocumentStore) CompareAndWrite(ctx context.Context, name string, expected, next []byte) error {
	lock := s.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.Read(ctx, name)
	if err != nil {
		return err
	}
	if !bytes.Equal(current, expected) {
		return fmt.Errorf("%w: %s", ErrWriteConflict, name)
	}

	// A missing document is created without overwrite so concurrent creators conflict.
	opts := filestorages.PutOptions{AllowOverwrite: current != nil}
	if _, err := s.files.Put(ctx, name, bytes.NewReader(next), opts); err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return fmt.Errorf("%w: %s", ErrWriteConflict, name)
		}
		return fmt.Errorf("failed to write document %q: %w", name, err)
	}
	return nil
}

func (s *fileDocumentStore) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}
