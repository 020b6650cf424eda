package objectstores

import (
	"context"
	"errors"
	"fmt"
	"io"

	"proxy-logs/internal/models"
	"proxy-logs/internal/shared/filestorages"
)

// fileStore serves a local directory as a bucket, for development and tests.
type fileStore struct {
	files filestorages.FileStorage
}

func newFileStore(files filestorages.FileStorage) ObjectStore {
	return &fileStore{files: files}
}

func (s *fileStore) List(ctx context.Context, prefix string) ([]models.ObjectDescriptor, error) {
	files, err := s.files.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	objects := make([]models.ObjectDescriptor, 0, len(files))
	for _, f := range files {
		objects = append(objects, models.ObjectDescriptor{Name: f.Key, Size: f.Size, Updated: f.ModTime})
	}
	return objects, nil
}

func (s *fileStore) Read(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.files.Get(ctx, name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *fileStore) Close() error {
	return nil
}
