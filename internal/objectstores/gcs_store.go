package objectstores

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"proxy-logs/internal/models"
)

// defaultGCSPageSize is the JSON API maximum, used when no page size is configured.
const defaultGCSPageSize = 1000

type gcsStore struct {
	client   *storage.Client
	bucket   *storage.BucketHandle
	pageSize int
}

func newGCSStore(client *storage.Client, bucket string, pageSize int) ObjectStore {
	if pageSize <= 0 {
		pageSize = defaultGCSPageSize
	}
	return &gcsStore{client: client, bucket: client.Bucket(bucket), pageSize: pageSize}
}

func (s *gcsStore) List(ctx context.Context, prefix string) ([]models.ObjectDescriptor, error) {
	query := &storage.Query{Prefix: prefix}
	if err := query.SetAttrSelection([]string{"Name", "Size", "Updated"}); err != nil {
		return nil, err
	}

	pager := iterator.NewPager(s.bucket.Objects(ctx, query), s.pageSize, "")
	var objects []models.ObjectDescriptor
	for {
		var page []*storage.ObjectAttrs
		next, err := pager.NextPage(&page)
		if err != nil {
			return nil, fmt.Errorf("failed to list gcs objects with prefix %q: %w", prefix, err)
		}
		for _, attrs := range page {
			objects = append(objects, models.ObjectDescriptor{
				Name:    attrs.Name,
				Size:    attrs.Size,
				Updated: attrs.Updated,
			})
		}
		if next == "" {
			return objects, nil
		}
	}
}

func (s *gcsStore) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to open gcs object %q: %w", name, err)
	}
	defer r.Close()

	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gcs object %q: %w", name, err)
	}
	return blob, nil
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}
