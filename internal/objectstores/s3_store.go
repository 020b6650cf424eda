package objectstores

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"proxy-logs/internal/models"
)

type s3Store struct {
	client   s3iface.S3API
	bucket   string
	pageSize int
}

func newS3Store(client s3iface.S3API, bucket string, pageSize int) ObjectStore {
	return &s3Store{client: client, bucket: bucket, pageSize: pageSize}
}

func (s *s3Store) List(ctx context.Context, prefix string) ([]models.ObjectDescriptor, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if s.pageSize > 0 {
		input.MaxKeys = aws.Int64(int64(s.pageSize))
	}

	var objects []models.ObjectDescriptor
	err := s.client.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			objects = append(objects, models.ObjectDescriptor{
				Name:    aws.StringValue(obj.Key),
				Size:    aws.Int64Value(obj.Size),
				Updated: aws.TimeValue(obj.LastModified),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list s3 objects with prefix %q: %w", prefix, err)
	}
	return objects, nil
}

func (s *s3Store) Read(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to get s3 object %q: %w", name, err)
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3 object %q: %w", name, err)
	}
	return blob, nil
}

func (s *s3Store) Close() error {
	return nil
}
