package objectstores

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"proxy-logs/internal/models"
	"proxy-logs/internal/shared/filestorages"
)

const awsDefaultProfile = "default"

// Provider opens the object store of a location, acquiring its credential.
//
//go:generate mockgen -source=provider.go -destination=./mocks/provider_mock.go -package=mocks
type Provider interface {
	// Open fails with ErrAuth when the credential cannot be acquired.
	Open(ctx context.Context, location models.Location) (ObjectStore, error)
}

type ProviderOptions struct {
	// PageSize is the listing page size requested from cloud backends. Zero uses the
	// backend default.
	PageSize int
}

type provider struct {
	opts ProviderOptions
}

func NewProvider(opts ProviderOptions) Provider {
	return &provider{opts: opts}
}

func (p *provider) Open(ctx context.Context, location models.Location) (ObjectStore, error) {
	switch location.BucketType {
	case models.BucketGCS:
		return p.openGCS(ctx, location)
	case models.BucketS3:
		return p.openS3(ctx, location)
	case models.BucketFile:
		files, err := filestorages.NewFileStorage(location.BucketName)
		if err != nil {
			return nil, err
		}
		return newFileStore(files), nil
	}
	return nil, fmt.Errorf("unsupported bucket type %q for location %q", location.BucketType, location.Name)
}

func (p *provider) openGCS(ctx context.Context, location models.Location) (ObjectStore, error) {
	var opts []option.ClientOption
	if location.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(location.Endpoint))
	}

	if location.AuthFile != "" {
		data, err := os.ReadFile(location.AuthFile)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read service account file %q: %w", ErrAuth, location.AuthFile, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, storage.ScopeReadOnly)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid service account file %q: %w", ErrAuth, location.AuthFile, err)
		}
		opts = append(opts, option.WithCredentials(creds))
	} else if location.Endpoint == "" {
		creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadOnly)
		if err != nil {
			return nil, fmt.Errorf("%w: no default google credentials: %w", ErrAuth, err)
		}
		opts = append(opts, option.WithCredentials(creds))
	} else {
		// Custom endpoints are emulators, which do not check credentials.
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gcs client: %w", ErrAuth, err)
	}
	return newGCSStore(client, location.BucketName, p.opts.PageSize), nil
}

func (p *provider) openS3(ctx context.Context, location models.Location) (ObjectStore, error) {
	cfg := &aws.Config{
		Region:           aws.String(location.Region),
		S3ForcePathStyle: aws.Bool(location.Endpoint != ""),
	}
	if location.Endpoint != "" {
		cfg.Endpoint = aws.String(location.Endpoint)
	}
	if location.AuthFile != "" {
		cfg.Credentials = credentials.NewSharedCredentials(location.AuthFile, awsDefaultProfile)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create aws session: %w", ErrAuth, err)
	}
	if _, err := sess.Config.Credentials.GetWithContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to resolve aws credentials: %w", ErrAuth, err)
	}
	return newS3Store(s3.New(sess), location.BucketName, p.opts.PageSize), nil
}
