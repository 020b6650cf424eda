package objectstores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"proxy-logs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Open_UnsupportedBucketType(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(ProviderOptions{}).Open(context.Background(), models.Location{Name: "eu", BucketType: "azure"})
	assert.ErrorContains(t, err, "unsupported bucket type")
}

func TestProvider_Open_MissingGCSKeyFileIsAuthError(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(ProviderOptions{}).Open(context.Background(), models.Location{
		Name:       "eu",
		BucketType: models.BucketGCS,
		BucketName: "logs",
		AuthFile:   filepath.Join(t.TempDir(), "missing.json"),
	})
	assert.ErrorIs(t, err, ErrAuth)
}

func TestProvider_Open_InvalidGCSKeyFileIsAuthError(t *testing.T) {
	t.Parallel()

	keyFile := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(keyFile, []byte("not json"), 0o600))

	_, err := NewProvider(ProviderOptions{}).Open(context.Background(), models.Location{
		Name:       "eu",
		BucketType: models.BucketGCS,
		BucketName: "logs",
		AuthFile:   keyFile,
	})
	assert.ErrorIs(t, err, ErrAuth)
}

func TestProvider_Open_MissingS3CredentialsFileIsAuthError(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(ProviderOptions{}).Open(context.Background(), models.Location{
		Name:       "us",
		BucketType: models.BucketS3,
		BucketName: "logs",
		Region:     "us-east-1",
		AuthFile:   filepath.Join(t.TempDir(), "credentials"),
	})
	assert.ErrorIs(t, err, ErrAuth)
}

func TestProvider_Open_S3SharedCredentialsFile(t *testing.T) {
	t.Parallel()

	credsFile := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(credsFile, []byte("[default]\naws_access_key_id = AKIDEXAMPLE\naws_secret_access_key = secret\n"), 0o600))

	store, err := NewProvider(ProviderOptions{PageSize: 100}).Open(context.Background(), models.Location{
		Name:       "us",
		BucketType: models.BucketS3,
		BucketName: "logs",
		Region:     "us-east-1",
		Endpoint:   "http://127.0.0.1:9000",
		AuthFile:   credsFile,
	})
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
