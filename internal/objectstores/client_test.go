package objectstores_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"proxy-logs/internal/models"
	"proxy-logs/internal/objectstores"
	"proxy-logs/internal/objectstores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClient_ListCurrentObjects_KeepsFreshNonEmptyObjects(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	since := time.Unix(1_700_000_000, 0)
	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().List(gomock.Any(), "squid/eu/").Return([]models.ObjectDescriptor{
		{Name: "squid/eu/proxy-01.log", Size: 10, Updated: since.Add(time.Minute)},
		{Name: "squid/eu/proxy-02.log", Size: 10, Updated: since},
		{Name: "squid/eu/proxy-03.log", Size: 0, Updated: since.Add(time.Minute)},
		{Name: "squid/eu/proxy-04.log", Size: 10, Updated: since.Add(-time.Hour)},
	}, nil)

	client := objectstores.NewClient(store, models.BucketGCS, objectstores.ClientOptions{})
	objects, err := client.ListCurrentObjects(context.Background(), "squid/eu/", since)

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "squid/eu/proxy-01.log", objects[0].Name)
}

func TestClient_ListCurrentObjects_ListingFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	client := objectstores.NewClient(store, models.BucketS3, objectstores.ClientOptions{})
	_, err := client.ListCurrentObjects(context.Background(), "", time.Time{})

	assert.ErrorIs(t, err, objectstores.ErrStorageUnavailable)
}

func TestClient_ListCurrentObjects_AppliesRequestTimeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ string) ([]models.ObjectDescriptor, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(3*time.Second), deadline, time.Second)
		return nil, nil
	})

	client := objectstores.NewClient(store, models.BucketGCS, objectstores.ClientOptions{RequestTimeout: 3 * time.Second})
	_, err := client.ListCurrentObjects(context.Background(), "", time.Time{})
	assert.NoError(t, err)
}

func TestClient_DownloadObjects_PreservesOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().Read(gomock.Any(), "a.log").DoAndReturn(func(context.Context, string) ([]byte, error) {
		time.Sleep(20 * time.Millisecond)
		return []byte("A"), nil
	})
	store.EXPECT().Read(gomock.Any(), "b.log").Return([]byte("B"), nil)
	store.EXPECT().Read(gomock.Any(), "c.log").Return([]byte("C"), nil)

	client := objectstores.NewClient(store, models.BucketFile, objectstores.ClientOptions{MaxConcurrentDownloads: 3})
	blobs, err := client.DownloadObjects(context.Background(), []string{"a.log", "b.log", "c.log"})

	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("A"), []byte("B"), []byte("C")}, blobs)
}

func TestClient_DownloadObjects_AnyFailureFailsAll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().Read(gomock.Any(), "a.log").Return([]byte("A"), nil).AnyTimes()
	store.EXPECT().Read(gomock.Any(), "b.log").Return(nil, errors.New("503 backend error"))

	client := objectstores.NewClient(store, models.BucketFile, objectstores.ClientOptions{MaxConcurrentDownloads: 1})
	blobs, err := client.DownloadObjects(context.Background(), []string{"b.log", "a.log"})

	assert.ErrorIs(t, err, objectstores.ErrStorageUnavailable)
	assert.Nil(t, blobs)
}

func TestClient_DownloadObjects_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var inFlight, peak atomic.Int32
	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().Read(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) ([]byte, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return []byte("x"), nil
	}).Times(8)

	client := objectstores.NewClient(store, models.BucketFile, objectstores.ClientOptions{MaxConcurrentDownloads: 2})
	_, err := client.DownloadObjects(context.Background(), []string{"1", "2", "3", "4", "5", "6", "7", "8"})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestClient_DownloadEach_ReportsFailuresPerObject(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockObjectStore(ctrl)
	store.EXPECT().Read(gomock.Any(), "a.log").Return([]byte("A"), nil)
	store.EXPECT().Read(gomock.Any(), "b.log").Return(nil, errors.New("timeout"))

	client := objectstores.NewClient(store, models.BucketGCS, objectstores.ClientOptions{})
	results := client.DownloadEach(context.Background(), []string{"a.log", "b.log"})

	require.Len(t, results, 2)
	assert.Equal(t, "a.log", results[0].Name)
	assert.Equal(t, []byte("A"), results[0].Blob)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "b.log", results[1].Name)
	assert.Nil(t, results[1].Blob)
	assert.ErrorIs(t, results[1].Err, objectstores.ErrStorageUnavailable)
}
