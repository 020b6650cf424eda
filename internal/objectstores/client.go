package objectstores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"proxy-logs/internal/models"
	"proxy-logs/internal/shared/loggers"
	"proxy-logs/internal/shared/metrics"
)

const (
	defaultRequestTimeout         = 55 * time.Second
	defaultMaxConcurrentDownloads = 16

	errorCodeDownloadFailed   = "download_failed"
	errorCodeDownloadCanceled = "canceled"
)

type ClientOptions struct {
	// RequestTimeout bounds every list call and every single download.
	RequestTimeout         time.Duration
	MaxConcurrentDownloads int
}

// DownloadResult is the outcome of one download when failures are tolerated.
type DownloadResult struct {
	Name string
	Blob []byte
	Err  error
}

// Client runs the listing and download steps of a query against one opened store.
type Client struct {
	store      ObjectStore
	bucketType models.BucketType
	opts       ClientOptions
}

func NewClient(store ObjectStore, bucketType models.BucketType, opts ClientOptions) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxConcurrentDownloads <= 0 {
		opts.MaxConcurrentDownloads = defaultMaxConcurrentDownloads
	}
	return &Client{store: store, bucketType: bucketType, opts: opts}
}

// ListCurrentObjects lists prefix and keeps the non-empty objects updated after since.
func (c *Client) ListCurrentObjects(ctx context.Context, prefix string, since time.Time) ([]models.ObjectDescriptor, error) {
	listCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	objects, err := c.store.List(listCtx, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	current := make([]models.ObjectDescriptor, 0, len(objects))
	for _, obj := range objects {
		if obj.IsCurrent(since) {
			current = append(current, obj)
		}
	}

	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldBucketType, string(c.bucketType)).
		Msgf("listed %d objects under %q, %d current", len(objects), prefix, len(current))
	return current, nil
}

// DownloadObjects fetches every object concurrently and returns the blobs in the order of
// names. The first failure cancels the remaining downloads and no blob is returned.
func (c *Client) DownloadObjects(ctx context.Context, names []string) ([][]byte, error) {
	blobs := make([][]byte, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.MaxConcurrentDownloads)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			blob, err := c.download(gctx, name)
			if err != nil {
				return err
			}
			blobs[i] = blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	c.logVolume(ctx, blobs)
	return blobs, nil
}

// DownloadEach fetches every object concurrently and reports each outcome separately,
// in the order of names.
func (c *Client) DownloadEach(ctx context.Context, names []string) []DownloadResult {
	results := make([]DownloadResult, len(names))

	var g errgroup.Group
	g.SetLimit(c.opts.MaxConcurrentDownloads)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			blob, err := c.download(ctx, name)
			results[i] = DownloadResult{Name: name, Blob: blob}
			if err != nil {
				results[i].Err = fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	blobs := make([][]byte, 0, len(results))
	for _, r := range results {
		blobs = append(blobs, r.Blob)
	}
	c.logVolume(ctx, blobs)
	return results
}

func (c *Client) download(ctx context.Context, name string) ([]byte, error) {
	downloadCtx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	blob, err := c.store.Read(downloadCtx, name)
	if err != nil {
		code := errorCodeDownloadFailed
		if errors.Is(err, context.Canceled) {
			code = errorCodeDownloadCanceled
		}
		metricObjectsDownloadedTotal.WithLabelValues(string(c.bucketType), code).Inc()
		return nil, err
	}

	metricObjectsDownloadedTotal.WithLabelValues(string(c.bucketType), metrics.ValueNoError).Inc()
	metricObjectBytesDownloadedTotal.WithLabelValues(string(c.bucketType)).Add(float64(len(blob)))
	return blob, nil
}

func (c *Client) logVolume(ctx context.Context, blobs [][]byte) {
	var total uint64
	for _, b := range blobs {
		total += uint64(len(b))
	}
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldBucketType, string(c.bucketType)).
		Msgf("downloaded %d objects, %s", len(blobs), humanize.Bytes(total))
}
