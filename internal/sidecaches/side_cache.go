package sidecaches

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"proxy-logs/internal/shared/loggers"
)

const (
	DocumentServers     = "servers.toml"
	DocumentClientIPs   = "client_ips.toml"
	DocumentStatusCodes = "status_codes.toml"

	defaultMaxWriteRetries = 3
)

// Document layouts.
type (
	// serversDocument is location -> servers.
	serversDocument map[string][]string
	// clientIPsDocument is location -> server group -> client IPs.
	clientIPsDocument map[string]map[string][]string
	// statusCodesDocument is location -> status codes, only ever grown.
	statusCodesDocument map[string][]string
)

// SideCache remembers what earlier queries saw, so that selection lists can be offered
// without touching the object store.
//
//go:generate mockgen -source=side_cache.go -destination=./mocks/side_cache_mock.go -package=mocks
type SideCache interface {
	Servers(ctx context.Context, location string) ([]string, error)
	ClientIPs(ctx context.Context, location, serverGroup string) ([]string, error)
	StatusCodes(ctx context.Context, location string) ([]string, error)

	// SaveServers replaces the server list of location. Concurrent writers race per location
	// and the last one wins.
	SaveServers(ctx context.Context, location string, servers []string) error
	// SaveClientIPs replaces the client IPs of (location, serverGroup), last writer wins.
	SaveClientIPs(ctx context.Context, location, serverGroup string, ips []string) error
	// MergeStatusCodes adds codes to the status codes of location. Codes are never removed,
	// even when writers race.
	MergeStatusCodes(ctx context.Context, location string, codes []string) error
}

type SideCacheOptions struct {
	// MaxWriteRetries is how many times a conflicting write is re-read and retried.
	MaxWriteRetries int
}

type sideCache struct {
	docs DocumentStore
	opts SideCacheOptions
}

func NewSideCache(docs DocumentStore, opts SideCacheOptions) SideCache {
	if opts.MaxWriteRetries <= 0 {
		opts.MaxWriteRetries = defaultMaxWriteRetries
	}
	return &sideCache{docs: docs, opts: opts}
}

func (c *sideCache) Servers(ctx context.Context, location string) ([]string, error) {
	var doc serversDocument
	if _, err := c.load(ctx, DocumentServers, &doc); err != nil {
		return nil, err
	}
	return doc[location], nil
}

func (c *sideCache) ClientIPs(ctx context.Context, location, serverGroup string) ([]string, error) {
	var doc clientIPsDocument
	if _, err := c.load(ctx, DocumentClientIPs, &doc); err != nil {
		return nil, err
	}
	return doc[location][serverGroup], nil
}

func (c *sideCache) StatusCodes(ctx context.Context, location string) ([]string, error) {
	var doc statusCodesDocument
	if _, err := c.load(ctx, DocumentStatusCodes, &doc); err != nil {
		return nil, err
	}
	return doc[location], nil
}

func (c *sideCache) SaveServers(ctx context.Context, location string, servers []string) error {
	servers = sortedUnique(servers)
	return c.update(ctx, DocumentServers, true, func(raw []byte) ([]byte, bool, error) {
		doc := serversDocument{}
		if err := decode(raw, &doc); err != nil {
			return nil, false, err
		}
		if slices.Equal(doc[location], servers) {
			return nil, false, nil
		}
		doc[location] = servers
		return encode(doc)
	})
}

func (c *sideCache) SaveClientIPs(ctx context.Context, location, serverGroup string, ips []string) error {
	ips = sortedUnique(ips)
	return c.update(ctx, DocumentClientIPs, true, func(raw []byte) ([]byte, bool, error) {
		doc := clientIPsDocument{}
		if err := decode(raw, &doc); err != nil {
			return nil, false, err
		}
		if doc[location] == nil {
			doc[location] = map[string][]string{}
		} else if slices.Equal(doc[location][serverGroup], ips) {
			return nil, false, nil
		}
		doc[location][serverGroup] = ips
		return encode(doc)
	})
}

func (c *sideCache) MergeStatusCodes(ctx context.Context, location string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return c.update(ctx, DocumentStatusCodes, false, func(raw []byte) ([]byte, bool, error) {
		doc := statusCodesDocument{}
		if err := decode(raw, &doc); err != nil {
			return nil, false, err
		}
		merged := sortedUnique(append(slices.Clone(doc[location]), codes...))
		if slices.Equal(doc[location], merged) {
			return nil, false, nil
		}
		doc[location] = merged
		return encode(doc)
	})
}

// load reads and decodes name into out, returning the raw content.
func (c *sideCache) load(ctx context.Context, name string, out any) ([]byte, error) {
	raw, err := c.docs.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := decode(raw, out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return raw, nil
}

// update re-reads name, applies mutate and writes the result if the document did not change
// in between. mutate reports changed=false to skip the write.
func (c *sideCache) update(ctx context.Context, name string, lastWriterWins bool, mutate func(raw []byte) ([]byte, bool, error)) error {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldDocument, name).Logger()

	for attempt := 0; attempt <= c.opts.MaxWriteRetries; attempt++ {
		raw, err := c.docs.Read(ctx, name)
		if err != nil {
			metricSideCacheWriteTotal.WithLabelValues(name, resultError).Inc()
			return err
		}
		next, changed, err := mutate(raw)
		if err != nil {
			metricSideCacheWriteTotal.WithLabelValues(name, resultError).Inc()
			return fmt.Errorf("failed to update %s: %w", name, err)
		}
		if !changed {
			metricSideCacheWriteTotal.WithLabelValues(name, resultUnchanged).Inc()
			return nil
		}

		err = c.docs.CompareAndWrite(ctx, name, raw, next)
		if err == nil {
			metricSideCacheWriteTotal.WithLabelValues(name, resultWritten).Inc()
			return nil
		}
		if !errors.Is(err, ErrWriteConflict) {
			metricSideCacheWriteTotal.WithLabelValues(name, resultError).Inc()
			return err
		}

		metricSideCacheWriteTotal.WithLabelValues(name, resultConflict).Inc()
		if lastWriterWins {
			logger.Warn().Int("attempt", attempt+1).Msg("concurrent side cache write, overwriting with this query's values")
		} else {
			logger.Debug().Int("attempt", attempt+1).Msg("concurrent side cache write, merging again")
		}
	}

	return fmt.Errorf("%w: %s still changing after %d attempts", ErrWriteConflict, name, c.opts.MaxWriteRetries+1)
}

func decode(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return toml.Unmarshal(raw, out)
}

func encode(doc any) ([]byte, bool, error) {
	next, err := toml.Marshal(doc)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

func sortedUnique(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}
