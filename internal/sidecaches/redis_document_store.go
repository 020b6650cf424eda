package sidecaches

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

const (
	redisMaxIdle     = 4
	redisIdleTimeout = 5 * time.Minute
)

// redisDocumentStore keeps documents as string keys, shared by every query process
// pointing at the same server. CompareAndWrite is an optimistic WATCH/MULTI/EXEC.
type redisDocumentStore struct {
	pool      *redis.Pool
	keyPrefix string
}

// NewRedisPool dials addr lazily.
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     redisMaxIdle,
		IdleTimeout: redisIdleTimeout,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", addr)
		},
	}
}

func NewRedisDocumentStore(pool *redis.Pool, keyPrefix string) DocumentStore {
	return &redisDocumentStore{pool: pool, keyPrefix: keyPrefix}
}

func (s *redisDocumentStore) Read(ctx context.Context, name string) ([]byte, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", s.key(name)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read document %q: %w", name, err)
	}
	return data, nil
}

func (s *redisDocumentStore) CompareAndWrite(ctx context.Context, name string, expected, next []byte) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	key := s.key(name)
	if _, err := redis.DoContext(conn, ctx, "WATCH", key); err != nil {
		return fmt.Errorf("failed to watch document %q: %w", name, err)
	}

	current, err := redis.Bytes(redis.DoContext(conn, ctx, "GET", key))
	if err != nil && !errors.Is(err, redis.ErrNil) {
		_, _ = redis.DoContext(conn, ctx, "UNWATCH")
		return fmt.Errorf("failed to read document %q: %w", name, err)
	}
	if !bytes.Equal(current, expected) {
		_, _ = redis.DoContext(conn, ctx, "UNWATCH")
		return fmt.Errorf("%w: %s", ErrWriteConflict, name)
	}

	if err := conn.Send("MULTI"); err != nil {
		return fmt.Errorf("failed to start transaction for %q: %w", name, err)
	}
	if err := conn.Send("SET", key, next); err != nil {
		return fmt.Errorf("failed to queue write for %q: %w", name, err)
	}
	// EXEC replies nil when the watched key was modified by another client.
	if _, err := redis.Values(redis.DoContext(conn, ctx, "EXEC")); err != nil {
		if errors.Is(err, redis.ErrNil) {
			return fmt.Errorf("%w: %s", ErrWriteConflict, name)
		}
		return fmt.Errorf("failed to write document %q: %w", name, err)
	}
	return nil
}

func (s *redisDocumentStore) key(name string) string {
	return s.keyPrefix + name
}
