// Package cache defines the cache client interface.
package cache

import (
	"context"
	"time"
)

// Client is a higher-level cache client that wraps the Cache interface.
type Client interface {
	// GetCache returns the underlying Cache implementation.
	GetCache() Cache

	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes all keys matching the given pattern.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Keys returns all keys matching the given pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping checks if the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache client connection.
	Close() error
}
