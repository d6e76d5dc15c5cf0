// Package snapshot provides the time-bounded snapshot cache used for
// perishable upstream data (weather forecasts, market prices).
//
// Every value is stored inside an envelope stamped with the time it was
// fetched from upstream. Freshness is decided by the reader: a Get with a
// max age of 3 hours and a Get with 6 hours can share the same physical
// entry. Nothing expires proactively; stale entries sit in the store until
// the next refresh replaces their scope.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/cache"
)

// Store defines the snapshot cache operations.
type Store interface {
	// Get reads the entry under key and decodes its payload into v.
	// Returns false when the key is absent or older than maxAge; staleness
	// is a miss, never an error.
	Get(ctx context.Context, key string, maxAge time.Duration, v interface{}) (bool, error)

	// Replace wipes every entry under the scope (the scope key itself and
	// all "scope:*" children) and writes the given entries, all stamped
	// with the same fetch time.
	Replace(ctx context.Context, scope string, entries map[string]interface{}) error

	// FreshKeys returns the keys matching pattern whose entries are no
	// older than maxAge.
	FreshKeys(ctx context.Context, pattern string, maxAge time.Duration) ([]string, error)

	// FetchedAt returns the fetch time of the entry under key, or the zero
	// time when the key is absent.
	FetchedAt(ctx context.Context, key string) (time.Time, error)
}

// envelope wraps a cached payload with the time it was fetched upstream.
type envelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// store implements Store on top of a cache.Client.
type store struct {
	cache cache.Client
	now   func() time.Time
}

// NewStore creates a snapshot store backed by the given cache client.
func NewStore(cacheClient cache.Client) (Store, error) {
	if cacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}
	return &store{
		cache: cacheClient,
		now:   time.Now,
	}, nil
}

// NewStoreWithClock creates a snapshot store with an injectable clock.
func NewStoreWithClock(cacheClient cache.Client, now func() time.Time) (Store, error) {
	s, err := NewStore(cacheClient)
	if err != nil {
		return nil, err
	}
	s.(*store).now = now
	return s, nil
}

// Get reads and freshness-checks the entry under key.
func (s *store) Get(ctx context.Context, key string, maxAge time.Duration, v interface{}) (bool, error) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}

	if s.now().UTC().Sub(env.FetchedAt) > maxAge {
		return false, nil
	}

	if err := json.Unmarshal(env.Payload, v); err != nil {
		return false, fmt.Errorf("failed to decode snapshot payload %s: %w", key, err)
	}
	return true, nil
}

// Replace wipes the scope and writes the new entries.
//
// The delete and the writes are separate cache commands, so a concurrent
// reader can observe a partially replaced scope. Callers tolerate that: a
// missing row within the freshness window reads as "no data available".
func (s *store) Replace(ctx context.Context, scope string, entries map[string]interface{}) error {
	if _, err := s.cache.Delete(ctx, scope); err != nil {
		return fmt.Errorf("failed to clear snapshot scope %s: %w", scope, err)
	}
	if _, err := s.cache.DeletePattern(ctx, scope+":*"); err != nil {
		return fmt.Errorf("failed to clear snapshot scope %s: %w", scope, err)
	}

	fetchedAt := s.now().UTC()
	for key, value := range entries {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
		}
		raw, err := json.Marshal(envelope{FetchedAt: fetchedAt, Payload: payload})
		if err != nil {
			return fmt.Errorf("failed to encode snapshot envelope %s: %w", key, err)
		}
		if err := s.cache.Set(ctx, key, raw, 0); err != nil {
			return fmt.Errorf("failed to write snapshot %s: %w", key, err)
		}
	}
	return nil
}

// FreshKeys scans the pattern and keeps the keys whose entries are fresh.
func (s *store) FreshKeys(ctx context.Context, pattern string, maxAge time.Duration) ([]string, error) {
	keys, err := s.cache.Keys(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots %s: %w", pattern, err)
	}

	cutoff := s.now().UTC().Add(-maxAge)
	var fresh []string
	for _, key := range keys {
		raw, err := s.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
		}
		if raw == nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if !env.FetchedAt.Before(cutoff) {
			fresh = append(fresh, key)
		}
	}
	return fresh, nil
}

// FetchedAt returns the fetch time of the entry under key.
func (s *store) FetchedAt(ctx context.Context, key string) (time.Time, error) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if raw == nil {
		return time.Time{}, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return env.FetchedAt, nil
}
