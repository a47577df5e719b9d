package cache

import (
	"context"
	"time"
)

// Store is a byte-level key-value store with per-entry TTL.
type Store interface {
	// Get returns the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores value under key for at most ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close()
}
