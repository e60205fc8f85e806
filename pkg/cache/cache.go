package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer. It lets the
// repositories stay independent of the Redis client and lets tests swap in an
// in-memory implementation.
type Cache interface {
	// Get reads the value stored under key into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
