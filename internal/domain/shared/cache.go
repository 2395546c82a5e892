package shared

import (
	"context"
	"time"
)

// Cache is a key/value store with TTL and pattern deletion.
// Values are opaque serialized payloads (JSON in practice).
//
// Implementations are expected to be safe for concurrent use. Callers treat
// every cache failure as non-fatal: a read error is a miss, a write or delete
// error is a no-op. The cache is never authoritative.
type Cache interface {
	// Get returns the value for key. The second result reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the given TTL. A zero TTL means the
	// implementation's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob-style pattern,
	// e.g. "debts:<user-id>:*".
	DeletePattern(ctx context.Context, pattern string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
