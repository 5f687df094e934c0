package cache

import (
	"context"
	"time"
)

// KeyPrefix namespaces answer entries in the shared key/value backend.
const KeyPrefix = "ai_answer:"

// DefaultTTL is how long a generated answer stays servable from cache.
const DefaultTTL = time.Hour

// Store is a key/value store with per-entry expiry.
// A miss is reported as found=false with a nil error; misses are never remembered.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
