package cache

import "context"

// EvictCallback is called when an entry is evicted from the cache.
// Redis reports evictions with a nil value.
type EvictCallback func(key string, value []byte)

// Logger receives errors from backends that can fail at runtime.
type Logger interface {
	Error(msg string, err error)
}

// Cache stores fetched page bodies keyed by URL. Entries expire after the
// configured TTL and the least recently used entry is dropped once Size is reached.
type Cache interface {
	// Get returns the cached body and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key string, value []byte)

	// Len returns the number of live entries. It is read at metrics scrape time.
	Len() int

	// Close releases connections held by the backend.
	Close() error
}
