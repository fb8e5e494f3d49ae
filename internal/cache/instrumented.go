package cache

import "context"

// instrumentedCache wraps a page cache with lookup, size and page-count
// metrics labelled by group.
type instrumentedCache struct {
	inner Cache
	group string
	pages *pageCountCollector
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	return &instrumentedCache{inner: inner, group: group, pages: trackPageCount(group, inner.Len)}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		LookupsTotal.WithLabelValues(c.group, resultCanceled).Inc()
		return nil, false
	}
	val, ok := c.inner.Get(ctx, key)
	if ok {
		LookupsTotal.WithLabelValues(c.group, resultHit).Inc()
	} else {
		LookupsTotal.WithLabelValues(c.group, resultMiss).Inc()
	}
	return val, ok
}

// Set stores a page body. Empty bodies are never cached.
func (c *instrumentedCache) Set(ctx context.Context, key string, value []byte) {
	if len(value) == 0 || ctx.Err() != nil {
		return
	}
	StoredBytes.WithLabelValues(c.group).Observe(float64(len(value)))
	c.inner.Set(ctx, key, value)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close stops reporting the page count and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	untrackPageCount(c.group, c.pages)
	return c.inner.Close()
}
