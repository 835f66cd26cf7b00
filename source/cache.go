package source

import (
	"bytes"
	"context"
	"io"

	"github.com/hupe1980/enriched/internal/cache"
)

// CachedSource keeps the contents of recently opened tables in memory.
type CachedSource struct {
	inner Source
	lru   *cache.LRU
}

// Cache wraps src with an LRU cache of at most maxBytes.
func Cache(src Source, maxBytes int64) *CachedSource {
	return &CachedSource{inner: src, lru: cache.NewLRU(maxBytes)}
}

// Open serves the table from the cache, reading it through on a miss.
func (s *CachedSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if data, ok := s.lru.Get(name); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.lru.Set(name, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Forget drops a table from the cache.
func (s *CachedSource) Forget(name string) {
	s.lru.Invalidate(func(key string) bool { return key == name })
}

// Stats returns the cache hit and miss counts.
func (s *CachedSource) Stats() (hits, misses int64) {
	return s.lru.Stats()
}
