// Package cache provides process-local TTL caches for resolver and game log lookups.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/yourusername/pickscore/internal/metrics"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTLCache maps a key to a value and the time it was stored. Entries older than the
// TTL, as measured by the cache's Clock, are treated as absent on read. The backing
// go-cache store evicts them in the background.
type TTLCache[V any] struct {
	name      string
	store     *gocache.Cache
	ttl       time.Duration
	clock     Clock
	flight    singleflight.Group
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// Option configures a TTLCache
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock overrides the clock used for freshness checks
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// New creates a cache whose entries live for ttl
func New[V any](name string, ttl time.Duration, opts ...Option) *TTLCache[V] {
	o := options{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &TTLCache[V]{
		name:  name,
		store: gocache.New(ttl, ttl*2),
		ttl:   ttl,
		clock: o.clock,
	}
}

// Get returns the cached value for key if it is younger than the TTL
func (c *TTLCache[V]) Get(_ context.Context, key string) (V, bool) {
	value, ok := c.lookup(key)
	if ok {
		c.recordHit()
	} else {
		c.recordMiss()
	}
	return value, ok
}

// lookup reads key without touching statistics. Stale entries are removed.
func (c *TTLCache[V]) lookup(key string) (V, bool) {
	var zero V

	item, found := c.store.Get(key)
	if !found {
		return zero, false
	}

	e, ok := item.(entry[V])
	if !ok || c.clock.Now().Sub(e.insertedAt) >= c.ttl {
		c.store.Delete(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, stamped with the clock's current time
func (c *TTLCache[V]) Set(_ context.Context, key string, value V) {
	c.store.Set(key, entry[V]{value: value, insertedAt: c.clock.Now()}, c.ttl)
}

// GetOrLoad returns the cached value or calls loader and caches its result.
// Concurrent misses on one key share a single loader call. Loader errors are
// returned as-is and nothing is cached.
func (c *TTLCache[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("cache %s: loader is required", c.name)
	}

	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	shared, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while this one waited
		if cached, ok := c.lookup(key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		c.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	value, _ := shared.(V)
	return value, nil
}

// Delete removes key
func (c *TTLCache[V]) Delete(key string) {
	c.store.Delete(key)
}

// Clear flushes the entire cache and resets statistics
func (c *TTLCache[V]) Clear() {
	c.store.Flush()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hitCount = 0
	c.missCount = 0
}

// TTL returns the configured time-to-live
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}

// ItemCount returns the number of stored entries, including stale ones not yet evicted
func (c *TTLCache[V]) ItemCount() int {
	return c.store.ItemCount()
}

// Stats returns cache statistics
func (c *TTLCache[V]) Stats() (hits, misses uint64, ratio float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (c *TTLCache[V]) recordHit() {
	c.mu.Lock()
	c.hitCount++
	c.mu.Unlock()
	metrics.RecordCacheLookup(c.name, true)
}

func (c *TTLCache[V]) recordMiss() {
	c.mu.Lock()
	c.missCount++
	c.mu.Unlock()
	metrics.RecordCacheLookup(c.name, false)
}
