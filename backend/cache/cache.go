// ABOUTME: In-memory cache for computed sizing results with TTL-based expiration
// ABOUTME: Thread-safe generic cache on sync.Map with hit/miss counters and stoppable cleanup

package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache maps string keys to values of type V until their TTL elapses
type Cache[V any] struct {
	store  sync.Map
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
	now    func() time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// New creates a cache. Expired entries are swept every interval until ctx is done;
// a non-positive interval disables the sweeper and entries expire lazily on Get.
func New[V any](ctx context.Context, ttl, interval time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl: ttl,
		now: time.Now,
	}
	if interval > 0 {
		go c.startCleanup(ctx, interval)
	}
	return c
}

// TTL returns the default time-to-live
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	val, ok := c.store.Load(key)
	if !ok {
		c.misses.Add(1)
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if c.now().After(e.expiresAt) {
		c.store.Delete(key)
		c.misses.Add(1)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	c.hits.Add(1)
	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: c.now().Add(ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// GetOrCompute returns the cached value for key, or computes, stores, and returns it.
// The bool result reports whether the value came from the cache. Errors are not cached.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Len counts live entries
func (c *Cache[V]) Len() int {
	n := 0
	now := c.now()
	c.store.Range(func(_, val any) bool {
		if !now.After(val.(entry[V]).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// Stats reports entry count and hit/miss totals
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func (c *Cache[V]) sweep() {
	now := c.now()
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}

func (c *Cache[V]) startCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}
