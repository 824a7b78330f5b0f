package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache[string], *time.Time) {
	t.Helper()
	c := New[string](context.Background(), ttl, 0)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, time.Second)

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c, now := newTestCache(t, 100*time.Millisecond)

	c.Set("key1", "value1")

	// Should exist immediately
	if _, found := c.Get("key1"); !found {
		t.Error("Expected to find key1 immediately")
	}

	*now = now.Add(150 * time.Millisecond)

	if _, found := c.Get("key1"); found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c, now := newTestCache(t, time.Second)

	c.SetWithTTL("short", "v", 10*time.Millisecond)
	c.Set("long", "v")

	*now = now.Add(500 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected short-lived key to expire")
	}
	if _, found := c.Get("long"); !found {
		t.Error("Expected default TTL key to survive")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, time.Second)

	c.Set("key1", "value1")
	c.Clear("key1")

	if _, found := c.Get("key1"); found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	c, _ := newTestCache(t, time.Second)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "computed", nil
	}

	v, cached, err := c.GetOrCompute("k", compute)
	if err != nil || v != "computed" || cached {
		t.Errorf("First call: expected computed/false/nil, got %s/%v/%v", v, cached, err)
	}

	v, cached, err = c.GetOrCompute("k", compute)
	if err != nil || v != "computed" || !cached {
		t.Errorf("Second call: expected computed/true/nil, got %s/%v/%v", v, cached, err)
	}
	if calls != 1 {
		t.Errorf("Expected compute to run once, ran %d times", calls)
	}

	_, _, err = c.GetOrCompute("bad", func() (string, error) { return "", errors.New("boom") })
	if err == nil {
		t.Error("Expected compute error to propagate")
	}
	if _, found := c.Get("bad"); found {
		t.Error("Expected errors not to be cached")
	}
}

func TestCache_Stats(t *testing.T) {
	c, now := newTestCache(t, time.Second)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", stats.Entries)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}

	*now = now.Add(2 * time.Second)
	if c.Len() != 0 {
		t.Errorf("Expected expired entries not to count, got %d", c.Len())
	}
	c.sweep()
	count := 0
	c.store.Range(func(_, _ any) bool { count++; return true })
	if count != 0 {
		t.Errorf("Expected sweep to remove expired entries, %d left", count)
	}
}

func TestCache_CleanupStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New[int](ctx, time.Minute, time.Millisecond)
	c.Set("x", 1)
	cancel()

	// The sweeper goroutine exits; the cache itself stays usable
	c.Set("y", 2)
	if v, ok := c.Get("y"); !ok || v != 2 {
		t.Errorf("Expected cache to work after cancel, got %d/%v", v, ok)
	}
}
