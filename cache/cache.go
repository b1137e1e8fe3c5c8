package cache

import (
	"sync"
	"time"
)

// entry pairs a value with the time it was stored. Entries are
// replace-only: a Set for an existing key installs a fresh entry
// rather than mutating the old one.
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a concurrency-safe key/value store with a fixed TTL.
// An entry older than the TTL is treated as absent and evicted lazily
// on the next lookup. With WithMaxEntries the cache additionally
// enforces a size bound using FIFO eviction: the oldest-inserted key
// goes first. Eviction order only affects hit rate, not correctness.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int // 0 = unbounded
	entries map[string]entry[V]
	// order tracks insertion order for FIFO eviction. Only maintained
	// when the cache is bounded. Overwrites keep the original position.
	order []string
	now   func() time.Time
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithMaxEntries bounds the cache to at most max entries. Before an
// insert that would exceed the bound, the oldest-inserted live entry is
// evicted. A max of 0 or less leaves the cache unbounded.
func WithMaxEntries[V any](max int) Option[V] {
	return func(c *Cache[V]) {
		if max < 0 {
			max = 0
		}
		c.max = max
	}
}

// WithClock sets the time source. Tests use this to make expiry
// deterministic. Default is time.Now.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) {
		if now == nil {
			now = time.Now
		}
		c.now = now
	}
}

// New creates a cache whose entries expire ttl after being stored.
func New[V any](ttl time.Duration, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. An expired entry counts as
// absent and is removed as a side effect.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting unconditionally. When the
// cache is bounded and full, at least one entry is evicted first.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.entries[key]
	if !exists && c.max > 0 {
		for len(c.entries) >= c.max {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	if c.max > 0 && !exists {
		c.order = append(c.order, key)
	}
}

// evictOldestLocked removes the oldest-inserted live entry. The order
// slice may hold keys already removed by lazy expiry; those are
// skipped. Caller must hold the lock.
func (c *Cache[V]) evictOldestLocked() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			return
		}
	}
	// Order bookkeeping lost track (unbounded cache resized, or all
	// tracked keys already expired). Drop an arbitrary entry.
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}

// Sweep removes up to limit expired entries and reports how many were
// removed. A limit of 0 or less sweeps the whole cache. Lookup already
// purges lazily; Sweep exists for callers that want to reclaim memory
// from keys that are never read again.
func (c *Cache[V]) Sweep(limit int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
			removed++
			if limit > 0 && removed >= limit {
				break
			}
		}
	}
	return removed
}

// Len reports the number of entries currently stored, including any
// that have expired but not yet been purged.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
