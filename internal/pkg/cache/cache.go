// Package cache provides a small TTL-bounded LRU used to memoize repeated
// assessments of identical inputs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMaxEntries = 256
	defaultTTL        = 5 * time.Minute
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is an LRU with a per-entry freshness window. Safe for concurrent use.
type Cache[V any] struct {
	entries *lru.Cache[string, entry[V]]
	ttl     time.Duration
}

// New builds a cache holding at most maxEntries values, each valid for ttl.
// Non-positive arguments fall back to the package defaults.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	// lru.New errors only on a non-positive size, which is guarded above.
	entries, _ := lru.New[string, entry[V]](maxEntries)
	return &Cache[V]{entries: entries, ttl: ttl}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		// Expired entries are evicted on sight to keep LRU bookkeeping clean.
		c.entries.Remove(key)
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Add(key string, value V) {
	c.entries.Add(key, entry[V]{value: value, storedAt: time.Now()})
}

func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Key builds a deterministic cache key from the given parts. Parts are
// NUL-separated before hashing so adjacent parts cannot collide.
func Key(parts ...string) string {
	h := sha256.New()
	for i, part := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
