package gold

import (
	"sync"
	"time"
)

// Cache is a process-wide TTL cache for computed gold-data results.
// Expiry is checked at read time; there is no eviction and no size bound.
// Concurrent fills on the same key are last-write-wins: the mutex protects
// map integrity only and deliberately does not deduplicate overlapping
// upstream fetches.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	timestamp time.Time
	value     interface{}
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key if it was stored less than ttl ago.
// A miss covers both "never set" and "set but expired".
func (c *Cache) Get(key string, ttl time.Duration) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.timestamp) >= ttl {
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with the current timestamp
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		timestamp: time.Now(),
		value:     value,
	}
}
