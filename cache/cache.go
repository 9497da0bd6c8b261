// Package cache provides a basic thread-safe in-memory TTL cache.
// Callers inject an instance wherever lookups should be memoized so the
// lifetime and expiry of cached data stay visible at the call site.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// SimpleCache is a basic thread-safe in-memory cache
type SimpleCache struct {
	data map[string]cacheItem
	mu   sync.RWMutex
	now  func() time.Time
}

type cacheItem struct {
	value      interface{}
	expiryTime time.Time
}

// New creates a new cache instance
func New() *SimpleCache {
	return &SimpleCache{
		data: make(map[string]cacheItem),
		now:  time.Now,
	}
}

// SetClock overrides the cache clock, for tests
func (c *SimpleCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get retrieves a value from the cache
func (c *SimpleCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.data[key]
	if !found {
		return nil, false
	}

	if c.now().After(item.expiryTime) {
		return nil, false
	}

	return item.value, true
}

// Set adds a value to the cache with a TTL
func (c *SimpleCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheItem{
		value:      value,
		expiryTime: c.now().Add(ttl),
	}
}

// Key creates a unique cache key based on inputs
func Key(prefix string, params ...interface{}) string {
	return fmt.Sprintf("%s:%v", prefix, params)
}
