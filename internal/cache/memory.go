package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds generated letters in process memory with
// per-entry TTL. Expired letters are swept by the cleanup interval;
// there is no explicit eviction because letter keys are prompt
// hashes and never collide across claims.
type MemoryCache struct {
	letters *gocache.Cache
}

// NewMemoryCache creates a letter cache. TTL bounds how long a
// letter is reused before the generator is consulted again.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		letters: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached letter for a prompt key, if present
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.letters.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

// Set stores a letter under its prompt key
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.letters.Set(key, value, ttl)
	return nil
}
