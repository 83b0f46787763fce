package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps verification records in process memory. It is the
// default tier: within one batch run, an unchanged file is read and
// hashed at most once.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a verification record from the cache
func (c *MemoryCache) Get(key string) (Record, bool) {
	if val, found := c.cache.Get(key); found {
		if rec, ok := val.(Record); ok {
			return rec, true
		}
	}
	return Record{}, false
}

// Set stores a verification record with the given TTL
func (c *MemoryCache) Set(key string, rec Record, ttl time.Duration) error {
	c.cache.Set(key, rec, ttl)
	return nil
}

// Delete removes a record from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all records from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
