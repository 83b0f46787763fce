package cache

import "time"

// LayeredCache pairs the memory tier with a disk tier. Records found on
// disk are promoted to memory, so a batch run over a persistent cache
// directory pays each disk read once.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get retrieves a record, checking memory first, then disk
func (c *LayeredCache) Get(key string) (Record, bool) {
	if rec, found := c.memory.Get(key); found {
		return rec, true
	}

	if rec, found := c.disk.Get(key); found {
		// Promote at the memory tier's default TTL
		_ = c.memory.Set(key, rec, 0)
		return rec, true
	}

	return Record{}, false
}

// Set stores a record in both tiers
func (c *LayeredCache) Set(key string, rec Record, ttl time.Duration) error {
	if err := c.memory.Set(key, rec, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, rec, ttl)
}

// Delete removes a record from both tiers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all records from both tiers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
