package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskCache persists verification records across runs (--cache-dir), so
// repeated batch verifies of a stable tree skip hashing entirely.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a new disk cache
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Record    Record    `json:"record"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a verification record from the disk cache. A corrupt or
// expired entry is a miss, never a verification result.
func (c *DiskCache) Get(key string) (Record, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Record{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return Record{}, false
	}

	return entry.Record, true
}

// Set stores a verification record in the disk cache
func (c *DiskCache) Set(key string, rec Record, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{
		Record:    rec,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a record from the disk cache
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached records
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key. Keys carry a
// "claritygate:v1:" namespace; colons are not portable in file names.
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, strings.ReplaceAll(key, ":", "_")+".cache")
}
