// Package cache provides the batch verification cache: verification
// records keyed by file identity, so re-verifying an unchanged tree skips
// re-reading and re-hashing every document.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Record is the cached verification outcome for one document.
type Record struct {
	Computed    string `json:"computed"`
	Stored      string `json:"stored,omitempty"`
	OK          bool   `json:"ok"`
	MarkerLines int    `json:"marker_lines,omitempty"`
}

// Cache defines the interface of a verification record store.
type Cache interface {
	Get(key string) (Record, bool)
	Set(key string, rec Record, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FileKey generates a cache key from a file's identity: path, size and
// modification time. Any content change bumps size or mtime and misses
// the cache; a hit never returns a digest for stale content unless the
// filesystem reports stale metadata.
func FileKey(path string, size int64, mtime time.Time) string {
	payload := fmt.Sprintf("%s\x00%d\x00%d", path, size, mtime.UnixNano())
	hash := sha256.Sum256([]byte(payload))
	return "claritygate:v1:" + hex.EncodeToString(hash[:])
}
