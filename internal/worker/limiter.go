package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles batch file processing per tree root. Hashing local
// files needs no throttle, but batch runs over network filesystems can
// saturate the mount; a per-root limiter caps read pressure where it
// matters without slowing other roots.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter. filesPerSecond <= 0 means unlimited.
func NewLimiter(filesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 16
	}

	limit := rate.Limit(filesPerSecond)
	if filesPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until the root's rate limit admits one more file.
func (l *Limiter) Wait(ctx context.Context, root string) error {
	return l.getLimiter(root).Wait(ctx)
}

// Allow checks whether a file may be processed without waiting.
func (l *Limiter) Allow(root string) bool {
	return l.getLimiter(root).Allow()
}

// getLimiter returns the rate limiter for a root
func (l *Limiter) getLimiter(root string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[root]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[root]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[root] = limiter

	return limiter
}
