package suggest

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window counter per client key. Windows reset
// wholesale; a burst straddling the boundary can briefly exceed the limit,
// which is acceptable for an abuse brake.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	started time.Time
	counts  map[string]int
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	if now == nil {
		now = time.Now
	}
	return &rateLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		started: now(),
		counts:  map[string]int{},
	}
}

// Allow reports whether key may make another request in the current window.
func (r *rateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.now().Sub(r.started) >= r.window {
		r.started = r.now()
		r.counts = map[string]int{}
	}

	if r.counts[key] >= r.limit {
		return false
	}
	r.counts[key]++
	return true
}
