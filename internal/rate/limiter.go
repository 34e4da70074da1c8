// Package rate is a fixed-window request limiter keyed by caller.
package rate

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// Window allows up to limit calls per key in each window. A non-positive
// limit disables limiting.
type Window struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewWindow(limit int, window time.Duration, now func() time.Time) *Window {
	if now == nil {
		now = time.Now
	}
	return &Window{limit: limit, window: window, now: now, buckets: make(map[string]*bucket)}
}

// Allow records a call for key. When refused, the duration is how long
// until the window resets.
func (w *Window) Allow(key string) (bool, time.Duration) {
	if w.limit <= 0 {
		return true, 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	b, ok := w.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(w.window)}
		w.buckets[key] = b
	}
	if b.count >= w.limit {
		return false, b.resetAt.Sub(now)
	}
	b.count++
	return true, 0
}
