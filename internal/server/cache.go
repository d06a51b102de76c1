package server

import (
	"sync"
	"time"
)

// RefreshThrottle skips inventory refreshes that follow a successful one
// within the TTL, so bursts of tool calls share one window-server round trip.
type RefreshThrottle struct {
	mu   sync.Mutex
	ttl  time.Duration
	last time.Time
	now  func() time.Time
}

// NewRefreshThrottle creates a throttle. A ttl of 0 refreshes on every call.
func NewRefreshThrottle(ttl time.Duration) *RefreshThrottle {
	return &RefreshThrottle{ttl: ttl, now: time.Now}
}

// Ensure runs refresh unless the last successful refresh is younger than the
// TTL. A failed refresh leaves the throttle expired.
// The caller must hold the engine mutex.
func (t *RefreshThrottle) Ensure(refresh func() error) error {
	t.mu.Lock()
	if t.ttl > 0 && !t.last.IsZero() && t.now().Sub(t.last) < t.ttl {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := refresh(); err != nil {
		t.Invalidate()
		return err
	}

	t.mu.Lock()
	t.last = t.now()
	t.mu.Unlock()
	return nil
}

// Invalidate forces the next Ensure to refresh.
func (t *RefreshThrottle) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = time.Time{}
}
