package exchange

import (
	"context"
	"sync"
	"time"
)

// Binance rejects requests whose timestamp drifts too far from server time.
// Refreshing at most once per second bounds the extra round-trips.
const timeSyncInterval = time.Second

// ServerClock caches the offset between local time and one API surface's
// server time. Sync failures are non-fatal: the last known offset (zero
// before the first success) is reused and the next call retries.
type ServerClock struct {
	mu       sync.Mutex
	now      func() time.Time
	fetch    func(ctx context.Context) (int64, error)
	offset   int64
	synced   bool
	lastSync time.Time
}

// NewServerClock builds a clock around fetch, which must return the surface's
// server time in epoch milliseconds.
func NewServerClock(fetch func(ctx context.Context) (int64, error)) *ServerClock {
	return &ServerClock{now: time.Now, fetch: fetch}
}

// Timestamp returns the current time in epoch milliseconds adjusted by the
// cached offset, refreshing the offset if it is unset or stale.
func (c *ServerClock) Timestamp(ctx context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.synced || now.Sub(c.lastSync) > timeSyncInterval {
		if serverTime, err := c.fetch(ctx); err == nil {
			c.offset = serverTime - now.UnixMilli()
			c.synced = true
			c.lastSync = now
		}
	}
	return c.now().UnixMilli() + c.offset
}
