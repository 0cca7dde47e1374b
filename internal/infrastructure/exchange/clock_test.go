package exchange

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTimeSource struct {
	now        time.Time
	serverTime int64
	fetchErr   error
	fetchCount int
}

func (f *fakeTimeSource) clock() *ServerClock {
	c := NewServerClock(func(ctx context.Context) (int64, error) {
		f.fetchCount++
		if f.fetchErr != nil {
			return 0, f.fetchErr
		}
		return f.serverTime, nil
	})
	c.now = func() time.Time { return f.now }
	return c
}

func TestServerClockSyncCadence(t *testing.T) {
	src := &fakeTimeSource{
		now:        time.UnixMilli(1_000_000),
		serverTime: 1_000_500, // server 500ms ahead
	}
	c := src.clock()

	// First call with no prior offset always fetches.
	ts := c.Timestamp(context.Background())
	if src.fetchCount != 1 {
		t.Fatalf("first call: fetchCount = %d, want 1", src.fetchCount)
	}
	if ts != 1_000_500 {
		t.Errorf("Timestamp() = %d, want 1000500", ts)
	}

	// Second call within 1000ms never fetches again.
	src.now = src.now.Add(900 * time.Millisecond)
	ts = c.Timestamp(context.Background())
	if src.fetchCount != 1 {
		t.Errorf("call within window: fetchCount = %d, want 1", src.fetchCount)
	}
	if ts != 1_000_900+500 {
		t.Errorf("Timestamp() = %d, want %d", ts, 1_000_900+500)
	}

	// A call after the window triggers exactly one more fetch.
	src.now = src.now.Add(200 * time.Millisecond)
	src.serverTime = src.now.UnixMilli() + 700
	c.Timestamp(context.Background())
	if src.fetchCount != 2 {
		t.Errorf("call past window: fetchCount = %d, want 2", src.fetchCount)
	}
}

func TestServerClockFetchFailure(t *testing.T) {
	src := &fakeTimeSource{
		now:      time.UnixMilli(1_000_000),
		fetchErr: errors.New("time service down"),
	}
	c := src.clock()

	// Failure before any sync: zero offset, local time returned.
	if ts := c.Timestamp(context.Background()); ts != 1_000_000 {
		t.Errorf("Timestamp() = %d, want local time", ts)
	}

	// lastSync was not updated, so the very next call retries.
	c.Timestamp(context.Background())
	if src.fetchCount != 2 {
		t.Errorf("fetchCount = %d, want 2 (retry after failure)", src.fetchCount)
	}

	// Recovery picks up the real offset.
	src.fetchErr = nil
	src.serverTime = 1_000_250
	if ts := c.Timestamp(context.Background()); ts != 1_000_250 {
		t.Errorf("Timestamp() after recovery = %d, want 1000250", ts)
	}

	// A later failure reuses the cached offset instead of resetting it.
	src.fetchErr = errors.New("down again")
	src.now = src.now.Add(2 * time.Second)
	want := src.now.UnixMilli() + 250
	if ts := c.Timestamp(context.Background()); ts != want {
		t.Errorf("Timestamp() with stale offset = %d, want %d", ts, want)
	}
}
