package progress

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestNewHeartbeat_DefaultInterval(t *testing.T) {
	h := NewHeartbeat(0)
	if h.Interval() != DefaultInterval {
		t.Errorf("Expected interval %v, got %v", DefaultInterval, h.Interval())
	}
}

func TestHeartbeat_FirstCheckFires(t *testing.T) {
	clock := newFakeClock()
	h := NewHeartbeat(10 * time.Second).WithClock(clock.Now)

	if !h.CheckAndReset() {
		t.Error("CheckAndReset() should return true on first call")
	}
}

func TestHeartbeat_CheckAndReset(t *testing.T) {
	clock := newFakeClock()
	h := NewHeartbeat(10 * time.Second).WithClock(clock.Now)

	if !h.CheckAndReset() {
		t.Fatal("CheckAndReset() should return true on first call")
	}
	if h.CheckAndReset() {
		t.Error("CheckAndReset() should return false immediately after a true result")
	}

	clock.Advance(9 * time.Second)
	if h.CheckAndReset() {
		t.Error("CheckAndReset() should return false before the interval elapses")
	}

	clock.Advance(1 * time.Second)
	if !h.CheckAndReset() {
		t.Error("CheckAndReset() should return true once the interval elapses")
	}
	if h.CheckAndReset() {
		t.Error("CheckAndReset() should return false after reset")
	}
}

func TestHeartbeat_Reset(t *testing.T) {
	clock := newFakeClock()
	h := NewHeartbeat(10 * time.Second).WithClock(clock.Now)

	h.Reset()
	if h.CheckAndReset() {
		t.Error("CheckAndReset() should return false right after Reset()")
	}

	clock.Advance(8 * time.Second)
	h.Reset()
	clock.Advance(8 * time.Second)
	if h.CheckAndReset() {
		t.Error("Reset() should postpone the next heartbeat")
	}

	clock.Advance(2 * time.Second)
	if !h.CheckAndReset() {
		t.Error("CheckAndReset() should return true after a full interval since Reset()")
	}
}

func TestHeartbeat_Concurrent(t *testing.T) {
	clock := newFakeClock()
	h := NewHeartbeat(time.Second).WithClock(clock.Now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	fired := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h.CheckAndReset() {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fired != 1 {
		t.Errorf("Expected exactly 1 heartbeat, got %d", fired)
	}
}
