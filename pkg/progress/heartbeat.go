package progress

import (
	"sync"
	"time"
)

// DefaultInterval 默认心跳间隔
const DefaultInterval = 10 * time.Second

// Heartbeat 节流闸门：距离上次重置超过间隔时才允许输出进度
type Heartbeat struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	mu       sync.Mutex
}

func NewHeartbeat(interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Heartbeat{
		interval: interval,
		now:      time.Now,
	}
}

// WithClock 替换时钟，测试使用
func (h *Heartbeat) WithClock(now func() time.Time) *Heartbeat {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
	return h
}

// Interval 返回心跳间隔
func (h *Heartbeat) Interval() time.Duration {
	return h.interval
}

// CheckAndReset 间隔已到时重置时间并返回 true，否则返回 false
func (h *Heartbeat) CheckAndReset() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if now.Sub(h.last) >= h.interval {
		h.last = now
		return true
	}
	return false
}

// Reset 无条件重置时间，在输出其他进度信息后调用
func (h *Heartbeat) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = h.now()
}
