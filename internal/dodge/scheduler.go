package dodge

import (
	"sync"
	"time"
)

// Scheduler runs a callback at the host's next frame boundary.
type Scheduler interface {
	Schedule(fn func()) FrameHandle
}

// FrameHandle cancels a scheduled callback. Cancel after the callback has
// run, or twice, is a no-op.
type FrameHandle interface {
	Cancel()
}

// FrameQueue holds at most one pending callback until the host fires it.
// Hosts with their own frame clock (a Bubble Tea tick, a test loop) call Fire
// once per frame.
type FrameQueue struct {
	mu      sync.Mutex
	pending func()
	gen     uint64
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule replaces any pending callback with fn.
func (q *FrameQueue) Schedule(fn func()) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	q.pending = fn
	return queueHandle{q: q, gen: q.gen}
}

// Fire runs the pending callback, if any, and reports whether one ran.
// The callback may schedule the next frame.
func (q *FrameQueue) Fire() bool {
	q.mu.Lock()
	fn := q.pending
	q.pending = nil
	q.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a callback is waiting to be fired.
func (q *FrameQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending != nil
}

type queueHandle struct {
	q   *FrameQueue
	gen uint64
}

func (h queueHandle) Cancel() {
	h.q.mu.Lock()
	defer h.q.mu.Unlock()
	if h.q.gen == h.gen {
		h.q.pending = nil
	}
}

// TickerScheduler runs callbacks on a timer at a fixed frame rate.
// Callbacks run on timer goroutines.
type TickerScheduler struct {
	interval time.Duration
}

// NewTickerScheduler creates a scheduler for the given frames per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

// Interval returns the delay between frames.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Schedule runs fn after one frame interval.
func (s *TickerScheduler) Schedule(fn func()) FrameHandle {
	return timerHandle{t: time.AfterFunc(s.interval, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() {
	h.t.Stop()
}
