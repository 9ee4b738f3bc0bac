// Package perf tracks frame rate and per-frame latency over a sliding window.
package perf

import (
	"sync"
	"time"
)

// DefaultWindowSize is the number of frame timestamps kept for the FPS
// estimate.
const DefaultWindowSize = 30

// Tracker estimates throughput from recent frame timestamps. It is safe for
// concurrent use; the pipeline records frames while the HTTP API reads FPS.
type Tracker struct {
	mu            sync.Mutex
	frameTimes    []time.Time
	windowSize    int
	lastLatencyMs float64
}

// NewTracker creates a Tracker keeping the given number of recent frames.
// Sizes below 2 fall back to DefaultWindowSize.
func NewTracker(windowSize int) *Tracker {
	if windowSize < 2 {
		windowSize = DefaultWindowSize
	}
	return &Tracker{
		frameTimes: make([]time.Time, 0, windowSize),
		windowSize: windowSize,
	}
}

// RecordFrame notes that a frame finished processing at now.
func (t *Tracker) RecordFrame(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frameTimes = append(t.frameTimes, now)
	if len(t.frameTimes) > t.windowSize {
		copy(t.frameTimes, t.frameTimes[1:])
		t.frameTimes = t.frameTimes[:t.windowSize]
	}
}

// RecordLatency notes how long the frame that started at start took.
func (t *Tracker) RecordLatency(start, end time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastLatencyMs = float64(end.Sub(start)) / float64(time.Millisecond)
}

// FPS returns the frame rate over the window, or 0 with fewer than two
// recorded frames.
func (t *Tracker) FPS() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.frameTimes)
	if n < 2 {
		return 0
	}
	elapsed := t.frameTimes[n-1].Sub(t.frameTimes[0]).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(n-1) / elapsed
}

// LatencyMs returns the most recently recorded frame latency in
// milliseconds.
func (t *Tracker) LatencyMs() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastLatencyMs
}

// Reset discards all recorded frames.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frameTimes = t.frameTimes[:0]
	t.lastLatencyMs = 0
}
