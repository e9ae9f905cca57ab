package utils

import (
	"fmt"
	"time"
)

// Timer is a wall-clock timer for coarse profiling. The clock starts
// when the timer is created; Stop records elapsed time, Interval
// records it and immediately restarts the clock.
type Timer struct {
	start   time.Time
	elapsed time.Duration
}

// NewTimer starts a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop records the time elapsed since the clock started
func (t *Timer) Stop() *Timer {
	t.elapsed = time.Since(t.start)
	return t
}

// Interval records elapsed time and restarts the clock
func (t *Timer) Interval() *Timer {
	now := time.Now()
	t.elapsed = now.Sub(t.start)
	t.start = now
	return t
}

// Elapsed returns the last recorded duration
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// String formats the last recorded duration in seconds
func (t *Timer) String() string {
	return fmt.Sprintf("%.4fs", t.elapsed.Seconds())
}
