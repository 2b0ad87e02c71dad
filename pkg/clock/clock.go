// Package clock provides the monotonic time source used to measure
// stopwatch intervals.
//
// Readings are durations since an arbitrary epoch and are only meaningful
// relative to each other. They never go backwards, even when the system
// wall clock is adjusted.
package clock

import (
	"sync"
	"time"
)

// Clock returns monotonic readings.
type Clock interface {
	Now() time.Duration
}

// Monotonic reads the process monotonic clock.
type Monotonic struct {
	base time.Time
}

// NewMonotonic creates a clock whose epoch is the moment of creation.
func NewMonotonic() *Monotonic {
	return &Monotonic{base: time.Now()}
}

// Now returns the time elapsed since the clock was created.
// time.Since uses the monotonic reading carried by base.
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.base)
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// Set moves the clock to t if t is not earlier than the current reading.
func (m *Manual) Set(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t > m.now {
		m.now = t
	}
}

var (
	_ Clock = (*Monotonic)(nil)
	_ Clock = (*Manual)(nil)
)
