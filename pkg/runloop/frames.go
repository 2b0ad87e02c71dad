package runloop

import (
	"sync"
	"time"
)

// QueuedFrames holds frame requests until they are fired explicitly.
type QueuedFrames struct {
	next    FrameID
	pending map[FrameID]func()
	order   []FrameID
}

// NewQueuedFrames creates an empty queue.
func NewQueuedFrames() *QueuedFrames {
	return &QueuedFrames{pending: make(map[FrameID]func())}
}

// RequestFrame queues cb.
func (q *QueuedFrames) RequestFrame(cb func()) FrameID {
	q.next++
	q.pending[q.next] = cb
	q.order = append(q.order, q.next)
	return q.next
}

// CancelFrame removes a queued request.
func (q *QueuedFrames) CancelFrame(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of queued requests.
func (q *QueuedFrames) Pending() int {
	return len(q.pending)
}

// Fire runs the request with the given id. It reports whether the request
// was still queued.
func (q *QueuedFrames) Fire(id FrameID) bool {
	cb, ok := q.pending[id]
	if !ok {
		return false
	}
	delete(q.pending, id)
	cb()
	return true
}

// Step fires every request queued before the call, in request order.
// Requests made by the callbacks wait for the next Step. It returns the
// number of callbacks run.
func (q *QueuedFrames) Step() int {
	batch := q.order
	q.order = nil

	fired := 0
	for _, id := range batch {
		if q.Fire(id) {
			fired++
		}
	}
	return fired
}

// Executor runs functions in the engine's execution domain.
type Executor interface {
	Do(fn func())
}

// Serial is a mutex-based Executor: Do runs fn while holding the lock.
// The zero value is ready to use.
type Serial struct {
	mu sync.Mutex
}

// Do runs fn exclusively.
func (s *Serial) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// DefaultInterval is the TimerFrames period when none is configured.
const DefaultInterval = 100 * time.Millisecond

// TimerFrames fires each request once after a fixed interval.
// Callbacks run through exec; CancelFrame must be called from inside the
// same execution domain for cancellation to be race-free.
type TimerFrames struct {
	interval time.Duration
	exec     Executor

	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]*time.Timer
}

// NewTimerFrames creates a timer-driven frame source.
func NewTimerFrames(interval time.Duration, exec Executor) *TimerFrames {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TimerFrames{
		interval: interval,
		exec:     exec,
		pending:  make(map[FrameID]*time.Timer),
	}
}

// RequestFrame schedules cb after the interval.
func (t *TimerFrames) RequestFrame(cb func()) FrameID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	id := t.next
	t.pending[id] = time.AfterFunc(t.interval, func() {
		t.exec.Do(func() {
			if t.take(id) {
				cb()
			}
		})
	})
	return id
}

// CancelFrame stops a pending request.
func (t *TimerFrames) CancelFrame(id FrameID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.pending[id]; ok {
		timer.Stop()
		delete(t.pending, id)
	}
}

// Pending returns the number of outstanding requests.
func (t *TimerFrames) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// take removes id and reports whether it was still pending.
func (t *TimerFrames) take(id FrameID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

var (
	_ FrameSource = (*QueuedFrames)(nil)
	_ FrameSource = (*TimerFrames)(nil)
	_ Executor    = (*Serial)(nil)
)
