package stopwatch

import (
	"strings"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

// DefaultName is used when a record's name is cleared.
const DefaultName = "Untitled"

// State is the run state of a record.
type State uint8

const (
	// StatePaused means elapsed time is frozen at Accumulated.
	StatePaused State = iota

	// StateRunning means elapsed time grows with the clock.
	StateRunning
)

// String returns the label shown next to a record.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "Paused"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Record is one stopwatch.
type Record struct {
	// ID is stable for the record's lifetime.
	ID string

	// Name is the user-editable label.
	Name string

	// Accumulated is the time gathered before the current run.
	// Always whole milliseconds and never negative.
	Accumulated time.Duration

	// Running reports whether the record is counting.
	Running bool

	// StartedAt is the monotonic reading at which the current run began.
	// Only meaningful while Running.
	StartedAt time.Duration
}

// New creates a paused record with preset elapsed time.
func New(id, name string, preset time.Duration) *Record {
	return &Record{
		ID:          id,
		Name:        name,
		Accumulated: wholeMillis(preset),
	}
}

// State returns the record's current state.
func (r *Record) State() State {
	if r.Running {
		return StateRunning
	}
	return StatePaused
}

// Elapsed returns the elapsed time at monotonic reading now.
func (r *Record) Elapsed(now time.Duration) time.Duration {
	if !r.Running {
		return r.Accumulated
	}
	delta := now - r.StartedAt
	if delta < 0 {
		delta = 0
	}
	return r.Accumulated + delta
}

// ElapsedMillis returns Elapsed floored to whole milliseconds.
func (r *Record) ElapsedMillis(now time.Duration) int64 {
	return r.Elapsed(now).Milliseconds()
}

// Start begins counting. It reports whether the state changed.
func (r *Record) Start(now time.Duration) bool {
	if r.Running {
		return false
	}
	r.Running = true
	r.StartedAt = now
	return true
}

// Pause freezes elapsed time. It reports whether the state changed.
func (r *Record) Pause(now time.Duration) bool {
	if !r.Running {
		return false
	}
	r.Accumulated = wholeMillis(r.Elapsed(now))
	r.Running = false
	r.StartedAt = 0
	return true
}

// Toggle starts a paused record or pauses a running one.
func (r *Record) Toggle(now time.Duration) {
	if r.Running {
		r.Pause(now)
		return
	}
	r.Start(now)
}

// Reset zeroes the record. A running record keeps running from zero.
func (r *Record) Reset(now time.Duration) {
	r.SetTime(0, now)
}

// SetTime replaces elapsed time with ms milliseconds. A running record keeps
// running from the new value.
func (r *Record) SetTime(ms int64, now time.Duration) {
	r.Accumulated = wholeMillis(time.Duration(ms) * time.Millisecond)
	if r.Running {
		r.StartedAt = now
	}
}

// SetTimeString parses raw with timefmt.Parse and applies it. On failure the
// record is left untouched and the parse error is returned.
func (r *Record) SetTimeString(raw string, now time.Duration) error {
	ms, err := timefmt.Parse(raw)
	if err != nil {
		return err
	}
	r.SetTime(ms, now)
	return nil
}

// Rename sets the name to the trimmed input, or DefaultName when empty.
func (r *Record) Rename(raw string) {
	r.Name = NormalizeName(raw)
}

// NormalizeName trims raw and substitutes DefaultName for empty input.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultName
	}
	return name
}

func wholeMillis(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Millisecond)
}
