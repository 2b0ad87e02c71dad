package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

const ms = time.Millisecond

func TestNew(t *testing.T) {
	t.Run("FloorsPreset", func(t *testing.T) {
		r := New("a", "A", 1500*time.Microsecond)
		if r.Accumulated != 1*ms {
			t.Errorf("Accumulated = %v, want 1ms", r.Accumulated)
		}
		if r.State() != StatePaused {
			t.Errorf("State() = %v, want Paused", r.State())
		}
	})

	t.Run("ClampsNegative", func(t *testing.T) {
		r := New("a", "A", -time.Second)
		if r.Accumulated != 0 {
			t.Errorf("Accumulated = %v, want 0", r.Accumulated)
		}
	})
}

func TestElapsed(t *testing.T) {
	r := New("a", "A", 2*time.Second)
	if got := r.Elapsed(time.Hour); got != 2*time.Second {
		t.Errorf("paused Elapsed() = %v, want 2s", got)
	}

	r.Start(10 * time.Second)
	if got := r.Elapsed(13 * time.Second); got != 5*time.Second {
		t.Errorf("running Elapsed() = %v, want 5s", got)
	}

	// A reading before the anchor never subtracts time.
	if got := r.Elapsed(9 * time.Second); got != 2*time.Second {
		t.Errorf("Elapsed() before anchor = %v, want 2s", got)
	}

	if got := r.ElapsedMillis(13*time.Second + 1500*time.Microsecond); got != 5001 {
		t.Errorf("ElapsedMillis() = %d, want 5001", got)
	}
}

func TestStartPause(t *testing.T) {
	r := New("a", "A", 0)

	if !r.Start(time.Second) {
		t.Fatal("Start() on paused record returned false")
	}
	if r.Start(5 * time.Second) {
		t.Error("Start() on running record returned true")
	}
	if r.StartedAt != time.Second {
		t.Errorf("second Start() re-anchored to %v", r.StartedAt)
	}

	if !r.Pause(4 * time.Second) {
		t.Fatal("Pause() on running record returned false")
	}
	if r.Accumulated != 3*time.Second {
		t.Errorf("Accumulated = %v, want 3s", r.Accumulated)
	}
	if r.Pause(10 * time.Second) {
		t.Error("Pause() on paused record returned true")
	}
	if r.Accumulated != 3*time.Second {
		t.Errorf("second Pause() changed Accumulated to %v", r.Accumulated)
	}
}

func TestStartThenImmediatePauseKeepsElapsed(t *testing.T) {
	r := New("a", "A", 42*time.Second)
	now := 7 * time.Second
	before := r.Elapsed(now)

	r.Start(now)
	r.Pause(now)

	if got := r.Elapsed(now); got != before {
		t.Errorf("Elapsed() = %v after start/pause, want %v", got, before)
	}
}

func TestPauseFloorsToMillis(t *testing.T) {
	r := New("a", "A", 0)
	r.Start(0)
	r.Pause(1234567 * time.Microsecond)
	if r.Accumulated != 1234*ms {
		t.Errorf("Accumulated = %v, want 1.234s", r.Accumulated)
	}
}

func TestToggle(t *testing.T) {
	r := New("a", "A", 0)
	r.Toggle(0)
	if !r.Running {
		t.Fatal("Toggle() did not start")
	}
	r.Toggle(2 * time.Second)
	if r.Running || r.Accumulated != 2*time.Second {
		t.Errorf("Toggle() = running %v accumulated %v, want paused at 2s", r.Running, r.Accumulated)
	}
}

func TestReset(t *testing.T) {
	t.Run("Paused", func(t *testing.T) {
		r := New("a", "A", time.Minute)
		r.Reset(time.Hour)
		if r.Running || r.Elapsed(2*time.Hour) != 0 {
			t.Errorf("Reset() paused record: running %v elapsed %v", r.Running, r.Elapsed(2*time.Hour))
		}
	})

	t.Run("RunningKeepsRunning", func(t *testing.T) {
		r := New("a", "A", time.Minute)
		r.Start(0)
		r.Reset(30 * time.Second)

		if !r.Running {
			t.Fatal("Reset() stopped a running record")
		}
		if got := r.Elapsed(30 * time.Second); got != 0 {
			t.Errorf("Elapsed() right after Reset() = %v, want 0", got)
		}
		if got := r.Elapsed(31 * time.Second); got != time.Second {
			t.Errorf("Elapsed() 1s after Reset() = %v, want 1s", got)
		}
	})
}

func TestSetTime(t *testing.T) {
	r := New("a", "A", 0)
	r.Start(0)
	r.SetTime(90_000, 10*time.Second)

	if !r.Running {
		t.Fatal("SetTime() stopped a running record")
	}
	if got := r.Elapsed(12 * time.Second); got != 92*time.Second {
		t.Errorf("Elapsed() = %v, want 92s", got)
	}

	r.SetTime(-5, 12*time.Second)
	if r.Accumulated != 0 {
		t.Errorf("negative SetTime() left Accumulated = %v", r.Accumulated)
	}
}

func TestSetTimeString(t *testing.T) {
	r := New("a", "A", 5*time.Second)

	if err := r.SetTimeString("1:02:03", 0); err != nil {
		t.Fatalf("SetTimeString() error = %v", err)
	}
	if r.Accumulated != 3723*time.Second {
		t.Errorf("Accumulated = %v, want 1h2m3s", r.Accumulated)
	}

	err := r.SetTimeString("nope", 0)
	if !errors.Is(err, timefmt.ErrInvalidDuration) {
		t.Errorf("SetTimeString(nope) error = %v, want ErrInvalidDuration", err)
	}
	if r.Accumulated != 3723*time.Second {
		t.Errorf("rejected SetTimeString() mutated Accumulated to %v", r.Accumulated)
	}
}

func TestRename(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"Lap 1", "Lap 1"},
		{"  padded  ", "padded"},
		{"", DefaultName},
		{" \t\n", DefaultName},
	}
	for _, tt := range tests {
		r := New("a", "A", 0)
		r.Rename(tt.raw)
		if r.Name != tt.want {
			t.Errorf("Rename(%q) = %q, want %q", tt.raw, r.Name, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StatePaused.String() != "Paused" || StateRunning.String() != "Running" {
		t.Errorf("State strings = %q/%q", StatePaused, StateRunning)
	}
	if State(9).String() != "Unknown" {
		t.Errorf("State(9).String() = %q, want Unknown", State(9).String())
	}
}

func TestIDGenerators(t *testing.T) {
	gen := UUIDv7()
	a, b := gen(), gen()
	if a == b {
		t.Errorf("UUIDv7 produced duplicate %q", a)
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("uuid.Parse(%q) error = %v", a, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("Version() = %d, want 7", parsed.Version())
	}

	seq := Sequence("sw")
	if got := seq(); got != "sw-1" {
		t.Errorf("Sequence first = %q, want sw-1", got)
	}
	if got := seq(); got != "sw-2" {
		t.Errorf("Sequence second = %q, want sw-2", got)
	}
}
