package runloop

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTimers struct {
	running int
	renders int
}

func (f *fakeTimers) anyRunning() bool { return f.running > 0 }
func (f *fakeTimers) render()          { f.renders++ }

func TestSchedulerActiveIffRunning(t *testing.T) {
	frames := NewQueuedFrames()
	timers := &fakeTimers{}
	s := New(frames, timers.anyRunning, timers.render)

	s.Sync()
	if s.IsActive() {
		t.Fatal("IsActive() = true with nothing running")
	}
	if frames.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", frames.Pending())
	}

	timers.running = 2
	s.Sync()
	if !s.IsActive() {
		t.Fatal("IsActive() = false with timers running")
	}

	// Repeated Sync must not stack frame requests.
	s.Sync()
	s.Sync()
	if frames.Pending() != 1 {
		t.Errorf("Pending() = %d after repeated Sync, want 1", frames.Pending())
	}

	for i := 0; i < 3; i++ {
		if n := frames.Step(); n != 1 {
			t.Fatalf("Step() fired %d frames, want 1", n)
		}
	}
	if timers.renders != 3 {
		t.Errorf("renders = %d, want 3", timers.renders)
	}
	if s.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", s.Frames())
	}

	timers.running = 0
	frames.Step()
	if s.IsActive() {
		t.Error("IsActive() = true one frame after last timer paused")
	}
	if frames.Pending() != 0 {
		t.Errorf("Pending() = %d after wind-down, want 0", frames.Pending())
	}
	if timers.renders != 4 {
		t.Errorf("final frame did not render (renders = %d)", timers.renders)
	}
}

func TestSchedulerStop(t *testing.T) {
	frames := NewQueuedFrames()
	timers := &fakeTimers{running: 1}
	s := New(frames, timers.anyRunning, timers.render)

	s.Stop()
	if s.IsActive() {
		t.Fatal("Stop() on idle scheduler activated it")
	}

	s.Start()
	timers.running = 0
	s.Sync()
	if s.IsActive() {
		t.Fatal("Sync() did not stop the loop")
	}
	if frames.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", frames.Pending())
	}

	s.Stop()
	if frames.Step() != 0 {
		t.Error("cancelled frame fired")
	}
	if timers.renders != 0 {
		t.Errorf("renders = %d, want 0", timers.renders)
	}
}

func TestSchedulerActiveChangeHook(t *testing.T) {
	frames := NewQueuedFrames()
	timers := &fakeTimers{running: 1}
	s := New(frames, timers.anyRunning, timers.render)

	var changes []bool
	s.OnActiveChange(func(active bool) { changes = append(changes, active) })

	s.Sync()
	s.Sync()
	frames.Step()
	timers.running = 0
	frames.Step()
	s.Stop()

	want := []bool{true, false}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestQueuedFrames(t *testing.T) {
	q := NewQueuedFrames()
	var fired []int

	a := q.RequestFrame(func() { fired = append(fired, 1) })
	q.RequestFrame(func() {
		fired = append(fired, 2)
		q.RequestFrame(func() { fired = append(fired, 3) })
	})
	if a == 0 {
		t.Fatal("RequestFrame returned zero id")
	}

	if n := q.Step(); n != 2 {
		t.Errorf("first Step() = %d, want 2", n)
	}
	if n := q.Step(); n != 1 {
		t.Errorf("second Step() = %d, want 1", n)
	}
	if len(fired) != 3 || fired[0] != 1 || fired[1] != 2 || fired[2] != 3 {
		t.Errorf("fired = %v, want [1 2 3]", fired)
	}

	id := q.RequestFrame(func() { t.Error("cancelled frame ran") })
	q.CancelFrame(id)
	q.CancelFrame(id)
	if q.Fire(id) {
		t.Error("Fire() of cancelled id returned true")
	}
}

func TestTimerFrames(t *testing.T) {
	var exec Serial
	frames := NewTimerFrames(5*time.Millisecond, &exec)

	var wg sync.WaitGroup
	var count atomic.Int32
	wg.Add(1)
	frames.RequestFrame(func() {
		count.Add(1)
		wg.Done()
	})

	cancelled := frames.RequestFrame(func() { count.Add(100) })
	frames.CancelFrame(cancelled)

	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("callbacks ran %d times worth, want 1", got)
	}
	if frames.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", frames.Pending())
	}
}

func TestTimerFramesDriveScheduler(t *testing.T) {
	var exec Serial
	frames := NewTimerFrames(2*time.Millisecond, &exec)

	var running atomic.Bool
	running.Store(true)
	rendered := make(chan struct{}, 16)

	s := New(frames, running.Load, func() {
		select {
		case rendered <- struct{}{}:
		default:
		}
	})

	exec.Do(s.Sync)
	for i := 0; i < 3; i++ {
		select {
		case <-rendered:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for frame")
		}
	}

	running.Store(false)
	exec.Do(s.Sync)

	var active bool
	exec.Do(func() { active = s.IsActive() })
	if active {
		t.Error("scheduler still active after Sync with nothing running")
	}
}

func TestNewTimerFramesDefaultInterval(t *testing.T) {
	frames := NewTimerFrames(0, &Serial{})
	if frames.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", frames.interval, DefaultInterval)
	}
}
