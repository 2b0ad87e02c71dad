package runloop

// FrameID identifies an outstanding frame request. Zero is never issued.
type FrameID uint64

// FrameSource delivers one-shot frame callbacks.
type FrameSource interface {
	// RequestFrame schedules cb to run once on the next frame.
	RequestFrame(cb func()) FrameID

	// CancelFrame drops a pending request. Unknown or already fired ids are
	// ignored.
	CancelFrame(id FrameID)
}

// Scheduler runs a shared redraw loop while any stopwatch is running.
type Scheduler struct {
	frames     FrameSource
	anyRunning func() bool
	render     func()

	pending  FrameID
	rendered uint64

	onActiveChange func(active bool)
}

// New creates an idle scheduler. anyRunning reports whether at least one
// stopwatch is running; render redraws all of them.
func New(frames FrameSource, anyRunning func() bool, render func()) *Scheduler {
	return &Scheduler{
		frames:     frames,
		anyRunning: anyRunning,
		render:     render,
	}
}

// OnActiveChange registers a hook called whenever the loop starts or stops.
func (s *Scheduler) OnActiveChange(fn func(active bool)) {
	s.onActiveChange = fn
}

// IsActive reports whether a frame is outstanding.
func (s *Scheduler) IsActive() bool {
	return s.pending != 0
}

// Frames returns the number of frames rendered so far.
func (s *Scheduler) Frames() uint64 {
	return s.rendered
}

// Sync starts the loop if something is running and stops it otherwise.
func (s *Scheduler) Sync() {
	if s.anyRunning() {
		s.Start()
		return
	}
	s.Stop()
}

// Start requests a frame unless one is already outstanding.
func (s *Scheduler) Start() {
	if s.pending != 0 {
		return
	}
	s.pending = s.frames.RequestFrame(s.tick)
	s.notify(true)
}

// Stop cancels the outstanding frame. Calling Stop on an idle scheduler is
// a no-op.
func (s *Scheduler) Stop() {
	if s.pending == 0 {
		return
	}
	s.frames.CancelFrame(s.pending)
	s.pending = 0
	s.notify(false)
}

func (s *Scheduler) tick() {
	s.pending = 0
	s.rendered++
	s.render()

	if s.pending != 0 {
		return
	}
	if s.anyRunning() {
		s.pending = s.frames.RequestFrame(s.tick)
		return
	}
	s.notify(false)
}

func (s *Scheduler) notify(active bool) {
	if s.onActiveChange != nil {
		s.onActiveChange(active)
	}
}
