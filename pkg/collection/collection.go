package collection

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/clock"
	"github.com/multiwatch/multiwatch-go/pkg/confirm"
	"github.com/multiwatch/multiwatch-go/pkg/log"
	"github.com/multiwatch/multiwatch-go/pkg/persistence"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
	"github.com/multiwatch/multiwatch-go/pkg/stopwatch"
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

// Errors returned by Dispatch.
var (
	ErrUnknownTimer   = errors.New("unknown stopwatch")
	ErrUnknownMessage = errors.New("unknown message")
)

// Confirmation prompts.
var (
	ResetPrompt = confirm.Prompt{
		Message:      "Reset this stopwatch to 00:00:00?",
		ConfirmLabel: "Reset",
	}
	RemovePrompt = confirm.Prompt{
		Message:      "Remove this stopwatch? This cannot be undone.",
		ConfirmLabel: "Remove",
	}
)

// Metrics receives engine measurements. See pkg/metrics.
type Metrics interface {
	ObserveAction(action string)
	ObservePrompt(outcome string)
	ObserveSave(reason string, err error)
	ObserveFrame()
	SetLoopActive(active bool)
	SetRecords(total, running int)
}

// Config holds the collaborators of a Collection. Only Clock is required.
type Config struct {
	// Clock supplies monotonic readings. Defaults to clock.NewMonotonic().
	Clock clock.Clock

	// Store persists the collection. Nil keeps state in memory only.
	Store *persistence.Store

	// Frames drives the redraw loop. Defaults to a runloop.QueuedFrames
	// nobody steps, so the loop only tracks activity.
	Frames runloop.FrameSource

	// NewID generates record ids. Defaults to stopwatch.UUIDv7().
	NewID stopwatch.IDGenerator

	// Logger receives operational logs. Defaults to a discarding logger.
	Logger *slog.Logger

	// Trace receives engine trace events. Defaults to log.NoopLogger.
	Trace log.Logger

	// Metrics receives measurements. Optional.
	Metrics Metrics

	// Render is called with a fresh View after every dispatch and frame.
	Render func(View)

	// WallClock stamps trace events. Defaults to time.Now.
	WallClock func() time.Time
}

type entry struct {
	rec         *stopwatch.Record
	draft       string
	placeholder string
	errMsg      string
}

// Collection is the stopwatch controller.
type Collection struct {
	clock   clock.Clock
	store   *persistence.Store
	newID   stopwatch.IDGenerator
	logger  *slog.Logger
	trace   log.Logger
	metrics Metrics
	render  func(View)
	wall    func() time.Time

	// records are kept oldest first; View reverses them.
	records []*entry
	byID    map[string]*entry
	focus   string

	// saveOff is set when the stored payload could not be read, so the
	// session never writes over it.
	saveOff bool

	gate *confirm.Gate
	loop *runloop.Scheduler
}

// New creates an empty collection. Call Init to restore persisted state.
func New(cfg Config) *Collection {
	c := &Collection{
		clock:   cfg.Clock,
		store:   cfg.Store,
		newID:   cfg.NewID,
		logger:  cfg.Logger,
		trace:   cfg.Trace,
		metrics: cfg.Metrics,
		render:  cfg.Render,
		wall:    cfg.WallClock,
		byID:    make(map[string]*entry),
	}
	if c.clock == nil {
		c.clock = clock.NewMonotonic()
	}
	if c.newID == nil {
		c.newID = stopwatch.UUIDv7()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.trace == nil {
		c.trace = log.NoopLogger{}
	}
	if c.metrics == nil {
		c.metrics = nopMetrics{}
	}
	if c.wall == nil {
		c.wall = time.Now
	}

	frames := cfg.Frames
	if frames == nil {
		frames = runloop.NewQueuedFrames()
	}

	c.gate = confirm.NewGate(focusRef{c})
	c.gate.OnResolve(c.promptResolved)

	c.loop = runloop.New(frames, c.AnyRunning, c.frame)
	c.loop.OnActiveChange(c.loopChanged)

	return c
}

// Init restores the persisted collection, or seeds one fresh stopwatch when
// nothing usable is stored. Restored stopwatches are paused. A non-empty
// restore is saved straight back so the stored payload is normalized.
// When the store cannot be read at all the collection runs in memory only
// and leaves the stored payload untouched.
// It returns the number of restored stopwatches.
func (c *Collection) Init() int {
	snap := persistence.Snapshot{}
	if c.store != nil {
		var err error
		snap, err = c.store.Load()
		switch {
		case errors.Is(err, persistence.ErrRead):
			c.saveOff = true
			c.logger.Warn("reading stored stopwatches failed, changes will not be saved this session", "error", err)
		case err != nil:
			c.logger.Warn("stored stopwatches unreadable, starting fresh", "error", err)
		}
		c.trace.Log(log.Event{
			Timestamp: c.wall(),
			Category:  log.CategoryPersist,
			Persist:   persistEvent(log.PersistLoad, len(snap), "startup", err),
		})
	}

	for _, item := range snap {
		id := item.ID
		if _, dup := c.byID[id]; id == "" || dup {
			id = c.newID()
		}
		c.add(id, item.Name, time.Duration(item.TimeMs)*time.Millisecond)
	}

	restored := len(c.records)
	if restored > 0 {
		c.save("restore")
	} else {
		c.add(c.newID(), "", 0)
		c.save("seed")
	}

	c.logger.Info("stopwatches ready", "restored", restored, "total", len(c.records))
	c.updateGauges()
	c.loop.Sync()
	c.emit()
	return restored
}

// Dispatch applies one message. Errors are informational: the collection
// stays usable whatever Dispatch returns.
func (c *Collection) Dispatch(msg Message) error {
	err := c.apply(msg)
	if err != nil && errors.Is(err, ErrUnknownTimer) {
		c.logger.Debug("message for unknown stopwatch ignored", "action", msg.Action(), "error", err)
	}
	c.metrics.ObserveAction(msg.Action())
	c.updateGauges()
	c.emit()
	return err
}

func (c *Collection) apply(msg Message) error {
	now := c.clock.Now()

	switch m := msg.(type) {
	case AddTimer:
		e := c.add(c.newID(), m.Name, m.Preset)
		c.traceAction(msg, e)
		c.save(msg.Action())

	case ToggleTimer:
		e, err := c.lookup(m.ID)
		if err != nil {
			return err
		}
		e.rec.Toggle(now)
		c.loop.Sync()
		c.traceAction(msg, e)
		c.save(msg.Action())

	case ResetTimer:
		if _, err := c.lookup(m.ID); err != nil {
			return err
		}
		c.request(ResetPrompt, msg, func() {
			e, ok := c.byID[m.ID]
			if !ok {
				return
			}
			e.rec.Reset(c.clock.Now())
			e.errMsg = ""
			c.traceAction(msg, e)
			c.save(msg.Action())
		})

	case RemoveTimer:
		if _, err := c.lookup(m.ID); err != nil {
			return err
		}
		c.request(RemovePrompt, msg, func() {
			e, ok := c.byID[m.ID]
			if !ok {
				return
			}
			c.remove(m.ID)
			c.loop.Sync()
			c.traceAction(msg, e)
			c.save(msg.Action())
		})

	case RenameTimer:
		e, err := c.lookup(m.ID)
		if err != nil {
			return err
		}
		e.rec.Rename(m.Name)
		c.traceAction(msg, e)
		c.save(msg.Action())

	case FocusTimeInput:
		e, err := c.lookup(m.ID)
		if err != nil {
			return err
		}
		c.focus = TimeInputFocus(m.ID)
		e.draft = timefmt.Format(e.rec.ElapsedMillis(now))

	case EditTimeInput:
		e, err := c.lookup(m.ID)
		if err != nil {
			return err
		}
		e.draft = m.Draft

	case BlurTimeInput:
		if _, err := c.lookup(m.ID); err != nil {
			return err
		}
		if c.focus == TimeInputFocus(m.ID) {
			c.focus = ""
		}

	case ApplyTime:
		e, err := c.lookup(m.ID)
		if err != nil {
			return err
		}
		raw := m.Text
		if raw == "" {
			raw = e.draft
		}
		if err := e.rec.SetTimeString(raw, now); err != nil {
			e.errMsg = timefmt.Hint
			c.trace.Log(log.Event{
				Timestamp: c.wall(),
				Category:  log.CategoryError,
				Action:    msg.Action(),
				RecordID:  e.rec.ID,
				Error:     &log.ErrorEvent{Message: err.Error(), Context: strconv.Quote(raw)},
			})
			return fmt.Errorf("stopwatch %s: %w", m.ID, err)
		}
		e.errMsg = ""
		e.draft = ""
		c.traceAction(msg, e)
		c.save(msg.Action())

	case ConfirmPrompt:
		c.gate.Confirm()
	case CancelPrompt:
		c.gate.Cancel()
	case DismissPrompt:
		c.gate.Dismiss()
	case EscapePressed:
		c.gate.Escape()

	case PageHidden, Unload:
		c.save(msg.Action())

	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}
	return nil
}

// Len returns the number of stopwatches.
func (c *Collection) Len() int {
	return len(c.records)
}

// AnyRunning reports whether at least one stopwatch is running.
func (c *Collection) AnyRunning() bool {
	for _, e := range c.records {
		if e.rec.Running {
			return true
		}
	}
	return false
}

// Record returns a copy of the stopwatch with the given id.
func (c *Collection) Record(id string) (stopwatch.Record, bool) {
	e, ok := c.byID[id]
	if !ok {
		return stopwatch.Record{}, false
	}
	return *e.rec, true
}

// IDs returns the stopwatch ids newest first.
func (c *Collection) IDs() []string {
	ids := make([]string, 0, len(c.records))
	for i := len(c.records) - 1; i >= 0; i-- {
		ids = append(ids, c.records[i].rec.ID)
	}
	return ids
}

// PromptOpen reports whether a confirmation is waiting for an answer.
func (c *Collection) PromptOpen() bool {
	return c.gate.Open()
}

// LoopActive reports whether the redraw loop has a frame outstanding.
func (c *Collection) LoopActive() bool {
	return c.loop.IsActive()
}

// Frames returns the number of loop frames rendered.
func (c *Collection) Frames() uint64 {
	return c.loop.Frames()
}

// Snapshot returns what Save would write now.
func (c *Collection) Snapshot() persistence.Snapshot {
	now := c.clock.Now()
	snap := make(persistence.Snapshot, 0, len(c.records))
	for _, e := range c.records {
		snap = append(snap, persistence.Entry{
			ID:     e.rec.ID,
			Name:   e.rec.Name,
			TimeMs: e.rec.ElapsedMillis(now),
		})
	}
	return snap
}

// Stop cancels the redraw loop. The collection stays usable; the next
// toggle restarts it.
func (c *Collection) Stop() {
	c.loop.Stop()
}

func (c *Collection) add(id, name string, preset time.Duration) *entry {
	if name == "" {
		name = "Stopwatch " + strconv.Itoa(len(c.records)+1)
	} else {
		name = stopwatch.NormalizeName(name)
	}
	e := &entry{rec: stopwatch.New(id, name, preset)}
	e.placeholder = timefmt.FormatDuration(e.rec.Accumulated)
	c.records = append(c.records, e)
	c.byID[id] = e
	return e
}

func (c *Collection) remove(id string) {
	for i, e := range c.records {
		if e.rec.ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}
	delete(c.byID, id)
	if c.focus == TimeInputFocus(id) {
		c.focus = ""
	}
}

func (c *Collection) lookup(id string) (*entry, error) {
	e, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimer, id)
	}
	return e, nil
}

func (c *Collection) request(p confirm.Prompt, msg Message, onConfirm func()) {
	c.gate.Request(p, func(ok bool) {
		if ok {
			onConfirm()
		}
	})
	c.trace.Log(log.Event{
		Timestamp: c.wall(),
		Category:  log.CategoryPrompt,
		Action:    msg.Action(),
		RecordID:  recordID(msg),
		Prompt: &log.PromptEvent{
			Message:      p.Message,
			ConfirmLabel: p.ConfirmLabel,
			Queued:       c.gate.Pending(),
		},
	})
}

// save writes the snapshot. Failures are logged and otherwise ignored.
func (c *Collection) save(reason string) {
	if c.store == nil || c.saveOff {
		return
	}
	snap := c.Snapshot()
	err := c.store.Save(snap)
	if err != nil {
		c.logger.Warn("saving stopwatches failed", "reason", reason, "error", err)
	}
	c.metrics.ObserveSave(reason, err)
	c.trace.Log(log.Event{
		Timestamp: c.wall(),
		Category:  log.CategoryPersist,
		Persist:   persistEvent(log.PersistSave, len(snap), reason, err),
	})
}

func (c *Collection) frame() {
	c.metrics.ObserveFrame()
	c.emit()
}

func (c *Collection) emit() {
	if c.render != nil {
		c.render(c.View())
	}
}

func (c *Collection) updateGauges() {
	running := 0
	for _, e := range c.records {
		if e.rec.Running {
			running++
		}
	}
	c.metrics.SetRecords(len(c.records), running)
}

func (c *Collection) promptResolved(p confirm.Prompt, outcome confirm.Outcome) {
	c.metrics.ObservePrompt(outcome.String())
	c.trace.Log(log.Event{
		Timestamp: c.wall(),
		Category:  log.CategoryPrompt,
		Prompt: &log.PromptEvent{
			Message:      p.Message,
			ConfirmLabel: p.ConfirmLabel,
			Outcome:      outcome.String(),
			Queued:       c.gate.Pending(),
		},
	})
}

func (c *Collection) loopChanged(active bool) {
	c.logger.Debug("redraw loop", "active", active, "frames", c.loop.Frames())
	c.metrics.SetLoopActive(active)
	c.trace.Log(log.Event{
		Timestamp: c.wall(),
		Category:  log.CategoryLoop,
		Loop:      &log.LoopEvent{Active: active, Frames: c.loop.Frames()},
	})
}

func (c *Collection) traceAction(msg Message, e *entry) {
	c.trace.Log(log.Event{
		Timestamp: c.wall(),
		Category:  log.CategoryAction,
		Action:    msg.Action(),
		RecordID:  e.rec.ID,
		ElapsedMs: e.rec.ElapsedMillis(c.clock.Now()),
		Running:   e.rec.Running,
	})
}

func recordID(msg Message) string {
	switch m := msg.(type) {
	case ResetTimer:
		return m.ID
	case RemoveTimer:
		return m.ID
	}
	return ""
}

func persistEvent(op log.PersistOp, n int, reason string, err error) *log.PersistEvent {
	ev := &log.PersistEvent{Op: op, Records: n, Reason: reason}
	if err != nil {
		ev.Err = err.Error()
	}
	return ev
}

// focusRef lets the gate move focus without exposing a setter.
type focusRef struct{ c *Collection }

func (f focusRef) Focused() string { return f.c.focus }
func (f focusRef) Focus(key string) { f.c.focus = key }

type nopMetrics struct{}

func (nopMetrics) ObserveAction(string) {}
func (nopMetrics) ObservePrompt(string) {}
func (nopMetrics) ObserveSave(string, error) {}
func (nopMetrics) ObserveFrame() {}
func (nopMetrics) SetLoopActive(bool) {}
func (nopMetrics) SetRecords(int, int) {}

var (
	_ confirm.Focus = focusRef{}
	_ Metrics       = nopMetrics{}
)
