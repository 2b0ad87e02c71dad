package collection

import (
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

// Labels shown next to each stopwatch.
const (
	LabelStart = "Start"
	LabelPause = "Pause"
)

// View is everything a front end needs to draw.
type View struct {
	// Records are ordered newest first.
	Records []RecordView

	// Prompt is set while a confirmation is open.
	Prompt *PromptView

	// Focus is the focused element key ("" for none).
	Focus string

	// LoopActive reports whether the redraw loop is running.
	LoopActive bool
}

// RecordView is the rendered state of one stopwatch.
type RecordView struct {
	ID          string
	Name        string
	Elapsed     string
	ElapsedMs   int64
	Running     bool
	Status      string
	ToggleLabel string
	Placeholder string
	Draft       string
	Error       string
	Editing     bool
}

// PromptView is the open confirmation prompt.
type PromptView struct {
	Message      string
	ConfirmLabel string
	Queued       int
}

// PromptOpen reports whether a confirmation is waiting for an answer.
func (v View) PromptOpen() bool {
	return v.Prompt != nil
}

// Find returns the record with the given id.
func (v View) Find(id string) (RecordView, bool) {
	for _, r := range v.Records {
		if r.ID == id {
			return r, true
		}
	}
	return RecordView{}, false
}

// View builds the current view. The placeholder of every set-time input that
// is not focused is refreshed to the current elapsed time.
func (c *Collection) View() View {
	now := c.clock.Now()
	v := View{
		Records:    make([]RecordView, 0, len(c.records)),
		Focus:      c.focus,
		LoopActive: c.loop.IsActive(),
	}

	for i := len(c.records) - 1; i >= 0; i-- {
		e := c.records[i]
		ms := e.rec.ElapsedMillis(now)
		elapsed := timefmt.Format(ms)

		editing := c.focus == TimeInputFocus(e.rec.ID)
		if !editing {
			e.placeholder = elapsed
		}

		toggle := LabelStart
		if e.rec.Running {
			toggle = LabelPause
		}

		v.Records = append(v.Records, RecordView{
			ID:          e.rec.ID,
			Name:        e.rec.Name,
			Elapsed:     elapsed,
			ElapsedMs:   ms,
			Running:     e.rec.Running,
			Status:      e.rec.State().String(),
			ToggleLabel: toggle,
			Placeholder: e.placeholder,
			Draft:       e.draft,
			Error:       e.errMsg,
			Editing:     editing,
		})
	}

	if p, ok := c.gate.Current(); ok {
		v.Prompt = &PromptView{
			Message:      p.Message,
			ConfirmLabel: p.ConfirmLabel,
			Queued:       c.gate.Pending(),
		}
	}
	return v
}
