package confirm

// DefaultConfirmLabel labels the confirm button when the prompt has none.
const DefaultConfirmLabel = "Confirm"

// FocusConfirmButton is the focus key given to the confirm button while a
// prompt is open.
const FocusConfirmButton = "confirm"

// Outcome is how a prompt was resolved.
type Outcome uint8

const (
	// OutcomeConfirmed means the user pressed the confirm button.
	OutcomeConfirmed Outcome = iota + 1

	// OutcomeCancelled means the user pressed the cancel button.
	OutcomeCancelled

	// OutcomeDismissed means the user clicked outside the prompt.
	OutcomeDismissed

	// OutcomeEscaped means the user pressed Escape.
	OutcomeEscaped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDismissed:
		return "dismissed"
	case OutcomeEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Confirmed reports whether the outcome grants the action.
func (o Outcome) Confirmed() bool {
	return o == OutcomeConfirmed
}

// Prompt is the text shown to the user.
type Prompt struct {
	Message      string
	ConfirmLabel string
}

// Focus tracks the focused element of the front end.
type Focus interface {
	// Focused returns the key of the focused element, or "" for none.
	Focused() string

	// Focus moves focus to key.
	Focus(key string)
}

type request struct {
	prompt    Prompt
	done      func(bool)
	lastFocus string
}

// Gate shows one prompt at a time. It is not safe for concurrent use.
type Gate struct {
	focus     Focus
	current   *request
	queue     []*request
	resolving bool

	onChange  func()
	onResolve func(Prompt, Outcome)
}

// NewGate creates a gate. focus may be nil.
func NewGate(focus Focus) *Gate {
	return &Gate{focus: focus}
}

// OnChange registers a hook called whenever the visible prompt changes.
func (g *Gate) OnChange(fn func()) {
	g.onChange = fn
}

// OnResolve registers a hook called with every resolution.
func (g *Gate) OnResolve(fn func(Prompt, Outcome)) {
	g.onResolve = fn
}

// Request shows p, or queues it behind the open prompt. done receives the
// answer exactly once.
func (g *Gate) Request(p Prompt, done func(bool)) {
	if p.ConfirmLabel == "" {
		p.ConfirmLabel = DefaultConfirmLabel
	}
	req := &request{prompt: p, done: done}

	if g.current != nil || g.resolving {
		g.queue = append(g.queue, req)
		return
	}
	g.show(req)
}

// Open reports whether a prompt is visible.
func (g *Gate) Open() bool {
	return g.current != nil
}

// Current returns the visible prompt.
func (g *Gate) Current() (Prompt, bool) {
	if g.current == nil {
		return Prompt{}, false
	}
	return g.current.prompt, true
}

// Pending returns the number of queued prompts behind the visible one.
func (g *Gate) Pending() int {
	return len(g.queue)
}

// Confirm resolves the visible prompt with true.
func (g *Gate) Confirm() bool { return g.Resolve(OutcomeConfirmed) }

// Cancel resolves the visible prompt with false.
func (g *Gate) Cancel() bool { return g.Resolve(OutcomeCancelled) }

// Dismiss resolves the visible prompt with false (click outside).
func (g *Gate) Dismiss() bool { return g.Resolve(OutcomeDismissed) }

// Escape resolves the visible prompt with false (Escape key).
func (g *Gate) Escape() bool { return g.Resolve(OutcomeEscaped) }

// Resolve answers the visible prompt. It reports false when no prompt is
// open, so repeated or late answers are ignored.
func (g *Gate) Resolve(outcome Outcome) bool {
	req := g.current
	if req == nil {
		return false
	}
	g.current = nil

	if g.focus != nil {
		g.focus.Focus(req.lastFocus)
	}
	if g.onResolve != nil {
		g.onResolve(req.prompt, outcome)
	}

	// Prompts requested by the continuation queue behind earlier ones.
	g.resolving = true
	if req.done != nil {
		req.done(outcome.Confirmed())
	}
	g.resolving = false

	if len(g.queue) > 0 {
		next := g.queue[0]
		g.queue = g.queue[1:]
		g.show(next)
		return true
	}
	g.changed()
	return true
}

func (g *Gate) show(req *request) {
	if g.focus != nil {
		req.lastFocus = g.focus.Focused()
		g.focus.Focus(FocusConfirmButton)
	}
	g.current = req
	g.changed()
}

func (g *Gate) changed() {
	if g.onChange != nil {
		g.onChange()
	}
}
