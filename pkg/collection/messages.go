package collection

import "time"

// Message is a user or lifecycle event consumed by Dispatch.
type Message interface {
	// Action names the message in logs, traces and metrics.
	Action() string
}

// AddTimer creates a paused stopwatch at the top of the list.
// An empty Name becomes "Stopwatch N".
type AddTimer struct {
	Name   string
	Preset time.Duration
}

// ToggleTimer starts a paused stopwatch or pauses a running one.
type ToggleTimer struct{ ID string }

// ResetTimer asks for confirmation, then zeroes the stopwatch.
type ResetTimer struct{ ID string }

// RemoveTimer asks for confirmation, then deletes the stopwatch.
type RemoveTimer struct{ ID string }

// RenameTimer replaces the name. Blank names become "Untitled".
type RenameTimer struct {
	ID   string
	Name string
}

// FocusTimeInput focuses the set-time input and pre-fills it with the
// current elapsed time.
type FocusTimeInput struct{ ID string }

// EditTimeInput replaces the set-time draft.
type EditTimeInput struct {
	ID    string
	Draft string
}

// BlurTimeInput moves focus away from the set-time input.
type BlurTimeInput struct{ ID string }

// ApplyTime parses Text (or the current draft when Text is empty) and sets
// the elapsed time.
type ApplyTime struct {
	ID   string
	Text string
}

// ConfirmPrompt presses the confirm button of the open prompt.
type ConfirmPrompt struct{}

// CancelPrompt presses the cancel button of the open prompt.
type CancelPrompt struct{}

// DismissPrompt clicks outside the open prompt.
type DismissPrompt struct{}

// EscapePressed is the Escape key.
type EscapePressed struct{}

// PageHidden reports that the front end lost visibility.
type PageHidden struct{}

// Unload reports that the front end is shutting down.
type Unload struct{}

func (AddTimer) Action() string { return "add" }
func (ToggleTimer) Action() string { return "toggle" }
func (ResetTimer) Action() string { return "reset" }
func (RemoveTimer) Action() string { return "remove" }
func (RenameTimer) Action() string { return "rename" }
func (FocusTimeInput) Action() string { return "focus" }
func (EditTimeInput) Action() string { return "edit" }
func (BlurTimeInput) Action() string { return "blur" }
func (ApplyTime) Action() string { return "apply" }
func (ConfirmPrompt) Action() string { return "confirm" }
func (CancelPrompt) Action() string { return "cancel" }
func (DismissPrompt) Action() string { return "dismiss" }
func (EscapePressed) Action() string { return "escape" }
func (PageHidden) Action() string { return "hidden" }
func (Unload) Action() string { return "unload" }

// TimeInputFocus returns the focus key of a stopwatch's set-time input.
func TimeInputFocus(id string) string {
	return "time:" + id
}
