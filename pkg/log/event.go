package log

import (
	"strings"
	"time"
)

// Event is one trace entry.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp is the wall-clock time of the event.
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"2,keyasint"`

	// Action names the dispatched message (add, toggle, reset, ...).
	Action string `cbor:"3,keyasint,omitempty"`

	// RecordID is the stopwatch the event concerns, if any.
	RecordID string `cbor:"4,keyasint,omitempty"`

	// ElapsedMs is the record's elapsed time after the event.
	ElapsedMs int64 `cbor:"5,keyasint,omitempty"`

	// Running is the record's run state after the event.
	Running bool `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (at most one is set).
	Prompt  *PromptEvent  `cbor:"10,keyasint,omitempty"`
	Persist *PersistEvent `cbor:"11,keyasint,omitempty"`
	Loop    *LoopEvent    `cbor:"12,keyasint,omitempty"`
	Error   *ErrorEvent   `cbor:"13,keyasint,omitempty"`
}

// Category classifies trace events.
type Category uint8

const (
	// CategoryAction is a dispatched user action.
	CategoryAction Category = 0
	// CategoryPrompt is a confirmation prompt opening or resolving.
	CategoryPrompt Category = 1
	// CategoryPersist is a save or load.
	CategoryPersist Category = 2
	// CategoryLoop is a run-loop transition.
	CategoryLoop Category = 3
	// CategoryError is a recovered error.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAction:
		return "ACTION"
	case CategoryPrompt:
		return "PROMPT"
	case CategoryPersist:
		return "PERSIST"
	case CategoryLoop:
		return "LOOP"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory converts a case-insensitive category name.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTION":
		return CategoryAction, true
	case "PROMPT":
		return CategoryPrompt, true
	case "PERSIST":
		return CategoryPersist, true
	case "LOOP":
		return CategoryLoop, true
	case "ERROR":
		return CategoryError, true
	}
	return 0, false
}

// PromptEvent describes a confirmation prompt.
type PromptEvent struct {
	// Message is the prompt text.
	Message string `cbor:"1,keyasint"`

	// ConfirmLabel is the confirm button label.
	ConfirmLabel string `cbor:"2,keyasint,omitempty"`

	// Outcome is empty when the prompt opens and set when it resolves.
	Outcome string `cbor:"3,keyasint,omitempty"`

	// Queued is the number of prompts waiting behind this one.
	Queued int `cbor:"4,keyasint,omitempty"`
}

// PersistOp is the persistence operation.
type PersistOp uint8

const (
	// PersistSave is a snapshot write.
	PersistSave PersistOp = 0
	// PersistLoad is the startup read.
	PersistLoad PersistOp = 1
)

// String returns the operation name.
func (p PersistOp) String() string {
	switch p {
	case PersistSave:
		return "save"
	case PersistLoad:
		return "load"
	default:
		return "unknown"
	}
}

// PersistEvent describes a save or load.
type PersistEvent struct {
	// Op is the operation.
	Op PersistOp `cbor:"1,keyasint"`

	// Records is the number of records written or read.
	Records int `cbor:"2,keyasint"`

	// Reason is the trigger (action name, "hidden", "unload", "startup").
	Reason string `cbor:"3,keyasint,omitempty"`

	// Err is the swallowed error, if any.
	Err string `cbor:"4,keyasint,omitempty"`
}

// LoopEvent describes a run-loop transition.
type LoopEvent struct {
	// Active is the new loop state.
	Active bool `cbor:"1,keyasint"`

	// Frames is the number of frames rendered so far.
	Frames uint64 `cbor:"2,keyasint"`
}

// ErrorEvent describes a recovered error.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`
}
