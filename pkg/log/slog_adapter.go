package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.Action != "" {
		attrs = append(attrs, slog.String("action", event.Action))
	}
	if event.RecordID != "" {
		attrs = append(attrs,
			slog.String("record", event.RecordID),
			slog.Int64("elapsed_ms", event.ElapsedMs),
			slog.Bool("running", event.Running),
		)
	}

	switch {
	case event.Prompt != nil:
		attrs = append(attrs, slog.String("prompt", event.Prompt.Message))
		if event.Prompt.Outcome != "" {
			attrs = append(attrs, slog.String("outcome", event.Prompt.Outcome))
		}
		if event.Prompt.Queued > 0 {
			attrs = append(attrs, slog.Int("queued", event.Prompt.Queued))
		}
	case event.Persist != nil:
		attrs = append(attrs,
			slog.String("op", event.Persist.Op.String()),
			slog.Int("records", event.Persist.Records),
		)
		if event.Persist.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Persist.Reason))
		}
		if event.Persist.Err != "" {
			attrs = append(attrs, slog.String("error", event.Persist.Err))
		}
	case event.Loop != nil:
		attrs = append(attrs,
			slog.Bool("active", event.Loop.Active),
			slog.Uint64("frames", event.Loop.Frames),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error", event.Error.Message),
			slog.String("context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
