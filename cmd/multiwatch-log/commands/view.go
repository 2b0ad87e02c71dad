// Package commands implements the multiwatch-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/log"
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category *log.Category
	RecordID string
	Action   string
}

func (f ViewFilter) filter() log.Filter {
	return log.Filter{
		Category: f.Category,
		RecordID: f.RecordID,
		Action:   f.Action,
	}
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp CATEGORY label [record:id]
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s %-7s %s", ts, event.Category.String(), eventLabel(event))
	if event.RecordID != "" {
		fmt.Fprintf(w, " [record:%s]", shortenID(event.RecordID))
	}
	fmt.Fprintln(w)

	switch {
	case event.Prompt != nil:
		formatPromptDetails(w, event.Prompt)
	case event.Persist != nil:
		formatPersistDetails(w, event.Persist)
	case event.Loop != nil:
		fmt.Fprintf(w, "  Frames: %d\n", event.Loop.Frames)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	case event.RecordID != "":
		state := "paused"
		if event.Running {
			state = "running"
		}
		fmt.Fprintf(w, "  Elapsed: %s (%s)\n", timefmt.Format(event.ElapsedMs), state)
	}

	fmt.Fprintln(w) // Blank line between events
}

// eventLabel names what happened.
func eventLabel(event log.Event) string {
	switch {
	case event.Prompt != nil:
		if event.Prompt.Outcome != "" {
			return event.Prompt.Outcome
		}
		return "opened"
	case event.Persist != nil:
		return event.Persist.Op.String()
	case event.Loop != nil:
		if event.Loop.Active {
			return "started"
		}
		return "stopped"
	case event.Action != "":
		return event.Action
	default:
		return "-"
	}
}

// shortenID returns the last 8 characters of a record ID. UUIDv7 ids share
// their leading timestamp, so the tail is the distinguishing part.
func shortenID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func formatPromptDetails(w io.Writer, p *log.PromptEvent) {
	fmt.Fprintf(w, "  Message: %s\n", p.Message)
	if p.ConfirmLabel != "" {
		fmt.Fprintf(w, "  Confirm: %s\n", p.ConfirmLabel)
	}
	if p.Queued > 0 {
		fmt.Fprintf(w, "  Queued: %d\n", p.Queued)
	}
}

func formatPersistDetails(w io.Writer, p *log.PersistEvent) {
	fmt.Fprintf(w, "  Records: %d\n", p.Records)
	if p.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", p.Reason)
	}
	if p.Err != "" {
		fmt.Fprintf(w, "  Error: %s\n", p.Err)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEvent) {
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return d.Round(time.Millisecond).String()
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be action, prompt, persist, loop, or error)", strings.ToLower(s))
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.filter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
