package log

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type mockLogger struct {
	mu     sync.Mutex
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Category: CategoryAction})
}

func TestMultiLogger(t *testing.T) {
	a := &mockLogger{}
	b := &mockLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{Category: CategoryAction, Action: "add"})
	m.Log(Event{Category: CategoryLoop, Loop: &LoopEvent{Active: true}})

	for name, l := range map[string]*mockLogger{"a": a, "b": b} {
		if len(l.events) != 2 {
			t.Errorf("logger %s got %d events, want 2", name, len(l.events))
		}
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	m := NewMultiLogger()
	m.Log(Event{})
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	a.Log(Event{
		Category:  CategoryAction,
		Action:    "reset",
		RecordID:  "sw-9",
		ElapsedMs: 0,
	})
	a.Log(Event{
		Category: CategoryPersist,
		Persist:  &PersistEvent{Op: PersistSave, Records: 2, Err: "quota"},
	})

	out := buf.String()
	for _, want := range []string{
		"category=ACTION",
		"action=reset",
		"record=sw-9",
		"category=PERSIST",
		"op=save",
		"records=2",
		"error=quota",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogAdapter(logger).Log(Event{Category: CategoryAction, Action: "add"})
	if buf.Len() != 0 {
		t.Errorf("debug trace written at info level: %q", buf.String())
	}
}
