package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/multiwatch/multiwatch-go/pkg/log"
)

func TestFormatEvent(t *testing.T) {
	trace := sampleTrace()

	tests := []struct {
		name  string
		event log.Event
		want  []string
	}{
		{
			name:  "action",
			event: trace[5],
			want:  []string{"2026-03-14T09:26:58.589793Z ACTION  reset [record:00000002]", "Elapsed: 00:00:03 (running)"},
		},
		{
			name:  "prompt opened",
			event: trace[6],
			want:  []string{"PROMPT  opened", "Message: Reset this stopwatch?", "Confirm: Reset"},
		},
		{
			name:  "prompt resolved",
			event: trace[11],
			want:  []string{"PROMPT  confirmed"},
		},
		{
			name:  "persist",
			event: trace[13],
			want:  []string{"PERSIST save", "Records: 1", "Reason: remove", "Error: disk full"},
		},
		{
			name:  "loop",
			event: trace[9],
			want:  []string{"LOOP    stopped", "Frames: 96"},
		},
		{
			name:  "error",
			event: trace[14],
			want:  []string{"ERROR   -", "Message: disk full", "Context: save"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatEvent(&buf, tt.event)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestShortenID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"sw-1", "sw-1"},
		{"0192f3a1-7c4e-7b3d-9a1e-5f6b2c8d4e01", "2c8d4e01"},
	}
	for _, tt := range tests {
		if got := shortenID(tt.in); got != tt.want {
			t.Errorf("shortenID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCategoryFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Category
		wantErr bool
	}{
		{"action", log.CategoryAction, false},
		{"PROMPT", log.CategoryPrompt, false},
		{"Persist", log.CategoryPersist, false},
		{"loop", log.CategoryLoop, false},
		{"error", log.CategoryError, false},
		{"message", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategoryFlag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategoryFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCategoryFlag(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunView(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	t.Run("all", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunView(path, ViewFilter{}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		// One header line per event.
		if got := strings.Count(buf.String(), "2026-03-14T"); got != len(sampleTrace()) {
			t.Errorf("printed %d events, want %d", got, len(sampleTrace()))
		}
	})

	t.Run("category", func(t *testing.T) {
		cat := log.CategoryPrompt
		var buf bytes.Buffer
		if err := RunView(path, ViewFilter{Category: &cat}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		out := buf.String()
		if got := strings.Count(out, "PROMPT"); got != 4 {
			t.Errorf("printed %d prompt events, want 4", got)
		}
		if strings.Contains(out, "ACTION") {
			t.Error("category filter let an action through")
		}
	})

	t.Run("record and action", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunView(path, ViewFilter{RecordID: "sw-000000002", Action: "toggle"}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		if got := strings.Count(buf.String(), "ACTION  toggle"); got != 2 {
			t.Errorf("printed %d toggles, want 2:\n%s", got, buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := RunView(path+".missing", ViewFilter{}, &bytes.Buffer{}); err == nil {
			t.Error("RunView on a missing file returned nil error")
		}
	})
}
