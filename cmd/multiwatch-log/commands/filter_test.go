package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/multiwatch/multiwatch-go/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	var events []log.Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		events = append(events, e)
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	tests := []struct {
		name string
		opts FilterOptions
		want int
	}{
		{"no criteria", FilterOptions{}, 15},
		{"record", FilterOptions{RecordID: "sw-000000001"}, 3},
		{"action", FilterOptions{Action: "toggle"}, 2},
		{"category", FilterOptions{Category: "persist"}, 3},
		{"record and category", FilterOptions{RecordID: "sw-000000002", Category: "prompt"}, 2},
		{"time window", FilterOptions{TimeStart: "2026-03-14T09:26:58Z", TimeEnd: "2026-03-14T09:27:00Z"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Output = filepath.Join(t.TempDir(), "out.swlog")

			n, err := RunFilter(path, opts)
			if err != nil {
				t.Fatalf("RunFilter failed: %v", err)
			}
			if n != tt.want {
				t.Errorf("RunFilter() = %d, want %d", n, tt.want)
			}
			if got := len(readAll(t, opts.Output)); got != tt.want {
				t.Errorf("output has %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())
	out := filepath.Join(t.TempDir(), "out.swlog")

	tests := []struct {
		name string
		opts FilterOptions
	}{
		{"bad category", FilterOptions{Output: out, Category: "wire"}},
		{"bad time-start", FilterOptions{Output: out, TimeStart: "yesterday"}},
		{"bad time-end", FilterOptions{Output: out, TimeEnd: "2026-13-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunFilter(path, tt.opts); err == nil {
				t.Error("RunFilter returned nil error")
			}
		})
	}
}
