package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	stats, err := collectStats(path)
	if err != nil {
		t.Fatalf("collectStats failed: %v", err)
	}

	if stats.TotalEvents != 15 {
		t.Errorf("TotalEvents = %d, want 15", stats.TotalEvents)
	}
	wantCats := map[log.Category]int{
		log.CategoryAction:  5,
		log.CategoryPrompt:  4,
		log.CategoryPersist: 3,
		log.CategoryLoop:    2,
		log.CategoryError:   1,
	}
	for cat, want := range wantCats {
		if got := stats.EventsByCategory[cat]; got != want {
			t.Errorf("EventsByCategory[%s] = %d, want %d", cat, got, want)
		}
	}
	if stats.Actions["toggle"] != 2 || stats.Actions["add"] != 1 {
		t.Errorf("Actions = %v", stats.Actions)
	}
	if stats.PromptOutcomes["confirmed"] != 1 || stats.PromptOutcomes["cancelled"] != 1 {
		t.Errorf("PromptOutcomes = %v", stats.PromptOutcomes)
	}
	if stats.Saves != 2 || stats.SaveErrors != 1 {
		t.Errorf("Saves = %d (%d failed), want 2 (1 failed)", stats.Saves, stats.SaveErrors)
	}
	if stats.LoopStarts != 1 || stats.LoopTime != 6*time.Second {
		t.Errorf("loop = %d starts, %v active, want 1, 6s", stats.LoopStarts, stats.LoopTime)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}

	if len(stats.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(stats.Records))
	}
	rec := stats.Records["sw-000000002"]
	if rec.Events != 6 {
		t.Errorf("Events = %d, want 6", rec.Events)
	}
	if rec.LastElapsedMs != 6000 || rec.Running {
		t.Errorf("last state = %d ms running=%v, want 6000 ms paused", rec.LastElapsedMs, rec.Running)
	}
	if got := stats.TimeRange.End.Sub(stats.TimeRange.Start); got != 11*time.Second {
		t.Errorf("time range = %v, want 11s", got)
	}
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sampleTrace())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total Events: 15",
		"ACTION:      5",
		"toggle:      2",
		"confirmed:   1",
		"Saves: 2 (1 failed)",
		"Redraw Loop: started 1 times, active 6s",
		"Stopwatches: 2",
		"[00000002] 6 events, last 00:00:06 (paused)",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("output = %s", buf.String())
	}
}
