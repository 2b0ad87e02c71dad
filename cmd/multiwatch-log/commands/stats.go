package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/log"
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Actions          map[string]int
	PromptOutcomes   map[string]int
	Records          map[string]*RecordStats
	Saves            int
	SaveErrors       int
	LoopStarts       int
	LoopTime         time.Duration
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// RecordStats holds statistics for a single stopwatch.
type RecordStats struct {
	FirstSeen     time.Time
	LastSeen      time.Time
	Events        int
	LastElapsedMs int64
	Running       bool
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := collectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Actions:          make(map[string]int),
		PromptOutcomes:   make(map[string]int),
		Records:          make(map[string]*RecordStats),
	}

	var loopSince time.Time
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		switch {
		case event.Prompt != nil:
			if event.Prompt.Outcome != "" {
				stats.PromptOutcomes[event.Prompt.Outcome]++
			}
		case event.Persist != nil:
			if event.Persist.Op == log.PersistSave {
				stats.Saves++
				if event.Persist.Err != "" {
					stats.SaveErrors++
				}
			}
		case event.Loop != nil:
			if event.Loop.Active {
				stats.LoopStarts++
				loopSince = event.Timestamp
			} else if !loopSince.IsZero() {
				stats.LoopTime += event.Timestamp.Sub(loopSince)
				loopSince = time.Time{}
			}
		case event.Error != nil:
			stats.Errors++
		case event.Action != "":
			stats.Actions[event.Action]++
		}

		if event.RecordID == "" {
			continue
		}
		rec, ok := stats.Records[event.RecordID]
		if !ok {
			rec = &RecordStats{FirstSeen: event.Timestamp}
			stats.Records[event.RecordID] = rec
		}
		rec.Events++
		rec.LastSeen = event.Timestamp
		if event.Category == log.CategoryAction {
			rec.LastElapsedMs = event.ElapsedMs
			rec.Running = event.Running
		}
	}

	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Multiwatch Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryAction, log.CategoryPrompt, log.CategoryPersist, log.CategoryLoop, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Actions) > 0 {
		fmt.Fprintln(w, "Actions:")
		printCounts(w, stats.Actions)
		fmt.Fprintln(w)
	}

	if len(stats.PromptOutcomes) > 0 {
		fmt.Fprintln(w, "Prompt Outcomes:")
		printCounts(w, stats.PromptOutcomes)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Saves: %d", stats.Saves)
	if stats.SaveErrors > 0 {
		fmt.Fprintf(w, " (%d failed)", stats.SaveErrors)
	}
	fmt.Fprintln(w)
	if stats.LoopStarts > 0 {
		fmt.Fprintf(w, "Redraw Loop: started %d times, active %s\n", stats.LoopStarts, formatDuration(stats.LoopTime))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Stopwatches: %d\n", len(stats.Records))
	if len(stats.Records) > 0 {
		type recordInfo struct {
			id    string
			stats *RecordStats
		}
		records := make([]recordInfo, 0, len(stats.Records))
		for id, rs := range stats.Records {
			records = append(records, recordInfo{id, rs})
		}
		sort.Slice(records, func(i, j int) bool {
			return records[i].stats.FirstSeen.Before(records[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, r := range records {
			state := "paused"
			if r.stats.Running {
				state = "running"
			}
			fmt.Fprintf(w, "  [%s] %d events, last %s (%s)\n",
				shortenID(r.id), r.stats.Events, timefmt.Format(r.stats.LastElapsedMs), state)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

// printCounts writes name counts sorted by name.
func printCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %d\n", name+":", counts[name])
	}
}
