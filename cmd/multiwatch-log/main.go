// Command multiwatch-log reads the engine trace files written with -trace.
//
// Usage:
//
//	multiwatch-log <command> [flags] <file.swlog>
//
// Commands:
//
//	view     Print the trace in human-readable form
//	export   Export the trace as JSONL or CSV
//	filter   Write matching events to a new trace file
//	stats    Summarize actions, prompts, saves and stopwatches
//
// Examples:
//
//	# View everything
//	multiwatch-log view /tmp/multiwatch.swlog
//
//	# Only confirmation prompts
//	multiwatch-log view --category prompt /tmp/multiwatch.swlog
//
//	# Everything that happened to one stopwatch, saved to a new file
//	multiwatch-log filter --record 0192f3a1 -o one.swlog /tmp/multiwatch.swlog
//
//	# Spreadsheet-friendly export
//	multiwatch-log export --format csv -o trace.csv /tmp/multiwatch.swlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/multiwatch/multiwatch-go/cmd/multiwatch-log/commands"
)

const usage = `multiwatch-log - multiwatch trace reader

Usage:
  multiwatch-log <command> [flags] <file.swlog>

Commands:
  view     Print the trace in human-readable form
  export   Export the trace as JSONL or CSV
  filter   Write matching events to a new trace file
  stats    Summarize actions, prompts, saves and stopwatches

Use "multiwatch-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "multiwatch-log %s - %s\n\nUsage:\n  multiwatch-log %s [flags] <file.swlog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// parsePath parses args and returns the trace path argument.
func parsePath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "Print the trace in human-readable form")
	category := fs.String("category", "", "Filter by category (action, prompt, persist, loop, error)")
	record := fs.String("record", "", "Filter by stopwatch id")
	action := fs.String("action", "", "Filter by action name (add, toggle, reset, ...)")
	path := parsePath(fs, args)

	filter := commands.ViewFilter{RecordID: *record, Action: *action}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export the trace as JSONL or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parsePath(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Write matching events to a new trace file")
	output := fs.String("o", "", "Output file (required)")
	record := fs.String("record", "", "Filter by stopwatch id")
	action := fs.String("action", "", "Filter by action name")
	category := fs.String("category", "", "Filter by category (action, prompt, persist, loop, error)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	path := parsePath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, commands.FilterOptions{
		Output:    *output,
		RecordID:  *record,
		Action:    *action,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Category:  *category,
	})
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Summarize actions, prompts, saves and stopwatches")
	path := parsePath(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
