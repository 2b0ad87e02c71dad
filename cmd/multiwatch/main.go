// Command multiwatch runs any number of independent stopwatches in the
// terminal.
//
// By default it opens a full-screen interface. With -shell it starts a
// line-oriented prompt instead, which works over plain SSH sessions and in
// scripts.
//
// Usage:
//
//	multiwatch [flags]
//
// Flags:
//
//	-config string      YAML configuration file
//	-state string       State backend: file, sqlite, memory (default "file")
//	-state-path string  Directory (file) or database path (sqlite)
//	-state-key string   Storage key (default "multi-stopwatches-v1")
//	-interval duration  Redraw interval while a stopwatch runs
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-log-file string    Write logs to this file
//	-trace string       Write the engine trace (CBOR) to this file
//	-shell              Line-oriented shell instead of the full-screen UI
//	-version            Print version and exit
//
// Examples:
//
//	# Full-screen UI with the default data directory
//	multiwatch
//
//	# Shell backed by SQLite, tracing to a file
//	multiwatch -shell -state sqlite -trace /tmp/multiwatch.swlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/multiwatch/multiwatch-go/cmd/multiwatch/interactive"
	"github.com/multiwatch/multiwatch-go/internal/cli"
	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/config"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
	"github.com/multiwatch/multiwatch-go/pkg/version"
)

type flags struct {
	configFile  string
	state       string
	statePath   string
	stateKey    string
	interval    time.Duration
	logLevel    string
	logFile     string
	trace       string
	shell       bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var f flags
	fs := flag.NewFlagSet("multiwatch", flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&f.state, "state", "", "State backend: file, sqlite, memory")
	fs.StringVar(&f.statePath, "state-path", "", "Directory (file) or database path (sqlite)")
	fs.StringVar(&f.stateKey, "state-key", "", "Storage key")
	fs.DurationVar(&f.interval, "interval", 0, "Redraw interval while a stopwatch runs")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&f.trace, "trace", "", "Write the engine trace (CBOR) to this file")
	fs.BoolVar(&f.shell, "shell", false, "Line-oriented shell instead of the full-screen UI")
	fs.BoolVar(&f.showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if f.showVersion {
		fmt.Println("multiwatch", version.String())
		return 0
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// The full-screen UI owns the terminal, so logs only go to a file there.
	var logOut io.Writer = os.Stderr
	if !f.shell {
		logOut = io.Discard
	}
	logger, closeLog, err := cli.SetupLogging(cfg.Log, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	store := cli.OpenStore(cfg, logger)
	defer store.Close()

	trace, closeTrace := cli.SetupTrace(cfg.Log.Trace, logger)
	defer closeTrace()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engineCfg := collection.Config{
		Store:  store,
		Logger: logger,
		Trace:  trace,
	}

	if f.shell {
		return runShell(ctx, engineCfg, cfg.UI.FrameInterval, logger)
	}
	return runTUI(ctx, engineCfg, cfg.UI.FrameInterval, logger)
}

// loadConfig layers the config file, environment and explicitly set flags.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return cfg, err
	}
	if f.state != "" {
		cfg.State.Backend = f.state
	}
	if f.statePath != "" {
		cfg.State.Path = f.statePath
	}
	if f.stateKey != "" {
		cfg.State.Key = f.stateKey
	}
	if f.interval != 0 {
		cfg.UI.FrameInterval = f.interval
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.trace != "" {
		cfg.Log.Trace = f.trace
	}
	return cfg, cfg.Validate()
}

func runShell(ctx context.Context, engineCfg collection.Config, interval time.Duration, logger *slog.Logger) int {
	exec := &runloop.Serial{}
	engineCfg.Frames = runloop.NewTimerFrames(interval, exec)

	shell, err := interactive.New(engineCfg, exec)
	if err != nil {
		logger.Error("starting shell failed", "error", err)
		return 1
	}
	shell.Run(ctx)
	return 0
}
