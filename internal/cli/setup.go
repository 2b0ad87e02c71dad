// Package cli holds the start-up plumbing shared by the multiwatch commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/multiwatch/multiwatch-go/pkg/config"
	"github.com/multiwatch/multiwatch-go/pkg/log"
	"github.com/multiwatch/multiwatch-go/pkg/persistence"
)

// SetupLogging builds the slog logger. cfg.File, when set, replaces out.
func SetupLogging(cfg config.LogConfig, out io.Writer) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {}
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closeFn = func() { file.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}

// SetupTrace opens the trace file. Debug logging also mirrors the trace
// into the operational log.
func SetupTrace(path string, logger *slog.Logger) (log.Logger, func()) {
	var loggers []log.Logger
	closeFn := func() {}

	if path != "" {
		fileLogger, err := log.NewFileLogger(path)
		if err != nil {
			logger.Warn("opening trace file failed", "path", path, "error", err)
		} else {
			loggers = append(loggers, fileLogger)
			closeFn = func() { fileLogger.Close() }
			logger.Info("engine trace enabled", "path", path)
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	if len(loggers) == 0 {
		return log.NoopLogger{}, closeFn
	}
	return log.NewMultiLogger(loggers...), closeFn
}

// OpenStore opens the configured store, falling back to memory so the
// stopwatches stay usable when the backend cannot be opened.
func OpenStore(cfg config.Config, logger *slog.Logger) *persistence.Store {
	store, err := cfg.OpenStore()
	if err != nil {
		logger.Warn("opening state store failed, stopwatches will not be saved",
			"backend", cfg.State.Backend, "error", err)
		store, _ = persistence.Open(persistence.BackendMemory, "")
	}
	return store
}
