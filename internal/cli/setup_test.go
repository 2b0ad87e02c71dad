package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/multiwatch/multiwatch-go/pkg/config"
	"github.com/multiwatch/multiwatch-go/pkg/log"
	"github.com/multiwatch/multiwatch-go/pkg/persistence"
)

func TestSetupLoggingLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := SetupLogging(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("SetupLogging() error = %v", err)
	}
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message missing")
	}
}

func TestSetupLoggingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multiwatch.log")
	var buf bytes.Buffer
	logger, closeFn, err := SetupLogging(config.LogConfig{Level: "info", File: path}, &buf)
	if err != nil {
		t.Fatalf("SetupLogging() error = %v", err)
	}
	logger.Info("to file")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want message", data)
	}
	if buf.Len() != 0 {
		t.Errorf("fallback writer got %q, want nothing", buf.String())
	}
}

func TestSetupLoggingBadLevel(t *testing.T) {
	if _, _, err := SetupLogging(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("SetupLogging() error = nil, want error")
	}
}

func TestSetupTrace(t *testing.T) {
	quiet, _, _ := SetupLogging(config.LogConfig{Level: "info"}, &bytes.Buffer{})
	debug, _, _ := SetupLogging(config.LogConfig{Level: "debug"}, &bytes.Buffer{})

	t.Run("off", func(t *testing.T) {
		trace, closeFn := SetupTrace("", quiet)
		defer closeFn()
		if _, ok := trace.(log.NoopLogger); !ok {
			t.Errorf("SetupTrace() = %T, want NoopLogger", trace)
		}
	})

	t.Run("debug mirrors", func(t *testing.T) {
		trace, closeFn := SetupTrace("", debug)
		defer closeFn()
		if _, ok := trace.(*log.MultiLogger); !ok {
			t.Errorf("SetupTrace() = %T, want MultiLogger", trace)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trace.swlog")
		_, closeFn := SetupTrace(path, quiet)
		closeFn()
		if _, err := os.Stat(path); err != nil {
			t.Errorf("trace file not created: %v", err)
		}
	})
}

func TestOpenStoreFallsBackToMemory(t *testing.T) {
	logger, _, _ := SetupLogging(config.LogConfig{Level: "error"}, &bytes.Buffer{})
	cfg := config.Default()
	cfg.State.Backend = string(persistence.BackendSQLite)
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// A regular file where the database directory should be.
	cfg.State.Path = filepath.Join(blocker, "state.db")

	store := OpenStore(cfg, logger)
	defer store.Close()

	if err := store.Save(persistence.Snapshot{{ID: "a", Name: "A", TimeMs: 1}}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
}
