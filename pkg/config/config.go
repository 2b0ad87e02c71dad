package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/multiwatch/multiwatch-go/pkg/persistence"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete multiwatch configuration.
type Config struct {
	State StateConfig `yaml:"state"`
	UI    UIConfig    `yaml:"ui"`
	Log   LogConfig   `yaml:"log"`
	Web   WebConfig   `yaml:"web"`
}

// StateConfig selects where stopwatches are stored.
type StateConfig struct {
	Backend string `yaml:"backend"` // file | sqlite | memory
	Path    string `yaml:"path"`    // empty: platform data directory
	Key     string `yaml:"key"`
}

// UIConfig tunes the redraw loop.
type UIConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// LogConfig controls operational logging and the engine trace.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // empty: stderr
	Trace string `yaml:"trace"` // empty: tracing off
}

// WebConfig controls the web front end.
type WebConfig struct {
	Addr        string `yaml:"addr"`
	Metrics     bool   `yaml:"metrics"`
	Advertise   bool   `yaml:"advertise"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		State: StateConfig{
			Backend: string(persistence.BackendFile),
			Key:     persistence.DefaultKey,
		},
		UI: UIConfig{
			FrameInterval: runloop.DefaultInterval,
		},
		Log: LogConfig{
			Level: "info",
		},
		Web: WebConfig{
			Addr:    "127.0.0.1:8080",
			Metrics: true,
		},
	}
}

// LoadFile reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load returns the defaults overlaid with path (if non-empty) and the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays MULTIWATCH_* environment variables.
func (c *Config) ApplyEnv() {
	c.State.Backend = getEnv("MULTIWATCH_STATE_BACKEND", c.State.Backend)
	c.State.Path = getEnv("MULTIWATCH_STATE_PATH", c.State.Path)
	c.State.Key = getEnv("MULTIWATCH_STATE_KEY", c.State.Key)
	c.UI.FrameInterval = getDurationEnv("MULTIWATCH_FRAME_INTERVAL", c.UI.FrameInterval)
	c.Log.Level = getEnv("MULTIWATCH_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("MULTIWATCH_LOG_FILE", c.Log.File)
	c.Log.Trace = getEnv("MULTIWATCH_TRACE", c.Log.Trace)
	c.Web.Addr = getEnv("MULTIWATCH_HTTP_ADDR", c.Web.Addr)
	c.Web.Metrics = getBoolEnv("MULTIWATCH_METRICS", c.Web.Metrics)
	c.Web.Advertise = getBoolEnv("MULTIWATCH_ADVERTISE", c.Web.Advertise)
	c.Web.ServiceName = getEnv("MULTIWATCH_SERVICE_NAME", c.Web.ServiceName)
}

// Validate checks the configuration for values no command can use.
func (c *Config) Validate() error {
	if _, err := persistence.ParseBackend(c.State.Backend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if strings.TrimSpace(c.State.Key) == "" {
		return fmt.Errorf("%w: state key is empty", ErrInvalid)
	}
	if c.UI.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %v", ErrInvalid, c.UI.FrameInterval)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Backend returns the parsed state backend.
func (c *Config) Backend() persistence.Backend {
	b, err := persistence.ParseBackend(c.State.Backend)
	if err != nil {
		return persistence.BackendFile
	}
	return b
}

// OpenStore opens the configured store.
func (c *Config) OpenStore() (*persistence.Store, error) {
	return persistence.Open(c.Backend(), c.State.Path, persistence.WithKey(c.State.Key))
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.State.Backend == "" {
		c.State.Backend = def.State.Backend
	}
	if c.State.Key == "" {
		c.State.Key = def.State.Key
	}
	if c.UI.FrameInterval == 0 {
		c.UI.FrameInterval = def.UI.FrameInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Web.Addr == "" {
		c.Web.Addr = def.Web.Addr
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
