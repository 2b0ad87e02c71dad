// Command multiwatch-web serves the multiwatch stopwatches over HTTP.
//
// It offers:
//   - A single-page UI with a live event stream
//   - A JSON API under /api/v1
//   - Prometheus metrics on /metrics
//   - Optional mDNS announcement and discovery of other instances
//
// Usage:
//
//	multiwatch-web [flags]
//
// Flags:
//
//	-config string      YAML configuration file
//	-addr string        Listen address (default "127.0.0.1:8080")
//	-state string       State backend: file, sqlite, memory (default "file")
//	-state-path string  Directory (file) or database path (sqlite)
//	-interval duration  Redraw interval while a stopwatch runs
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-trace string       Write the engine trace (CBOR) to this file
//	-advertise          Announce this instance via mDNS
//	-name string        Announced instance name (default: hostname)
//	-discover           List multiwatch instances on the network and exit
//	-version            Print version and exit
//
// Examples:
//
//	# Serve on the default address
//	multiwatch-web
//
//	# Serve on all interfaces and announce via mDNS
//	multiwatch-web -addr :8080 -advertise -name kitchen
//
//	# Find other instances
//	multiwatch-web -discover
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/multiwatch/multiwatch-go/internal/cli"
	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/config"
	"github.com/multiwatch/multiwatch-go/pkg/discovery"
	"github.com/multiwatch/multiwatch-go/pkg/metrics"
	"github.com/multiwatch/multiwatch-go/pkg/version"
)

var (
	configFile  = flag.String("config", "", "YAML configuration file")
	addr        = flag.String("addr", "", "Listen address")
	state       = flag.String("state", "", "State backend: file, sqlite, memory")
	statePath   = flag.String("state-path", "", "Directory (file) or database path (sqlite)")
	interval    = flag.Duration("interval", 0, "Redraw interval while a stopwatch runs")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	trace       = flag.String("trace", "", "Write the engine trace (CBOR) to this file")
	advertise   = flag.Bool("advertise", false, "Announce this instance via mDNS")
	name        = flag.String("name", "", "Announced instance name")
	discover    = flag.Bool("discover", false, "List multiwatch instances on the network and exit")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Println("multiwatch-web", version.String())
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger, closeLog, err := cli.SetupLogging(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *discover {
		return runDiscover(ctx)
	}

	store := cli.OpenStore(cfg, logger)
	defer store.Close()

	engineTrace, closeTrace := cli.SetupTrace(cfg.Log.Trace, logger)
	defer closeTrace()

	var m *metrics.Metrics
	if cfg.Web.Metrics {
		m = metrics.New(true)
	}

	instance := discovery.InstanceName(cfg.Web.ServiceName)
	adv := discovery.NewAdvertiser(discovery.AdvertiserConfig{})
	srv, err := NewServer(ServerConfig{
		Addr:    cfg.Web.Addr,
		Version: version.String(),
		Engine: collection.Config{
			Store:  store,
			Logger: logger,
			Trace:  engineTrace,
		},
		Interval: cfg.UI.FrameInterval,
		Metrics:  m,
		Browse:   discovery.Browse,
		Instance: instance,
		OnCount: func(n int) {
			if err := adv.SetTimers(n); err != nil && !errors.Is(err, discovery.ErrNotAdvertising) {
				logger.Warn("updating mDNS announcement failed", "error", err)
			}
		},
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}

	if cfg.Web.Advertise {
		info := discovery.Info{
			Instance: instance,
			Port:     listenPort(cfg.Web.Addr),
			Version:  version.Current().String(),
			Path:     "/",
			Timers:   srv.StopwatchCount(),
		}
		if err := adv.Advertise(info); err != nil {
			logger.Warn("mDNS announcement failed", "error", err)
		} else {
			logger.Info("announced via mDNS", "instance", info.Instance, "port", info.Port)
			defer adv.Stop()
		}
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting multiwatch web", "url", "http://"+cfg.Web.Addr, "state", cfg.State.Backend)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		srv.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown incomplete", "error", err)
		}
	}
	return 0
}

// loadConfig layers the config file, environment and explicitly set flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, err
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	if *state != "" {
		cfg.State.Backend = *state
	}
	if *statePath != "" {
		cfg.State.Path = *statePath
	}
	if *interval != 0 {
		cfg.UI.FrameInterval = *interval
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *trace != "" {
		cfg.Log.Trace = *trace
	}
	if *advertise {
		cfg.Web.Advertise = true
	}
	if *name != "" {
		cfg.Web.ServiceName = *name
	}
	return cfg, cfg.Validate()
}

func runDiscover(ctx context.Context) int {
	services, err := discovery.Browse(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: discovery failed: %v\n", err)
		return 1
	}
	if len(services) == 0 {
		fmt.Println("No multiwatch instances found.")
		return 0
	}
	for _, svc := range services {
		fmt.Printf("%-24s http://%s:%d%s  (%d stopwatches, v%s)\n",
			svc.Instance, svc.Host, svc.Port, svc.Path, svc.Timers, svc.Version)
	}
	return 0
}

// listenPort extracts the port from a listen address.
func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, _ := strconv.Atoi(portStr)
	return port
}
