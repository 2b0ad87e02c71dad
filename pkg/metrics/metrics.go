package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/multiwatch/multiwatch-go/pkg/collection"
)

const namespace = "multiwatch"

// Metrics implements collection.Metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	actions *prometheus.CounterVec
	prompts *prometheus.CounterVec
	saves   *prometheus.CounterVec
	frames  prometheus.Counter
	loop    prometheus.Gauge
	records prometheus.Gauge
	running prometheus.Gauge
}

// New creates and registers the engine metrics. When withRuntime is set the
// Go runtime and process collectors are registered as well.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "actions_total",
			Help:      "Number of dispatched messages by action.",
		}, []string{"action"}),
		prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "confirm",
			Name:      "prompts_resolved_total",
			Help:      "Number of confirmation prompts resolved by outcome.",
		}, []string{"outcome"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "persistence",
			Name:      "saves_total",
			Help:      "Number of snapshot saves by result.",
		}, []string{"result"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runloop",
			Name:      "frames_total",
			Help:      "Number of redraw frames rendered.",
		}),
		loop: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "runloop",
			Name:      "active",
			Help:      "1 while the redraw loop is running.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "stopwatches",
			Help:      "Number of stopwatches.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "stopwatches_running",
			Help:      "Number of running stopwatches.",
		}),
	}

	m.registry.MustRegister(m.actions, m.prompts, m.saves, m.frames, m.loop, m.records, m.running)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAction counts a dispatched message.
func (m *Metrics) ObserveAction(action string) {
	m.actions.WithLabelValues(action).Inc()
}

// ObservePrompt counts a resolved prompt.
func (m *Metrics) ObservePrompt(outcome string) {
	m.prompts.WithLabelValues(outcome).Inc()
}

// ObserveSave counts a save attempt.
func (m *Metrics) ObserveSave(_ string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(result).Inc()
}

// ObserveFrame counts a rendered frame.
func (m *Metrics) ObserveFrame() {
	m.frames.Inc()
}

// SetLoopActive records the loop state.
func (m *Metrics) SetLoopActive(active bool) {
	if active {
		m.loop.Set(1)
		return
	}
	m.loop.Set(0)
}

// SetRecords records the stopwatch counts.
func (m *Metrics) SetRecords(total, running int) {
	m.records.Set(float64(total))
	m.running.Set(float64(running))
}

var _ collection.Metrics = (*Metrics)(nil)
