package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "multiagent"

// Drop directions used as the "direction" label.
const (
	DirectionEvents   = "events"
	DirectionCommands = "commands"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Simulation loop
	TicksTotal   prometheus.Counter
	TickDuration prometheus.Histogram
	TickOverruns prometheus.Counter

	// Presentation loop
	FramesTotal prometheus.Counter

	// Messaging and snapshots
	MessagesDropped *prometheus.CounterVec
	SnapshotVersion prometheus.Gauge

	// Recorder
	RecorderFrames prometheus.Counter

	channels *ChannelCollector
}

// NewRegistry creates a registry with the runtime collectors plus the Go
// and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks executed",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "tick_duration_seconds",
			Help:      "Time spent inside one simulation tick",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .02, .033, .05, .1, .25},
		}),
		TickOverruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "tick_overruns_total",
			Help:      "Ticks that took longer than the tick period",
		}),
		FramesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "presentation",
			Name:      "frames_total",
			Help:      "Total number of presentation frames drawn",
		}),
		MessagesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "channel",
			Name:      "messages_dropped_total",
			Help:      "Messages discarded by lossy sends",
		}, []string{"direction"}),
		SnapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "snapshot_version",
			Help:      "Version of the most recently published snapshot",
		}),
		RecorderFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "frames_total",
			Help:      "Snapshots persisted by the recorder",
		}),

		channels: NewChannelCollector(),
	}

	r.registry.MustRegister(
		r.TicksTotal,
		r.TickDuration,
		r.TickOverruns,
		r.FramesTotal,
		r.MessagesDropped,
		r.SnapshotVersion,
		r.RecorderFrames,
		r.channels,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler serves the global registry in Prometheus text format.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler serves this registry in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// ObserveTick records one simulation tick.
func (r *Registry) ObserveTick(spent, period time.Duration) {
	if r == nil {
		return
	}
	r.TicksTotal.Inc()
	r.TickDuration.Observe(spent.Seconds())
	if spent > period {
		r.TickOverruns.Inc()
	}
}

// ObserveFrame records one presentation frame.
func (r *Registry) ObserveFrame() {
	if r == nil {
		return
	}
	r.FramesTotal.Inc()
}

// AddDropped adds n lossy-send drops for direction.
func (r *Registry) AddDropped(direction string, n uint64) {
	if r == nil || n == 0 {
		return
	}
	r.MessagesDropped.WithLabelValues(direction).Add(float64(n))
}

// SetSnapshotVersion records the latest published snapshot version.
func (r *Registry) SetSnapshotVersion(v uint64) {
	if r == nil {
		return
	}
	r.SnapshotVersion.Set(float64(v))
}

// ObserveRecorded records one persisted snapshot.
func (r *Registry) ObserveRecorded() {
	if r == nil {
		return
	}
	r.RecorderFrames.Inc()
}

// WatchChannel exposes the occupancy of a named channel.
func (r *Registry) WatchChannel(name string, pending, capacity func() int) {
	if r == nil {
		return
	}
	r.channels.Watch(name, pending, capacity)
}
