package runtime

import (
	"time"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
)

const (
	// DefaultFrequencyHz is the simulation tick rate.
	DefaultFrequencyHz = 30

	// DefaultChannelCapacity bounds both message channels.
	DefaultChannelCapacity = 100

	// DefaultShutdownTimeout bounds the wait for the worker after the
	// host returned.
	DefaultShutdownTimeout = 5 * time.Second
)

// Options configures a Manager. Zero values select the defaults.
type Options[S any] struct {
	FrequencyHz     int
	ChannelCapacity int
	ShutdownTimeout time.Duration

	// InitialSnapshot is visible to the presentation until the first
	// tick publishes.
	InitialSnapshot S

	// RunID tags logs. NewRunID is used when empty.
	RunID string

	Logger    logger.Logger
	Metrics   *metric.Registry
	Observers []Observer[S]
}

func (o Options[S]) withDefaults() Options[S] {
	if o.FrequencyHz <= 0 {
		o.FrequencyHz = DefaultFrequencyHz
	}
	if o.ChannelCapacity <= 0 {
		o.ChannelCapacity = DefaultChannelCapacity
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	if o.RunID == "" {
		o.RunID = NewRunID()
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

// Period returns the tick period for hz. A non-positive hz selects
// DefaultFrequencyHz.
func Period(hz int) time.Duration {
	if hz <= 0 {
		hz = DefaultFrequencyHz
	}
	return time.Second / time.Duration(hz)
}

// Budget returns how long to sleep after a tick that took spent. Ticks
// that overran the period are not caught up.
func Budget(period, spent time.Duration) time.Duration {
	if spent >= period {
		return 0
	}
	return period - spent
}
