package scenario

import (
	"context"
	"time"

	"github.com/yndnr/multiagent-go/internal/runtime"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
	"github.com/yndnr/multiagent-go/pkg/shared"
)

// Host modes.
const (
	HostTerminal = "terminal"
	HostHeadless = "headless"
)

// Scenario is a named simulation with its presentations.
type Scenario interface {
	Name() string
	Description() string
	Run(ctx context.Context, env Env) error
}

// Renderer is implemented by scenarios that can turn a recorded
// snapshot back into text for replay.
type Renderer interface {
	Render(raw []byte, width, height int) (string, error)
}

// Recorder persists snapshots. Implementations must be safe to call from
// the presentation goroutine.
type Recorder interface {
	Record(version uint64, snapshot any) error
}

// Params are the scenario-level settings from configuration.
type Params struct {
	Balls  int
	Width  float64
	Height float64
	Seed   uint64
}

// HostParams select and tune the presentation host.
type HostParams struct {
	Mode      string
	FPS       int
	MaxFrames int
	AltScreen bool
}

// Env is everything a scenario needs for one run.
type Env struct {
	Params Params
	Host   HostParams

	FrequencyHz     int
	ChannelCapacity int
	ShutdownTimeout time.Duration
	RunID           string

	Logger   logger.Logger
	Metrics  *metric.Registry
	Recorder Recorder
}

// Options converts the env into runtime options for snapshot type S.
// When a recorder is set, every new snapshot version is recorded.
func Options[S any](env Env, initial S) runtime.Options[S] {
	log := env.Logger
	if log == nil {
		log = logger.Nop()
	}

	opts := runtime.Options[S]{
		FrequencyHz:     env.FrequencyHz,
		ChannelCapacity: env.ChannelCapacity,
		ShutdownTimeout: env.ShutdownTimeout,
		InitialSnapshot: initial,
		RunID:           env.RunID,
		Logger:          log,
		Metrics:         env.Metrics,
	}
	if env.Recorder != nil {
		opts.Observers = append(opts.Observers, RecordObserver[S](env.Recorder, env.Metrics, log))
	}
	return opts
}

// RecordObserver records each snapshot version once. Frames that see a
// version already recorded are skipped.
func RecordObserver[S any](rec Recorder, metrics *metric.Registry, log logger.Logger) runtime.Observer[S] {
	var last uint64
	failed := false

	return func(g shared.Guard[S]) {
		v := g.Version()
		if v == last {
			return
		}
		last = v

		if err := rec.Record(v, g.Ptr()); err != nil {
			if !failed {
				log.Error("failed to record snapshot", "version", v, "error", err)
				failed = true
			}
			return
		}
		metrics.ObserveRecorded()
	}
}
