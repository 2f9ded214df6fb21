package runtime

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
	"github.com/yndnr/multiagent-go/pkg/message"
	"github.com/yndnr/multiagent-go/pkg/shared"
)

// Manager runs one simulation against one presentation. A Manager runs
// once; create a new one for every run.
type Manager[C, S, Cmd, Ev any] struct {
	factory Factory[C, S, Cmd, Ev]
	initial C
	opts    Options[S]
	log     logger.Logger

	state atomic.Int32
	stop  atomic.Bool
	ticks atomic.Uint64

	snapshot *shared.Cell[S]
	config   *shared.Cell[C]

	commandTx *message.Sender[Cmd]
	commandRx *message.Receiver[Cmd]
	eventTx   *message.Sender[Ev]
	eventRx   *message.Receiver[Ev]

	emit           func(Cmd)
	commandDropped uint64

	done      chan struct{}
	workerErr error
}

// New creates a manager. The simulation is built by factory when Run
// is called.
func New[C, S, Cmd, Ev any](factory Factory[C, S, Cmd, Ev], initial C, opts Options[S]) *Manager[C, S, Cmd, Ev] {
	opts = opts.withDefaults()

	m := &Manager[C, S, Cmd, Ev]{
		factory:  factory,
		initial:  initial,
		opts:     opts,
		log:      opts.Logger.With("run_id", opts.RunID),
		snapshot: shared.New(opts.InitialSnapshot),
		config:   shared.New(initial),
		done:     make(chan struct{}),
	}

	m.commandTx, m.commandRx = message.New[Cmd](opts.ChannelCapacity).Split()
	m.eventTx, m.eventRx = message.New[Ev](opts.ChannelCapacity).Split()
	m.emit = m.commandTx.SendLossy

	opts.Metrics.WatchChannel(metric.DirectionCommands, m.commandTx.Pending, m.commandTx.Capacity)
	opts.Metrics.WatchChannel(metric.DirectionEvents, m.eventTx.Pending, m.eventTx.Capacity)

	return m
}

// Run builds the simulation, starts the worker and runs host on the
// calling goroutine. It returns after the worker has stopped or the
// shutdown timeout has elapsed.
//
// The host context is cancelled when ctx is cancelled or when the
// worker ends on its own after a panic or a failed step.
func (m *Manager[C, S, Cmd, Ev]) Run(ctx context.Context, pres Presentation[C, S, Cmd, Ev], host Host) error {
	if !m.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return domain.ErrAlreadyRunning
	}

	sim, err := m.factory(m.initial)
	if err != nil {
		m.setState(StateFailed)
		m.log.Error("failed to create simulation", "error", err)
		return domain.ErrSimulationFailed.WithDetails("create simulation").WithCause(err)
	}

	hostCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.log.Info("runtime started",
		"frequency_hz", m.opts.FrequencyHz,
		"channel_capacity", m.opts.ChannelCapacity,
	)

	go m.work(sim, cancel)
	// A presentation panic unwinds through here; the worker must not
	// outlive it.
	defer m.stop.Store(true)

	hostErr := host.Run(hostCtx, func() { m.frame(pres) })
	if errors.Is(hostErr, context.Canceled) || errors.Is(hostErr, context.DeadlineExceeded) {
		hostErr = nil
	}

	m.setState(StateStopping)
	m.stop.Store(true)
	workerErr := m.wait()

	final := StateStopped
	switch {
	case domain.IsDomainError(workerErr, domain.ErrSimulationPanic.Code):
		final = StatePanicked
	case domain.IsDomainError(workerErr, domain.ErrShutdownTimeout.Code):
		final = StateTimedOut
	case workerErr != nil:
		final = StateFailed
	case hostErr != nil:
		final = StatePresentationFailed
	}
	m.setState(final)

	if hostErr != nil {
		hostErr = domain.ErrPresentation.WithCause(hostErr)
	}

	m.log.Info("runtime stopped", "state", final.String(), "ticks", m.ticks.Load())

	switch {
	case hostErr == nil:
		return workerErr
	case workerErr == nil:
		return hostErr
	default:
		return errors.Join(workerErr, hostErr)
	}
}

// wait blocks until the worker finished or the shutdown timeout elapsed.
// A worker that does not finish is left running and reported.
func (m *Manager[C, S, Cmd, Ev]) wait() error {
	timer := time.NewTimer(m.opts.ShutdownTimeout)
	defer timer.Stop()

	select {
	case <-m.done:
		return m.workerErr
	case <-timer.C:
		m.log.Error("simulation did not stop in time", "timeout", m.opts.ShutdownTimeout)
		return domain.ErrShutdownTimeout.WithDetails("timeout " + m.opts.ShutdownTimeout.String())
	}
}

// frame runs one presentation frame on the host goroutine.
func (m *Manager[C, S, Cmd, Ev]) frame(pres Presentation[C, S, Cmd, Ev]) {
	if events := m.eventRx.Drain(); len(events) > 0 {
		pres.OnEvents(events)
	}

	g := m.snapshot.Load()
	for _, observe := range m.opts.Observers {
		observe(g)
	}

	if cfg, changed := pres.Draw(g, m.emit); changed {
		m.config.Store(cfg)
	}

	if d := m.commandTx.Dropped(); d > m.commandDropped {
		m.opts.Metrics.AddDropped(metric.DirectionCommands, d-m.commandDropped)
		m.commandDropped = d
	}
	m.opts.Metrics.ObserveFrame()
}

func (m *Manager[C, S, Cmd, Ev]) setState(s State) {
	m.state.Store(int32(s))
}

// State returns the current lifecycle state.
func (m *Manager[C, S, Cmd, Ev]) State() State {
	return State(m.state.Load())
}

// RunID returns the identifier used in logs for this run.
func (m *Manager[C, S, Cmd, Ev]) RunID() string {
	return m.opts.RunID
}

// Ticks returns how many ticks the worker completed.
func (m *Manager[C, S, Cmd, Ev]) Ticks() uint64 {
	return m.ticks.Load()
}

// Snapshot returns the latest published snapshot.
func (m *Manager[C, S, Cmd, Ev]) Snapshot() shared.Guard[S] {
	return m.snapshot.Load()
}

// Config returns the latest published configuration.
func (m *Manager[C, S, Cmd, Ev]) Config() shared.Guard[C] {
	return m.config.Load()
}
