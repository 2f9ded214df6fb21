package runtime

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/multiagent-go/internal/core/domain"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
)

// work is the worker goroutine. Panics are recovered only here, at the
// top of the goroutine, so a panic ends the simulation for good.
func (m *Manager[C, S, Cmd, Ev]) work(sim Simulation[C, S, Cmd, Ev], cancelHost context.CancelFunc) {
	defer close(m.done)
	defer func() {
		if r := recover(); r != nil {
			m.workerErr = domain.ErrSimulationPanic.WithDetails(fmt.Sprintf("%v\n%s", r, debug.Stack()))
			m.log.Error("simulation panicked", "panic", fmt.Sprint(r))
			cancelHost()
		}
	}()

	var (
		period  = Period(m.opts.FrequencyHz)
		warn    = rate.NewLimiter(rate.Every(time.Second), 1)
		last    = time.Now()
		dropped uint64
	)

	for !m.stop.Load() {
		start := time.Now()
		dt := start.Sub(last)
		last = start

		commands := m.commandRx.Drain()
		cfg := m.config.Load()

		snap, events, err := sim.Step(cfg.Value(), commands, dt)
		if err != nil {
			m.workerErr = domain.ErrSimulationFailed.WithDetails(fmt.Sprintf("tick %d", m.ticks.Load()+1)).WithCause(err)
			m.log.Error("simulation step failed", "error", err)
			cancelHost()
			return
		}

		m.snapshot.Store(snap)
		for _, ev := range events {
			m.eventTx.SendLossy(ev)
		}
		m.ticks.Add(1)

		spent := time.Since(start)
		m.opts.Metrics.ObserveTick(spent, period)
		m.opts.Metrics.SetSnapshotVersion(m.snapshot.Version())

		if d := m.eventTx.Dropped(); d > dropped {
			m.opts.Metrics.AddDropped(metric.DirectionEvents, d-dropped)
			if warn.Allow() {
				m.log.Warn("events dropped, presentation is falling behind", "dropped_total", d)
			}
			dropped = d
		}
		if spent > period && warn.Allow() {
			m.log.Warn("tick overran period", "spent", spent, "period", period)
		}

		time.Sleep(Budget(period, spent))
	}

	m.log.Debug("simulation stopped", "ticks", m.ticks.Load())
}
