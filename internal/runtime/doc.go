// Package runtime runs a fixed-rate simulation next to a presentation
// loop without either side blocking the other.
//
// A Manager owns exactly one worker goroutine. The worker ticks the
// Simulation at Options.FrequencyHz, publishes each snapshot into a
// shared.Cell and forwards events through a lossy bounded channel. The
// caller's goroutine runs the Host, which calls back once per frame; a
// frame drains events into the Presentation, draws the latest snapshot
// and publishes a new configuration when the presentation changed it.
//
// Shutdown starts when the host returns. The manager sets the stop flag,
// which the worker polls once per tick, and waits at most
// Options.ShutdownTimeout. A panic in the simulation is recovered at the
// top of the worker goroutine and reported as domain.ErrSimulationPanic.
//
//	m := runtime.New(factory, initialConfig, runtime.Options[Snapshot]{FrequencyHz: 60})
//	err := m.Run(ctx, presentation, host)
package runtime
