// Package shutdown provides graceful shutdown for multiagent.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-bounded cleanup hooks run in reverse registration order
//   - Explicit shutdown once the runtime has returned
//
// Usage:
//
//	ctx, cancel := shutdown.WithSignals(context.Background())
//	defer cancel()
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(engine.Close)
//	err := run(ctx) // returns once ctx is cancelled
//	err = errors.Join(err, h.Shutdown())
package shutdown
