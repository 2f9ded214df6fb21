package runtime

import (
	"context"
	"time"

	"github.com/yndnr/multiagent-go/pkg/shared"
)

// Simulation advances the model by one tick.
//
// C is the configuration published by the presentation, S the snapshot
// handed back to it, Cmd a presentation-to-simulation message and Ev a
// simulation-to-presentation message. Step is only ever called from the
// worker goroutine.
type Simulation[C, S, Cmd, Ev any] interface {
	Step(cfg C, commands []Cmd, dt time.Duration) (S, []Ev, error)
}

// Factory builds the simulation from the initial configuration. It runs
// on the caller's goroutine before the worker starts.
type Factory[C, S, Cmd, Ev any] func(initial C) (Simulation[C, S, Cmd, Ev], error)

// Presentation consumes snapshots and events on the caller's goroutine.
type Presentation[C, S, Cmd, Ev any] interface {
	// OnEvents receives the events drained at the start of a frame.
	OnEvents(events []Ev)

	// Draw renders the snapshot. emit queues a command for the
	// simulation and drops it when the queue is full. When the returned
	// bool is true the returned configuration is published.
	Draw(snapshot shared.Guard[S], emit func(Cmd)) (C, bool)
}

// Host drives frames. Run calls frame once per frame on one goroutine
// and returns when the presentation is done or ctx is cancelled.
type Host interface {
	Run(ctx context.Context, frame func()) error
}

// HostFunc adapts a function to Host.
type HostFunc func(ctx context.Context, frame func()) error

func (f HostFunc) Run(ctx context.Context, frame func()) error { return f(ctx, frame) }

// Observer sees the snapshot guard of every frame before Draw.
type Observer[S any] func(snapshot shared.Guard[S])
