package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler handles graceful shutdown.
type Handler struct {
	timeout time.Duration
	hooks   []func(context.Context) error
	mu      sync.Mutex
	once    sync.Once
	err     error
	done    chan struct{}
}

// NewHandler creates a new shutdown handler.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		hooks:   make([]func(context.Context) error, 0),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Shutdown runs the hooks in reverse order of registration under the
// handler timeout. Hooks run at most once; later calls return the first
// result.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]func(context.Context) error, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		var lastErr error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i](ctx); err != nil {
				lastErr = err
			}
		}

		h.err = lastErr
		close(h.done)
	})
	return h.err
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// WithSignals returns a context cancelled on SIGINT or SIGTERM.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
