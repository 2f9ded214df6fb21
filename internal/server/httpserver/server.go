package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
	done       chan struct{}
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
		done:   make(chan struct{}),
	}
}

// Start binds the listen address and serves in the background. It
// returns the bound address, which differs from the configured one when
// the port is 0.
func (s *Server) Start() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		close(s.done)
		return nil, fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		defer close(s.done)
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
	return ln.Addr(), nil
}

// Shutdown gracefully shuts down the server and waits for Start's
// goroutine to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	select {
	case <-s.done:
	case <-ctx.Done():
	}
	return err
}
