package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
	"github.com/yndnr/multiagent-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics is served on /metrics. Nil serves the global registry.
	Metrics *metric.Registry

	// Status builds the /status document. Nil disables the route.
	Status func() any

	// Logger for request logging.
	Logger logger.Logger

	// RateLimit is the global request rate per second. Zero disables it.
	RateLimit int
}

// DefaultRouterConfig returns a router config with default values.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:    logger.Nop(),
		RateLimit: 50,
	}
}

// NewRouter creates the router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = metric.Global()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Status != nil {
		mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, cfg.Status())
		})
	}

	middlewares := []Middleware{RequestID(), Recover(log), AccessLog(log)}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}
	return Chain(mux, middlewares...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
