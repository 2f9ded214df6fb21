package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/multiagent-go/internal/telemetry/logger"
)

// Context keys for request-scoped values.
type contextKey string

const (
	// ContextKeyRequestID is the context key for request ID.
	ContextKeyRequestID contextKey = "request_id"

	// ContextKeyStartTime is the context key for request start time.
	ContextKeyStartTime contextKey = "start_time"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together. The first middleware is
// the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a unique request ID to each request.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check for existing request ID in header
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = "req-" + ulid.Make().String()
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
			ctx = context.WithValue(ctx, ContextKeyStartTime, time.Now())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit rejects requests above requestsPerSecond across all clients.
func RateLimit(requestsPerSecond int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"code":    "MA-HTTP-4290",
					"message": "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog logs every request with its status and duration.
func AccessLog(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			startTime, ok := r.Context().Value(ContextKeyStartTime).(time.Time)
			if !ok {
				startTime = time.Now()
			}

			attrs := []any{
				"request_id", GetRequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(startTime).Milliseconds(),
			}

			switch {
			case wrapped.statusCode >= 500:
				log.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				log.Warn("request completed with client error", attrs...)
			default:
				log.Debug("request completed", attrs...)
			}
		})
	}
}

// Recover recovers from panics and returns 500 error.
func Recover(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						"request_id", GetRequestIDFromContext(r.Context()),
						"error", err,
						"path", r.URL.Path,
					)

					w.Header().Set("X-Error-Code", "MA-HTTP-5000")
					writeJSON(w, http.StatusInternalServerError, map[string]string{
						"code":    "MA-HTTP-5000",
						"message": "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// GetRequestIDFromContext returns the request ID set by RequestID.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
