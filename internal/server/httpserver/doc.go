// Package httpserver serves the operational HTTP endpoints of a run:
// Prometheus metrics, a health check and a JSON status document.
//
// It uses net/http from the standard library with a small middleware
// chain (request ID, panic recovery, access log, rate limit).
package httpserver
