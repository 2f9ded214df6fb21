// Package main provides the entry point for multiagent.
//
// multiagent runs a simulation on a fixed-frequency worker goroutine
// while the main goroutine drives the terminal or headless presentation:
//
//   - Run a scenario in the terminal or headless
//   - Record runs to a local badger store and replay them
//   - Serve Prometheus metrics and health checks over HTTP
//
// Usage:
//
//	multiagent run --scenario bouncing-balls
//	multiagent run --mode headless --frames 600 --metrics-addr :9090
//	multiagent replay list -o json
//	multiagent replay play --last
package main
