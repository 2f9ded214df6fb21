// Package metric provides Prometheus metrics for multiagent.
//
//   - prometheus.go: registry, runtime collectors and the /metrics handler
//   - collector.go: channel occupancy collector
//
// Metrics include:
//
//   - Tick counts, durations and overruns of the simulation loop
//   - Presentation frame counts
//   - Lossy-send drops per direction
//   - Published snapshot version
//   - Pending messages per channel
//
// All methods on a nil *Registry are no-ops so the runtime can be used
// without metrics.
package metric
