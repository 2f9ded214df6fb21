// Package benchmark holds benchmarks for the messaging, snapshot and
// recording paths that run once per tick or once per frame.
package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/multiagent-go/internal/scenario/bouncingballs"
)

// BallCounts defines the ball counts for simulation benchmarks.
var BallCounts = []int{10, 100, 1000, 10000}

// Capacities defines the channel capacities for messaging benchmarks.
var Capacities = []int{16, 100, 1024}

// newSimulation builds a deterministic simulation with count balls.
func newSimulation(count int) *bouncingballs.Simulation {
	return bouncingballs.NewSimulation(bouncingballs.Config{
		BallCount: count,
		Width:     1920,
		Height:    1080,
	}, 42)
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/1024/1024, prefix+"_heap_MB")
}

func name(label string, n int) string {
	return fmt.Sprintf("%s_%d", label, n)
}
