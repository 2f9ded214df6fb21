package benchmark

import (
	"testing"

	"github.com/yndnr/multiagent-go/pkg/shared"
)

type frame struct {
	Positions []float64
	Tick      uint64
}

// BenchmarkCellLoad benchmarks readers loading the current snapshot.
func BenchmarkCellLoad(b *testing.B) {
	c := shared.New(frame{Positions: make([]float64, 1000)})

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g := c.Load()
			_ = g.Ptr().Tick
		}
	})
}

// BenchmarkCellStore benchmarks publishing a new snapshot per tick.
func BenchmarkCellStore(b *testing.B) {
	c := shared.New(frame{})
	positions := make([]float64, 1000)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Store(frame{Positions: positions, Tick: uint64(i)})
	}
}

// BenchmarkCellStore_WithReaders benchmarks publishing while readers
// hold guards on older versions.
func BenchmarkCellStore_WithReaders(b *testing.B) {
	c := shared.New(frame{})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				_ = c.Load().Version()
			}
		}
	}()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Store(frame{Tick: uint64(i)})
	}
}
