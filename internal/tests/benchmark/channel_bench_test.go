package benchmark

import (
	"sync"
	"testing"

	"github.com/yndnr/multiagent-go/pkg/message"
)

// BenchmarkSendDrain benchmarks one tick's worth of lossy sends followed
// by a drain, as the worker and presentation do every frame.
func BenchmarkSendDrain(b *testing.B) {
	for _, capacity := range Capacities {
		b.Run(name("capacity", capacity), func(b *testing.B) {
			tx, rx := message.New[int](capacity).Split()

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				for j := 0; j < capacity; j++ {
					tx.SendLossy(j)
				}
				if got := len(rx.Drain()); got != capacity {
					b.Fatalf("drained %d, want %d", got, capacity)
				}
			}
		})
	}
}

// BenchmarkSendLossy_Full benchmarks sends that are all dropped.
func BenchmarkSendLossy_Full(b *testing.B) {
	tx, _ := message.New[int](1).Split()
	tx.SendLossy(0)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tx.SendLossy(i)
	}
	b.StopTimer()

	if tx.Dropped() != uint64(b.N) {
		b.Fatalf("dropped %d, want %d", tx.Dropped(), b.N)
	}
}

// BenchmarkSend_Concurrent benchmarks cloned senders feeding one drainer.
func BenchmarkSend_Concurrent(b *testing.B) {
	tx, rx := message.New[int](1024).Split()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				rx.Drain()
			}
		}
	}()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		s := tx.Clone()
		defer s.Close()
		for pb.Next() {
			s.SendLossy(1)
		}
	})

	close(done)
	wg.Wait()
}
