package buffer

import "testing"

func BenchmarkRingStream(b *testing.B) {
	const (
		window = 1024
		step   = 256
	)

	r := NewRing[float64](window)
	in := make([]float64, 512)
	frame := make([]float64, window)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.PushBack(in)
		for r.Len() >= window {
			r.PeekFront(frame)
			r.DropFront(step)
		}
	}
}
