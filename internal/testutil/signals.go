// Package testutil holds deterministic signals and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// Sine generates a deterministic sine wave at freqHz.
func Sine[F core.Float](freqHz, sampleRate, amplitude float64, length int) []F {
	out := make([]F, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// BinSine generates a sine that completes exactly bin cycles every
// windowSize samples, so its energy lands in a single transform bin.
func BinSine[F core.Float](bin, windowSize int, amplitude float64, length int) []F {
	return Sine[F](float64(bin), float64(windowSize), amplitude, length)
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise[F core.Float](seed int64, amplitude float64, length int) []F {
	out := make([]F, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Ramp returns 0, 1, ..., length-1.
func Ramp[F core.Float](length int) []F {
	out := make([]F, length)
	for i := range out {
		out[i] = F(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC[F core.Float](value F, length int) []F {
	out := make([]F, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// DFT is a direct O(N^2) forward transform used as a reference for the FFT
// backends.
func DFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for i, v := range x {
			sum += complex(v, 0) * cmplx.Rect(1, -2*math.Pi*float64(k*i)/float64(n))
		}
		out[k] = sum
	}
	return out
}
