package core

import "math"

// Float is the sample precision an analysis pipeline is instantiated with.
type Float interface {
	~float32 | ~float64
}

// Log10Positive returns log10(v), clamped to 0 where the logarithm is
// negative or undefined.
//
// Magnitudes in [0, 1) (including exactly 0), negative inputs and NaN all map
// to 0. All dynamic range below unit magnitude is discarded; callers that
// need it should take the magnitude and apply their own scale.
func Log10Positive[F Float](v F) F {
	x := float64(v)

	l := math.Log10(x)
	if l < 0 || math.IsNaN(l) {
		return 0
	}

	// math.Log10 is not exact at powers of ten.
	if r := math.Round(l); r != l && math.Pow(10, r) == x {
		l = r
	}

	return F(l)
}
