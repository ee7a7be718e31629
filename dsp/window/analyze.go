package window

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Analysis holds numerically computed spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// HighestSidelobedB is the highest sidelobe level relative to DC in dB.
	HighestSidelobedB float64
	// FirstMinimumBins is the first null of the main lobe in bins.
	FirstMinimumBins float64
	// ScallopLossdB is the response at half a bin offset relative to DC.
	ScallopLossdB float64
}

// AnalyzeType analyzes the window t of the given length. TypeNone is
// analyzed as the rectangular window it is equivalent to.
func AnalyzeType(t Type, length int) Analysis {
	if length <= 0 {
		return Analysis{}
	}

	coeffs := Generate(t, length)
	if coeffs == nil {
		coeffs = make([]float64, length)
		for i := range coeffs {
			coeffs[i] = 1
		}
	}

	return Analyze(coeffs)
}

// Analyze computes spectral properties of the given window coefficients by
// evaluating the window's DTFT numerically.
func Analyze(coeffs []float64) Analysis {
	if len(coeffs) == 0 {
		return Analysis{}
	}

	r := response{coeffs: coeffs, bins: float64(len(coeffs))}

	dc := r.powerAt(0)
	if dc == 0 {
		return Analysis{}
	}

	enbw, err := EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return Analysis{}
	}

	firstMin := r.firstMinimum()

	return Analysis{
		CoherentGain:      floats.Sum(coeffs) / r.bins,
		ENBW:              enbw,
		Bandwidth3dB:      r.halfPowerWidth(dc),
		HighestSidelobedB: r.highestSidelobe(dc, firstMin),
		FirstMinimumBins:  firstMin,
		ScallopLossdB:     powerDB(r.powerAt(0.5), dc),
	}
}

// response evaluates |W(f)|^2 with f measured in bins.
type response struct {
	coeffs []float64
	bins   float64
}

func (r response) powerAt(bin float64) float64 {
	w := 2 * math.Pi * bin / r.bins

	re, im := 0.0, 0.0
	for k, c := range r.coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}

	return re*re + im*im
}

// halfPowerWidth bisects for the -3 dB point on [0, N/2] bins.
func (r response) halfPowerWidth(dc float64) float64 {
	lo, hi := 0.0, r.bins/2
	for range 80 {
		mid := (lo + hi) / 2
		if r.powerAt(mid)/dc > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 2 * lo
}

// firstMinimum scans outward from DC in 1/8-bin steps, then refines the
// first local minimum with a golden-section search.
func (r response) firstMinimum() float64 {
	const step = 0.125

	nyquist := r.bins / 2
	dc := r.powerAt(0)
	// Flat-topped main lobes must drop below 10% of DC before a turn counts.
	threshold := dc * 0.1

	coarse := step
	prev := dc
	for bin := step; bin < nyquist; bin += step {
		v := r.powerAt(bin)
		if prev < threshold && v > prev {
			coarse = bin - step
			break
		}
		prev = v
	}

	a := math.Max(coarse-2*step, 0)
	b := math.Min(coarse+2*step, nyquist)

	const phi = 0.6180339887498949
	for range 80 {
		c := b - phi*(b-a)
		d := a + phi*(b-a)
		if r.powerAt(c) < r.powerAt(d) {
			b = d
		} else {
			a = c
		}
	}

	return (a + b) / 2
}

func (r response) highestSidelobe(dc, from float64) float64 {
	const step = 0.125

	peak, peakBin := 0.0, from
	for bin := from; bin < r.bins/2; bin += step {
		if v := r.powerAt(bin); v > peak {
			peak, peakBin = v, bin
		}
	}

	for bin := math.Max(peakBin-step, 0); bin <= peakBin+step; bin += step / 32 {
		peak = math.Max(peak, r.powerAt(bin))
	}

	return powerDB(peak, dc)
}

func powerDB(p, ref float64) float64 {
	if p <= 0 || ref <= 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(p/ref)
}
