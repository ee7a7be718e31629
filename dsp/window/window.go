package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// Type identifies an apodization window.
type Type int

const (
	TypeHanning Type = iota
	TypeHamming
	TypeBlackman
	TypeNuttall
	// TypeNone applies no window; samples pass through unchanged.
	TypeNone
)

var typeNames = [...]string{
	TypeHanning:  "Hanning",
	TypeHamming:  "Hamming",
	TypeBlackman: "Blackman",
	TypeNuttall:  "Nuttall",
	TypeNone:     "None",
}

// Cosine-sum coefficients a_k of w(x) = sum a_k*cos(2*pi*k*x).
var (
	hanningCoeffs  = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	// Blackman is the 4-term minimum-sidelobe form (Blackman-Harris), not
	// the 3-term 0.42/0.5/0.08 textbook window.
	blackmanCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	nuttallCoeffs  = []float64{0.355768, -0.487396, 0.144232, -0.012604}
)

// Types returns every window type in declaration order.
func Types() []Type {
	return []Type{TypeHanning, TypeHamming, TypeBlackman, TypeNuttall, TypeNone}
}

// String returns the display name of t, e.g. "Hanning".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// ParseType parses a window name case-insensitively. "hann" is accepted as an
// alias for Hanning. Unknown names return an error wrapping [ErrUnknownType].
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hanning", "hann":
		return TypeHanning, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	case "nuttall":
		return TypeNuttall, nil
	case "none":
		return TypeNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name                string
	ENBW                float64
	HighestSidelobe     float64
	CoherentGain        float64
	CoherentGainSquared float64
}

var metadataByType = map[Type]Metadata{
	TypeHanning:  {Name: "Hanning", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5, CoherentGainSquared: 0.25},
	TypeHamming:  {Name: "Hamming", ENBW: 1.3628, HighestSidelobe: -42.7, CoherentGain: 0.54, CoherentGainSquared: 0.2916},
	TypeBlackman: {Name: "Blackman", ENBW: 2.0044, HighestSidelobe: -92.0, CoherentGain: 0.35875, CoherentGainSquared: 0.128702},
	TypeNuttall:  {Name: "Nuttall", ENBW: 2.0212, HighestSidelobe: -93.3, CoherentGain: 0.355768, CoherentGainSquared: 0.126571},
	TypeNone:     {Name: "None", ENBW: 1, HighestSidelobe: -13.3, CoherentGain: 1, CoherentGainSquared: 1},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
//
// TypeNone and non-positive lengths yield nil, which callers treat as an
// implicit all-ones window.
func Generate(t Type, length int, opts ...Option) []float64 {
	coeffs := cosineCoeffs(t)
	if length <= 0 || coeffs == nil {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = cosineFromCoeffs(samplePosition(i, length, cfg.periodic), coeffs)
	}

	return out
}

// GenerateT is Generate converted to the sample precision F.
func GenerateT[F core.Float](t Type, length int, opts ...Option) []F {
	w := Generate(t, length, opts...)
	if w == nil {
		return nil
	}

	out := make([]F, len(w))
	for i, v := range w {
		out[i] = F(v)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := floats.Sum(coeffs)
	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * floats.Dot(coeffs, coeffs) / (sum * sum), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace[F core.Float](samples, coeffs []F) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	if s, ok := any(samples).([]float64); ok {
		vecmath.MulBlockInPlace(s, any(coeffs).([]float64))
		return nil
	}

	for i, c := range coeffs {
		samples[i] *= c
	}

	return nil
}

func cosineCoeffs(t Type) []float64 {
	switch t {
	case TypeHanning:
		return hanningCoeffs
	case TypeHamming:
		return hammingCoeffs
	case TypeBlackman:
		return blackmanCoeffs
	case TypeNuttall:
		return nuttallCoeffs
	default:
		return nil
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
