package stft

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform is a forward complex FFT of fixed length.
//
// Forward writes the unnormalized forward transform of src into dst. Both
// slices have length Len and do not alias. A Transform holds no stream
// state, so engines with the same window size may share one as long as they
// run on the same goroutine.
type Transform[C algofft.Complex] interface {
	Len() int
	Forward(dst, src []C) error
}

// NewPlan returns the default transform of length n.
//
// It builds an algo-fft plan and checks it once against gonum on a
// pseudo-random vector. Some lengths that are not powers of two yield plans
// with wrong output, and for those lengths NewPlan returns a gonum-backed
// transform instead.
func NewPlan[C algofft.Complex](n int) (Transform[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: transform length %d", ErrInvalidSize, n)
	}

	plan, err := algofft.NewPlanT[C](n)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan of size %d: %w", n, err)
	}

	if err := checkTransform[C](plan); err != nil {
		return gonumFallback[C](n), nil
	}

	return plan, nil
}

// checkTransform compares tr with gonum's transform on a fixed pseudo-random
// input. The tolerance is relative to the largest reference bin.
func checkTransform[C algofft.Complex](tr Transform[C]) error {
	n := tr.Len()
	rng := rand.New(rand.NewSource(int64(n)))

	src := make([]C, n)
	ref := make([]complex128, n)

	for i := range src {
		src[i] = C(complex(rng.Float64()*2-1, rng.Float64()*2-1))
		ref[i] = complex128(src[i])
	}

	want := fourier.NewCmplxFFT(n).Coefficients(nil, ref)

	got := make([]C, n)
	if err := tr.Forward(got, src); err != nil {
		return err
	}

	eps := 1e-9
	if _, single := any(got[0]).(complex64); single {
		eps = 1e-3
	}

	scale, diff := 0.0, 0.0
	for i, w := range want {
		scale = math.Max(scale, cmplx.Abs(w))
		diff = math.Max(diff, cmplx.Abs(complex128(got[i])-w))
	}

	if !(diff <= eps*math.Max(scale, 1)) {
		return fmt.Errorf("stft: transform of size %d deviates from reference by %g", n, diff)
	}

	return nil
}

// gonumFallback returns a gonum transform of length n for element type C.
func gonumFallback[C algofft.Complex](n int) Transform[C] {
	var tr Transform[complex128] = NewGonumTransform(n)
	if same, ok := any(tr).(Transform[C]); ok {
		return same
	}

	return &widenedTransform[C]{
		tr:  tr,
		in:  make([]complex128, n),
		out: make([]complex128, n),
	}
}

// widenedTransform runs a complex128 transform on narrower values through
// scratch buffers.
type widenedTransform[C algofft.Complex] struct {
	tr      Transform[complex128]
	in, out []complex128
}

func (w *widenedTransform[C]) Len() int { return w.tr.Len() }

func (w *widenedTransform[C]) Forward(dst, src []C) error {
	if len(dst) != len(w.in) || len(src) != len(w.in) {
		return fmt.Errorf("stft: transform expects %d values, got dst=%d src=%d", len(w.in), len(dst), len(src))
	}

	for i, v := range src {
		w.in[i] = complex128(v)
	}

	if err := w.tr.Forward(w.out, w.in); err != nil {
		return err
	}

	for i, v := range w.out {
		dst[i] = C(v)
	}

	return nil
}

// Backend selects the FFT implementation behind a [Transform].
type Backend int

const (
	// BackendAlgoFFT uses github.com/MeKo-Christian/algo-fft plans.
	BackendAlgoFFT Backend = iota
	// BackendGonum uses gonum's dsp/fourier complex FFT.
	BackendGonum
	// BackendGoDSP uses github.com/mjibson/go-dsp/fft.
	BackendGoDSP
)

var backendNames = [...]string{
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
}

func (b Backend) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}

	return backendNames[b]
}

// ParseBackend parses a backend name case-insensitively.
func ParseBackend(s string) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for b, n := range backendNames {
		if n == name {
			return Backend(b), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(backendNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(b))
	}

	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}

	*b = parsed

	return nil
}

// NewBackendTransform returns a transform of length n implemented by b.
// Only BackendAlgoFFT supports complex64. BackendAlgoFFT goes through
// [NewPlan] and so falls back to gonum where algo-fft is inaccurate.
func NewBackendTransform[C algofft.Complex](b Backend, n int) (Transform[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: transform length %d", ErrInvalidSize, n)
	}

	switch b {
	case BackendAlgoFFT:
		return NewPlan[C](n)
	case BackendGonum, BackendGoDSP:
		var zero C
		if _, ok := any(zero).(complex128); !ok {
			return nil, fmt.Errorf("%w: %s", ErrBackendPrecision, b)
		}

		var tr Transform[complex128]
		if b == BackendGonum {
			tr = NewGonumTransform(n)
		} else {
			tr = NewGoDSPTransform(n)
		}

		return any(tr).(Transform[C]), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, b)
	}
}

// GonumTransform adapts gonum's [fourier.CmplxFFT]. It keeps internal work
// space and must not be used from more than one goroutine at a time.
type GonumTransform struct {
	fft *fourier.CmplxFFT
	n   int
}

// NewGonumTransform returns a gonum-backed transform of length n.
func NewGonumTransform(n int) *GonumTransform {
	return &GonumTransform{fft: fourier.NewCmplxFFT(n), n: n}
}

// Len returns the transform length.
func (g *GonumTransform) Len() int { return g.n }

// Forward computes the unnormalized forward transform of src into dst.
func (g *GonumTransform) Forward(dst, src []complex128) error {
	if len(dst) != g.n || len(src) != g.n {
		return fmt.Errorf("stft: gonum transform expects %d values, got dst=%d src=%d", g.n, len(dst), len(src))
	}

	g.fft.Coefficients(dst, src)

	return nil
}

// GoDSPTransform adapts go-dsp's [fft.FFT]. go-dsp allocates its result, so
// each call costs one allocation of n values.
type GoDSPTransform struct {
	n int
}

// NewGoDSPTransform returns a go-dsp-backed transform of length n.
func NewGoDSPTransform(n int) *GoDSPTransform {
	return &GoDSPTransform{n: n}
}

// Len returns the transform length.
func (g *GoDSPTransform) Len() int { return g.n }

// Forward computes the unnormalized forward transform of src into dst.
func (g *GoDSPTransform) Forward(dst, src []complex128) error {
	if len(dst) != g.n || len(src) != g.n {
		return fmt.Errorf("stft: go-dsp transform expects %d values, got dst=%d src=%d", g.n, len(dst), len(src))
	}

	copy(dst, fft.FFT(src))

	return nil
}
