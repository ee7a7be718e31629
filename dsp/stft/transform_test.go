package stft

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-stft/internal/testutil"
)

// transformSizes mixes powers of two with lengths algo-fft plans do not
// handle exactly.
var transformSizes = []int{6, 8, 64, 100, 200, 256, 400, 1000, 1536}

func TestBackendsMatchDirectDFT(t *testing.T) {
	for _, n := range transformSizes {
		signal := testutil.Noise[float64](int64(n), 1, n)
		want := testutil.DFT(signal)

		src := make([]complex128, n)
		for i, v := range signal {
			src[i] = complex(v, 0)
		}

		for _, b := range []Backend{BackendAlgoFFT, BackendGonum, BackendGoDSP} {
			tr, err := NewBackendTransform[complex128](b, n)
			if err != nil {
				t.Fatalf("%s/%d: %v", b, n, err)
			}

			if tr.Len() != n {
				t.Fatalf("%s: Len()=%d want=%d", b, tr.Len(), n)
			}

			got := make([]complex128, n)

			if err := tr.Forward(got, append([]complex128(nil), src...)); err != nil {
				t.Fatalf("%s/%d Forward: %v", b, n, err)
			}

			testutil.RequireComplexNearlyEqual(t, got, want, 1e-8)
		}
	}
}

func TestNewPlanSinglePrecisionMatchesDirectDFT(t *testing.T) {
	for _, n := range []int{6, 200, 1000} {
		signal := testutil.Noise[float64](int64(n), 1, n)
		want := testutil.DFT(signal)

		tr, err := NewPlan[complex64](n)
		if err != nil {
			t.Fatalf("NewPlan(%d): %v", n, err)
		}

		src := make([]complex64, n)
		for i, v := range signal {
			src[i] = complex(float32(v), 0)
		}

		got := make([]complex64, n)
		if err := tr.Forward(got, src); err != nil {
			t.Fatalf("Forward(%d): %v", n, err)
		}

		wide := make([]complex128, n)
		for i, v := range got {
			wide[i] = complex128(v)
		}

		testutil.RequireComplexNearlyEqual(t, wide, want, 1e-2)
	}
}

func TestCheckTransform(t *testing.T) {
	if err := checkTransform[complex128](NewGonumTransform(100)); err != nil {
		t.Fatalf("gonum transform rejected: %v", err)
	}

	if err := checkTransform[complex128](copyTransform{100}); err == nil {
		t.Fatal("identity transform accepted as an FFT")
	}

	if err := checkTransform[complex64](gonumFallback[complex64](12)); err != nil {
		t.Fatalf("widened gonum transform rejected: %v", err)
	}
}

func TestGonumFallback(t *testing.T) {
	if _, ok := gonumFallback[complex128](10).(*GonumTransform); !ok {
		t.Fatal("complex128 fallback should be the gonum transform itself")
	}

	tr := gonumFallback[complex64](10)
	if tr.Len() != 10 {
		t.Fatalf("Len()=%d want=10", tr.Len())
	}

	if err := tr.Forward(make([]complex64, 10), make([]complex64, 9)); err == nil {
		t.Fatal("widened transform accepted a short source")
	}
}

func TestEnginesAgreeAcrossBackends(t *testing.T) {
	signal := testutil.Noise[float64](11, 0.5, 2048)

	var ref []float64

	for _, b := range []Backend{BackendAlgoFFT, BackendGonum, BackendGoDSP} {
		e, err := NewFromConfig[float64, complex128](ApplyOptions(
			WithWindowSize(256),
			WithStepSize(128),
			WithBackend(b),
		))
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}

		var columns []float64
		column := make([]float64, e.OutputSize())

		e.Feed(signal, column, func(c []float64) {
			columns = append(columns, c...)
		})

		if ref == nil {
			ref = columns
			continue
		}

		testutil.RequireSliceNearlyEqual(t, columns, ref, 1e-9)
	}
}

func TestNewBackendTransformErrors(t *testing.T) {
	if _, err := NewBackendTransform[complex64](BackendGonum, 8); !errors.Is(err, ErrBackendPrecision) {
		t.Fatalf("gonum complex64: err=%v", err)
	}

	if _, err := NewBackendTransform[complex64](BackendGoDSP, 8); !errors.Is(err, ErrBackendPrecision) {
		t.Fatalf("godsp complex64: err=%v", err)
	}

	if _, err := NewBackendTransform[complex64](BackendAlgoFFT, 8); err != nil {
		t.Fatalf("algofft complex64: %v", err)
	}

	if _, err := NewBackendTransform[complex128](Backend(9), 8); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("unknown backend: err=%v", err)
	}

	if _, err := NewBackendTransform[complex128](BackendAlgoFFT, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("zero length: err=%v", err)
	}

	if _, err := NewPlan[complex64](-4); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("negative length: err=%v", err)
	}
}

func TestAdapterLengthMismatch(t *testing.T) {
	adapters := []Transform[complex128]{NewGonumTransform(8), NewGoDSPTransform(8)}

	for _, tr := range adapters {
		if err := tr.Forward(make([]complex128, 8), make([]complex128, 4)); err == nil {
			t.Fatalf("%T accepted a short source", tr)
		}
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"algofft", BackendAlgoFFT, false},
		{"Gonum", BackendGonum, false},
		{" godsp ", BackendGoDSP, false},
		{"fftw", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownBackend) {
				t.Fatalf("ParseBackend(%q) err=%v, want ErrUnknownBackend", tt.in, err)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Fatalf("ParseBackend(%q)=%v,%v want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestBackendText(t *testing.T) {
	for _, b := range []Backend{BackendAlgoFFT, BackendGonum, BackendGoDSP} {
		text, err := b.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", b, err)
		}

		var back Backend
		if err := back.UnmarshalText(text); err != nil || back != b {
			t.Fatalf("UnmarshalText(%q)=%v,%v", text, back, err)
		}
	}

	if _, err := Backend(-1).MarshalText(); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("MarshalText(-1) err=%v", err)
	}

	if got := Backend(5).String(); got != "Backend(5)" {
		t.Fatalf("String()=%q", got)
	}
}
