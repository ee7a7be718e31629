package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine[float64](1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise[float32](42, 1.0, 64)
	b := Noise[float32](42, 1.0, 64)
	c := Noise[float32](43, 1.0, 64)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRampAndDC(t *testing.T) {
	r := Ramp[float64](4)
	d := DC[float32](0.5, 3)

	for i, v := range r {
		if v != float64(i) {
			t.Fatalf("Ramp[%d] = %v", i, v)
		}
	}
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestDFTOfBinSine(t *testing.T) {
	const n = 16

	x := BinSine[float64](3, n, 1, n)
	bins := DFT(x)

	// A unit sine at bin k has |X[k]| = |X[n-k]| = n/2.
	for k, v := range bins {
		want := 0.0
		if k == 3 || k == n-3 {
			want = n / 2
		}
		if math.Abs(cmplx.Abs(v)-want) > 1e-9 {
			t.Fatalf("|X[%d]| = %v, want %v", k, cmplx.Abs(v), want)
		}
	}
}
