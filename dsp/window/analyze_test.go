package window

import (
	"math"
	"testing"
)

func TestAnalyzeMatchesMetadata(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			a := AnalyzeType(typ, 1024)
			m := Info(typ)

			if !almostEqual(a.ENBW, m.ENBW, 0.02) {
				t.Fatalf("ENBW=%v, want ~%v", a.ENBW, m.ENBW)
			}

			if !almostEqual(a.CoherentGain, m.CoherentGain, 0.01) {
				t.Fatalf("coherent gain=%v, want ~%v", a.CoherentGain, m.CoherentGain)
			}

			if !almostEqual(a.HighestSidelobedB, m.HighestSidelobe, 2) {
				t.Fatalf("sidelobe=%v dB, want ~%v dB", a.HighestSidelobedB, m.HighestSidelobe)
			}
		})
	}
}

func TestAnalyzeRectangularNulls(t *testing.T) {
	a := AnalyzeType(TypeNone, 256)

	if !almostEqual(a.FirstMinimumBins, 1, 0.01) {
		t.Fatalf("first minimum=%v bins, want 1", a.FirstMinimumBins)
	}

	if !almostEqual(a.ScallopLossdB, -3.92, 0.05) {
		t.Fatalf("scallop loss=%v dB, want ~-3.92", a.ScallopLossdB)
	}

	if !almostEqual(a.Bandwidth3dB, 0.886, 0.01) {
		t.Fatalf("3 dB bandwidth=%v bins, want ~0.886", a.Bandwidth3dB)
	}
}

func TestAnalyzeDegenerate(t *testing.T) {
	if a := Analyze(nil); a != (Analysis{}) {
		t.Fatalf("expected zero analysis, got %#v", a)
	}

	if a := Analyze([]float64{0, 0}); a != (Analysis{}) {
		t.Fatalf("expected zero analysis, got %#v", a)
	}

	if a := AnalyzeType(TypeHanning, 0); a != (Analysis{}) {
		t.Fatalf("expected zero analysis, got %#v", a)
	}

	a := AnalyzeType(TypeHanning, 64)
	if math.IsNaN(a.ENBW) || a.FirstMinimumBins <= 0 {
		t.Fatalf("unexpected analysis: %#v", a)
	}
}
