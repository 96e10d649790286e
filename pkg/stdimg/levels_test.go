package stdimg

import (
	"math"
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

func TestColorCorrect(t *testing.T) {
	got := ColorCorrect(sampleBounded())
	want := raster.ChromaFromRows([][][3]int{
		{{71, 71, 93}, {51, 71, 76}, {80, 51, 62}, {68, 85, 68}, {59, 79, 78}},
		{{63, 93, 89}, {78, 76, 69}, {79, 76, 106}, {78, 59, 97}, {72, 75, 78}},
		{{81, 87, 71}, {90, 69, 69}, {88, 64, 72}, {79, 58, 81}, {75, 69, 85}},
		{{74, 57, 76}, {68, 68, 103}, {79, 95, 94}, {64, 68, 92}, {61, 70, 66}},
		{{69, 74, 83}, {68, 67, 64}, {67, 60, 68}, {77, 84, 94}, {61, 94, 82}},
	})
	assertEqualImage(t, "color-correct", got, want)
	saveTestOutput(t, "corrected_histogram", Histogram(got))
}

func TestColorCorrectMono(t *testing.T) {
	got := ColorCorrect(sampleGray())
	assertEqualImage(t, "mono", got, sampleGray().ToChroma())
}

func TestLevelCurveIdentity(t *testing.T) {
	lc := NewLevelCurve(0, 128, 255)
	if math.Abs(lc.A) > 1e-12 || math.Abs(lc.B-1) > 1e-12 || math.Abs(lc.C) > 1e-12 {
		t.Fatalf("identity curve: got %+v", lc)
	}
	for x := 0; x < 256; x++ {
		if y := lc.Apply(x); y != x {
			t.Fatalf("identity at %d: got %d", x, y)
		}
	}
	assertEqualImage(t, "identity", LevelAdjust(sampleBounded(), 0, 128, 255), sampleBounded())
	assertEqualImage(t, "identity mono", LevelAdjust(sampleGray(), 0, 128, 255), sampleGray())
}

func TestLevelCurvePassesThroughPoints(t *testing.T) {
	for _, bmw := range [][3]int{{30, 100, 130}, {10, 50, 240}, {0, 1, 2}} {
		lc := NewLevelCurve(bmw[0], bmw[1], bmw[2])
		for i, want := range []float64{0, 128, 255} {
			x := float64(bmw[i])
			if y := lc.A*x*x + lc.B*x + lc.C; math.Abs(y-want) > 1e-6 {
				t.Fatalf("%v at %v: got %v, want %v", bmw, x, y, want)
			}
		}
	}
}

func TestLevelAdjust(t *testing.T) {
	got := LevelAdjust(sampleBounded(), 30, 100, 130)
	want := raster.ChromaFromRows([][][3]int{
		{{0, 55, 255}, {8, 55, 194}, {2, 18, 138}, {0, 92, 161}, {2, 75, 203}},
		{{0, 117, 254}, {1, 67, 165}, {1, 67, 255}, {1, 30, 255}, {0, 64, 203}},
		{{2, 98, 173}, {9, 50, 165}, {7, 40, 177}, {1, 29, 216}, {0, 50, 235}},
		{{0, 27, 194}, {0, 48, 255}, {1, 124, 255}, {0, 48, 255}, {1, 52, 153}},
		{{0, 62, 226}, {0, 46, 146}, {0, 32, 161}, {0, 89, 255}, {1, 121, 221}},
	})
	assertEqualImage(t, "level-adjust", got, want)

	if LevelAdjust(sampleGray(), 30, 100, 130).IsChroma() {
		t.Fatalf("level-adjust should keep mono input mono")
	}
	for i := 0; i < 4; i++ {
		b := i * 30
		h := Histogram(LevelAdjust(sampleBounded(), b, b+70, b+100))
		if h.Height() != 256 {
			t.Fatalf("histogram height: got %d", h.Height())
		}
	}
}
