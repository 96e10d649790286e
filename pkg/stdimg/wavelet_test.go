package stdimg

import (
	"math"
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

var compressed60 = [][]int{
	{179, 179, 4, 144, 128},
	{159, 159, 0, 124, 108},
	{93, 93, 25, 85, 61},
	{73, 73, 5, 65, 41},
	{11, 11, 4, 4, 0},
}

func TestPaddedSide(t *testing.T) {
	tests := []struct{ h, w, want int }{
		{0, 0, 1}, {1, 1, 1}, {2, 1, 2}, {5, 5, 8}, {3, 9, 16}, {64, 64, 64}, {65, 1, 128},
	}
	for _, tc := range tests {
		if got := PaddedSide(tc.h, tc.w); got != tc.want {
			t.Fatalf("PaddedSide(%d,%d) = %d, want %d", tc.h, tc.w, got, tc.want)
		}
	}
}

func TestHaarSequenceRoundTrip(t *testing.T) {
	tr := newHaar(8)
	v := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	orig := append([]float64(nil), v...)
	tr.forward1D(v, 8)
	// the first coefficient is the scaled sum
	if want := 31 / math.Sqrt(8); math.Abs(v[0]-want) > 1e-9 {
		t.Fatalf("dc: got %v, want %v", v[0], want)
	}
	tr.inverse1D(v, 8)
	for i := range v {
		if math.Abs(v[i]-orig[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, v[i], orig[i])
		}
	}
}

func TestCompressZeroIsLossless(t *testing.T) {
	assertEqualImage(t, "mono", Compress(sampleGray(), 0), sampleGray())
	assertEqualImage(t, "red", Compress(sampleRed(), 0), sampleRed())
	assertEqualImage(t, "bounded", Compress(sampleBounded(), 0), sampleBounded())
}

func TestCompress(t *testing.T) {
	assertEqualImage(t, "mono", Compress(sampleGray(), 60), raster.MonoFromRows(compressed60))
	assertEqualImage(t, "chroma", Compress(sampleRed(), 60), redRows(compressed60))
}

func TestCompressSharedBudget(t *testing.T) {
	src := raster.ChromaFromRows([][][3]int{
		{{0, 7, 200}, {10, 47, 185}, {20, 87, 170}},
		{{50, 37, 180}, {60, 77, 165}, {70, 117, 150}},
		{{100, 67, 160}, {110, 107, 145}, {120, 147, 130}},
	})
	want := raster.ChromaFromRows([][][3]int{
		{{11, 42, 182}, {11, 42, 182}, {7, 95, 160}},
		{{49, 42, 182}, {49, 42, 182}, {45, 95, 160}},
		{{94, 84, 152}, {94, 84, 152}, {127, 157, 130}},
	})
	assertEqualImage(t, "shared", Compress(src, 50), want)
}

func TestCompressFull(t *testing.T) {
	got := Compress(sampleBounded(), 100)
	assertEqualImage(t, "p=100", got, raster.NewChroma(5, 5))
}

func TestWaveletEncode(t *testing.T) {
	src := sampleBounded()
	before := src.Clone()
	wp := WaveletEncode(src, 0)
	assertEqualImage(t, "input untouched", src, before)
	if wp.Side != 8 || len(wp.Planes) != 3 || wp.Kind() != raster.Chroma {
		t.Fatalf("planes: side %d, %d planes", wp.Side, len(wp.Planes))
	}
	full := wp.NonZero()

	half := WaveletEncode(src, 50)
	if got, want := half.NonZero(), int(math.Ceil(float64(full)*0.5)); got != want {
		t.Fatalf("kept %d of %d, want %d", got, full, want)
	}

	// decoding leaves the planes intact so it can be repeated
	a := half.Decode()
	b := half.Decode()
	assertEqualImage(t, "decode twice", a, b)

	mono := WaveletEncode(sampleGray(), 10)
	if len(mono.Planes) != 1 || mono.Decode().IsChroma() {
		t.Fatalf("mono input should stay single channel")
	}
}

func TestCompressOddShapes(t *testing.T) {
	for _, hw := range [][2]int{{1, 1}, {1, 7}, {6, 3}, {0, 0}} {
		src := raster.NewMono(hw[0], hw[1])
		for r := 0; r < hw[0]; r++ {
			for c := 0; c < hw[1]; c++ {
				src.SetSample(r, c, (r*31+c*17)%256)
			}
		}
		assertEqualImage(t, "odd", Compress(src, 0), src)
	}
}

func BenchmarkCompress(b *testing.B) {
	src := raster.NewChroma(256, 256)
	for r := 0; r < 256; r++ {
		for c := 0; c < 256; c++ {
			src.SetPixel(r, c, raster.NewPixel(r, c, r^c))
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(src, 50)
	}
}
