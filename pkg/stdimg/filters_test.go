package stdimg

import (
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

func TestBlur(t *testing.T) {
	want := [][]int{
		{101, 97, 58, 78, 75},
		{115, 110, 65, 85, 80},
		{85, 80, 45, 55, 50},
		{55, 50, 25, 26, 22},
		{26, 22, 8, 6, 5},
	}
	assertEqualImage(t, "mono", Blur(sampleGray()), raster.MonoFromRows(want))
	assertEqualImage(t, "chroma", Blur(sampleRed()), redRows(want))
}

func TestSharpen(t *testing.T) {
	want := [][]int{
		{255, 232, 30, 180, 217},
		{255, 255, 72, 187, 232},
		{200, 135, 0, 65, 112},
		{127, 82, 0, 12, 37},
		{52, 22, 0, 0, 0},
	}
	assertEqualImage(t, "mono", Sharpen(sampleGray()), raster.MonoFromRows(want))
	assertEqualImage(t, "chroma", Sharpen(sampleRed()), redRows(want))
}

func TestConvolveZeroPadding(t *testing.T) {
	// a flat image darkens at the border because the padding is zero, not
	// a copy of the edge
	src := raster.MonoFromRows([][]int{{160, 160, 160}, {160, 160, 160}, {160, 160, 160}})
	got := Blur(src)
	if v := got.Sample(1, 1); v != 160 {
		t.Fatalf("center: got %d, want 160", v)
	}
	if v := got.Sample(0, 0); v != 90 {
		t.Fatalf("corner: got %d, want 90", v)
	}
	if v := got.Sample(0, 1); v != 120 {
		t.Fatalf("edge: got %d, want 120", v)
	}
}

func TestConvolveLargeImageParallel(t *testing.T) {
	// big enough to take the banded path; must agree with a row by row run
	src := raster.NewChroma(130, 70)
	for r := 0; r < src.Height(); r++ {
		for c := 0; c < src.Width(); c++ {
			src.SetPixel(r, c, raster.NewPixel(r*2, c*3, (r+c)%256))
		}
	}
	got := Sharpen(src)
	for _, rc := range [][2]int{{0, 0}, {64, 35}, {129, 69}, {65, 0}} {
		band := raster.NewChroma(5, src.Width())
		r0 := rc[0] - 2
		for r := 0; r < 5; r++ {
			for c := 0; c < src.Width(); c++ {
				if sr := r0 + r; sr >= 0 && sr < src.Height() {
					band.SetPixel(r, c, src.Pixel(sr, c))
				}
			}
		}
		// rows outside the source stay black, which matches zero padding
		want := Sharpen(band).Pixel(2, rc[1])
		if rc[0] >= 2 && rc[0] <= src.Height()-3 {
			if p := got.Pixel(rc[0], rc[1]); p != want {
				t.Fatalf("(%d,%d): got %v, want %v", rc[0], rc[1], p, want)
			}
		}
	}
}

func BenchmarkBlur(b *testing.B) {
	src := raster.NewChroma(512, 512)
	for i := 0; i < b.N; i++ {
		Blur(src)
	}
}
