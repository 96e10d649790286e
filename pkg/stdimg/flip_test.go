package stdimg

import (
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

func TestHorizontalFlip(t *testing.T) {
	want := [][]int{
		{140, 160, 0, 180, 200},
		{100, 120, 0, 140, 160},
		{60, 80, 0, 100, 120},
		{20, 40, 0, 60, 80},
		{0, 0, 0, 20, 40},
	}
	assertEqualImage(t, "mono", HorizontalFlip(sampleGray()), raster.MonoFromRows(want))
	assertEqualImage(t, "chroma", HorizontalFlip(sampleRed()), redRows(want))
}

func TestVerticalFlip(t *testing.T) {
	want := make([][]int, len(grayRows))
	for i := range grayRows {
		want[i] = grayRows[len(grayRows)-1-i]
	}
	assertEqualImage(t, "mono", VerticalFlip(sampleGray()), raster.MonoFromRows(want))
	assertEqualImage(t, "chroma", VerticalFlip(sampleRed()), redRows(want))
}

func TestFlipInvolution(t *testing.T) {
	for _, src := range []*raster.Image{sampleGray(), sampleBounded(), raster.NewMono(1, 4), raster.NewChroma(4, 1), raster.NewMono(0, 0)} {
		assertEqualImage(t, "hflip twice", HorizontalFlip(HorizontalFlip(src)), src)
		assertEqualImage(t, "vflip twice", VerticalFlip(VerticalFlip(src)), src)
	}
}

func TestFlipDoesNotMutateInput(t *testing.T) {
	src := sampleGray()
	before := src.Clone()
	HorizontalFlip(src)
	VerticalFlip(src)
	assertEqualImage(t, "input", src, before)
}
