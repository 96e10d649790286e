package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

var (
	separatorLight = raster.NewPixel(255, 255, 255)
	separatorMark  = raster.NewPixel(255, 0, 255)
)

// LeftPercent keeps the first int(width*p/100) columns of src.
func LeftPercent(src *raster.Image, p int) *raster.Image {
	n := int(float64(src.Width()) * (float64(p) / 100.0))
	return columns(src, 0, n)
}

// RightPercent keeps the last width*p/100 columns of src.
func RightPercent(src *raster.Image, p int) *raster.Image {
	n := src.Width() * p / 100
	return columns(src, src.Width()-n, n)
}

func columns(src *raster.Image, start, n int) *raster.Image {
	h := src.Height()
	out := raster.New(src.Kind(), h, n)
	for r := 0; r < h; r++ {
		for c := 0; c < n; c++ {
			copyAt(out, r, c, src, r, start+c)
		}
	}
	return out
}

// SideBySide places left and right next to each other with a one pixel
// separator column: white on every third row, magenta elsewhere. Both
// halves must have the same height. The result is Chroma.
func SideBySide(left, right *raster.Image) *raster.Image {
	h := left.Height()
	lw, rw := left.Width(), right.Width()
	out := raster.NewChroma(h, lw+rw+1)
	for r := 0; r < h; r++ {
		for c := 0; c < lw; c++ {
			out.SetPixel(r, c, left.Pixel(r, c))
		}
		if r%3 == 0 {
			out.SetPixel(r, lw, separatorLight)
		} else {
			out.SetPixel(r, lw, separatorMark)
		}
		for c := 0; c < rw; c++ {
			out.SetPixel(r, lw+1+c, right.Pixel(r, c))
		}
	}
	return out
}

// Preview shows the left p percent of original beside the right 100-p
// percent of transformed, for before and after comparison.
func Preview(original, transformed *raster.Image, p int) *raster.Image {
	return SideBySide(LeftPercent(original, p), RightPercent(transformed, 100-p))
}
