package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// HorizontalFlip mirrors src about its vertical center line.
func HorizontalFlip(src *raster.Image) *raster.Image {
	h, w := src.Height(), src.Width()
	out := raster.New(src.Kind(), h, w)
	for r := 0; r < h; r++ {
		// the middle column of an odd width is written twice with the same value
		for c := 0; c < w/2+1 && c < w; c++ {
			copyAt(out, r, w-1-c, src, r, c)
			copyAt(out, r, c, src, r, w-1-c)
		}
	}
	return out
}

// VerticalFlip mirrors src about its horizontal center line.
func VerticalFlip(src *raster.Image) *raster.Image {
	h, w := src.Height(), src.Width()
	out := raster.New(src.Kind(), h, w)
	for r := 0; r < h/2+1 && r < h; r++ {
		for c := 0; c < w; c++ {
			copyAt(out, h-1-r, c, src, r, c)
			copyAt(out, r, c, src, h-1-r, c)
		}
	}
	return out
}
