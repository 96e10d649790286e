package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// Component keeps channel ch of a Chroma image and zeroes the other two.
// It reports false for Mono input.
func Component(src *raster.Image, ch raster.Channel) (*raster.Image, bool) {
	if !src.IsChroma() {
		return nil, false
	}
	h, w := src.Height(), src.Width()
	out := raster.NewChroma(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			var v [3]int
			v[ch] = src.Component(r, c, ch)
			out.SetPixel(r, c, raster.NewPixel(v[0], v[1], v[2]))
		}
	}
	return out, true
}

func RedComponent(src *raster.Image) (*raster.Image, bool)   { return Component(src, raster.Red) }
func GreenComponent(src *raster.Image) (*raster.Image, bool) { return Component(src, raster.Green) }
func BlueComponent(src *raster.Image) (*raster.Image, bool)  { return Component(src, raster.Blue) }

// reduce collapses each Chroma pixel of src to one Mono sample.
func reduce(src *raster.Image, fn func(p raster.Pixel) int) (*raster.Image, bool) {
	if !src.IsChroma() {
		return nil, false
	}
	h, w := src.Height(), src.Width()
	out := raster.NewMono(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out.SetSample(r, c, fn(src.Pixel(r, c)))
		}
	}
	return out, true
}

// Value returns max(R,G,B) per pixel as a Mono image.
func Value(src *raster.Image) (*raster.Image, bool) {
	return reduce(src, func(p raster.Pixel) int { return max(p.R(), p.G(), p.B()) })
}

// Intensity returns the integer mean of R, G and B per pixel.
func Intensity(src *raster.Image) (*raster.Image, bool) {
	return reduce(src, func(p raster.Pixel) int { return (p.R() + p.G() + p.B()) / 3 })
}

// Luma returns the Rec. 709 weighted sum per pixel, truncated.
func Luma(src *raster.Image) (*raster.Image, bool) {
	return reduce(src, func(p raster.Pixel) int {
		return int(0.2126*float64(p.R()) + 0.7152*float64(p.G()) + 0.0722*float64(p.B()))
	})
}

// Combine takes red from rs, green from gs and blue from bs. The three
// sources must share dimensions; Mono sources contribute their sample.
func Combine(rs, gs, bs *raster.Image) *raster.Image {
	h, w := rs.Height(), rs.Width()
	out := raster.NewChroma(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out.SetPixel(r, c, raster.NewPixel(
				rs.Component(r, c, raster.Red),
				gs.Component(r, c, raster.Green),
				bs.Component(r, c, raster.Blue),
			))
		}
	}
	return out
}

// Split returns the red, green and blue component images of a Chroma image.
func Split(src *raster.Image) (red, green, blue *raster.Image, ok bool) {
	if !src.IsChroma() {
		return nil, nil, nil, false
	}
	red, _ = RedComponent(src)
	green, _ = GreenComponent(src)
	blue, _ = BlueComponent(src)
	return red, green, blue, true
}
