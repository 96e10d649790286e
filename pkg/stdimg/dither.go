package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// Dither reduces a Chroma image to black and white with Floyd-Steinberg
// error diffusion over its intensity channel. Pixels are visited in raster
// order and each neighbor is clamped as soon as it receives error, so the
// value read later already includes every earlier contribution.
// It reports false for Mono input.
func Dither(src *raster.Image) (*raster.Image, bool) {
	gray, ok := Intensity(src)
	if !ok {
		return nil, false
	}
	h, w := gray.Height(), gray.Width()
	spread := func(r, c int, e float64) {
		if r < 0 || c < 0 || r >= h || c >= w {
			return
		}
		gray.SetSample(r, c, gray.Sample(r, c)+int(e))
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			old := gray.Sample(r, c)
			next := 0
			if old >= 128 {
				next = 255
			}
			gray.SetSample(r, c, next)
			e := float64(old - next)
			spread(r, c+1, e*(7.0/16.0))
			spread(r+1, c-1, e*(3.0/16.0))
			spread(r+1, c, e*(5.0/16.0))
			spread(r+1, c+1, e*(1.0/16.0))
		}
	}
	return gray, true
}
