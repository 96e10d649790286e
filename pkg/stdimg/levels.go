package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// ColorCorrect aligns the histogram peaks of the three channels. Each
// channel is shifted by the distance between its peak and the integer mean
// of the three peaks. The result is always Chroma; Mono input has identical
// peaks and comes back as gray pixels.
func ColorCorrect(src *raster.Image) *raster.Image {
	tables := Frequencies(src)
	var peaks [3]int
	for ch := range tables {
		peaks[ch] = tables[ch].Peak()
	}
	avg := (peaks[0] + peaks[1] + peaks[2]) / 3
	shift := [3]int{peaks[0] - avg, peaks[1] - avg, peaks[2] - avg}

	h, w := src.Height(), src.Width()
	out := raster.NewChroma(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			p := src.Pixel(r, c)
			out.SetPixel(r, c, raster.NewPixel(p.R()-shift[0], p.G()-shift[1], p.B()-shift[2]))
		}
	}
	return out
}

// LevelCurve holds the coefficients of y = A*x^2 + B*x + C.
type LevelCurve struct {
	A, B, C float64
}

// NewLevelCurve fits the quadratic through (black,0), (mid,128) and
// (white,255). The points must be strictly ascending; otherwise the system
// is singular and the coefficients are not finite.
func NewLevelCurve(black, mid, white int) LevelCurve {
	b, m, w := black, mid, white
	den := b*b*(m-w) - b*(m*m-w*w) + w*m*m - m*w*w
	na := -b*(128-255) + 128*w - 255*m
	nb := b*b*(128-255) + 255*m*m - 128*w*w
	nc := b*b*(255*m-128*w) - b*(255*m*m-128*w*w)
	d := float64(den)
	return LevelCurve{A: float64(na) / d, B: float64(nb) / d, C: float64(nc) / d}
}

// Apply evaluates the curve at x, truncates and clamps to [0,255].
func (lc LevelCurve) Apply(x int) int {
	fx := float64(x)
	return clampInt(int(lc.A*(fx*fx)+lc.B*fx+lc.C), 0, 255)
}

// LevelAdjust remaps every channel through the curve fitted to
// black < mid < white. The output keeps the kind of src.
func LevelAdjust(src *raster.Image, black, mid, white int) *raster.Image {
	lc := NewLevelCurve(black, mid, white)
	var lut [256]int
	for i := range lut {
		lut[i] = lc.Apply(i)
	}
	return mapChannels(src, func(v int) int { return lut[v] })
}
