package stdimg

import (
	"cmp"
	"math"
	"slices"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

// noiseFloor is the magnitude below which a transformed coefficient is
// treated as zero.
const noiseFloor = 0.1

// WaveletPlanes is the Haar decomposition of an image. Each plane is a
// Side x Side row-major grid of coefficients, one plane for a Mono image and
// three (red, green, blue) for a Chroma image. Height and Width are the
// dimensions of the source before padding.
type WaveletPlanes struct {
	Height int
	Width  int
	Side   int
	Planes [][]float64
}

// Kind reports the image kind the planes decode to.
func (wp *WaveletPlanes) Kind() raster.Kind {
	if len(wp.Planes) == 3 {
		return raster.Chroma
	}
	return raster.Mono
}

// NonZero counts the coefficients that survived thresholding.
func (wp *WaveletPlanes) NonZero() int {
	n := 0
	for _, p := range wp.Planes {
		for _, v := range p {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// PaddedSide returns the smallest power of two not below max(height, width).
func PaddedSide(height, width int) int {
	n := 1
	for n < max(height, width) {
		n *= 2
	}
	return n
}

// haar carries scratch buffers sized to one padded side so that the
// row and column passes never allocate.
type haar struct {
	side int
	line []float64
	tmp  []float64
}

func newHaar(side int) *haar {
	return &haar{side: side, line: make([]float64, side), tmp: make([]float64, side)}
}

// forward1D runs the full multi-level decomposition of v[:m] in place:
// averages to the front half, differences to the back half, then repeats on
// the front half until one average remains.
func (h *haar) forward1D(v []float64, m int) {
	for ; m > 1; m /= 2 {
		half := m / 2
		for i := 0; i < m; i += 2 {
			a, b := v[i], v[i+1]
			h.tmp[i/2] = (a + b) / math.Sqrt2
			h.tmp[half+i/2] = (a - b) / math.Sqrt2
		}
		copy(v[:m], h.tmp[:m])
	}
}

// inverse1D undoes forward1D for a sequence of length n.
func (h *haar) inverse1D(v []float64, n int) {
	for m := 2; m <= n; m *= 2 {
		half := m / 2
		for i := 0; i < half; i++ {
			a, d := v[i], v[half+i]
			h.tmp[2*i] = (a + d) / math.Sqrt2
			h.tmp[2*i+1] = (a - d) / math.Sqrt2
		}
		copy(v[:m], h.tmp[:m])
	}
}

func (h *haar) row(plane []float64, i int) []float64 {
	return plane[i*h.side : (i+1)*h.side]
}

func (h *haar) column(plane []float64, j, m int, fn func(v []float64, m int)) {
	for k := 0; k < m; k++ {
		h.line[k] = plane[k*h.side+j]
	}
	fn(h.line, m)
	for k := 0; k < m; k++ {
		plane[k*h.side+j] = h.line[k]
	}
}

// forward2D transforms the leading m rows then the leading m columns, for m
// halving from the padded side down to 2.
func (h *haar) forward2D(plane []float64) {
	for m := h.side; m > 1; m /= 2 {
		for i := 0; i < m; i++ {
			h.forward1D(h.row(plane, i), m)
		}
		for j := 0; j < m; j++ {
			h.column(plane, j, m, h.forward1D)
		}
	}
	for i, v := range plane {
		if math.Abs(v) < noiseFloor {
			plane[i] = 0
		}
	}
}

// inverse2D mirrors forward2D: columns then rows, m doubling from 2.
func (h *haar) inverse2D(plane []float64) {
	for m := 2; m <= h.side; m *= 2 {
		for j := 0; j < m; j++ {
			h.column(plane, j, m, h.inverse1D)
		}
		for i := 0; i < m; i++ {
			h.inverse1D(h.row(plane, i), m)
		}
	}
}

// coefficient addresses one surviving value across all planes.
type coefficient struct {
	mag   float64
	index int
	plane int
}

// threshold keeps the ceil(n*(100-percent)/100) largest magnitudes among
// the n non-zero coefficients of all planes combined and zeroes the rest.
// Equal magnitudes keep collection order: row, then column, then plane.
func threshold(planes [][]float64, percent int) {
	if len(planes) == 0 {
		return
	}
	var coeffs []coefficient
	for i := range planes[0] {
		for p, plane := range planes {
			if v := plane[i]; v != 0 {
				coeffs = append(coeffs, coefficient{mag: math.Abs(v), index: i, plane: p})
			}
		}
	}
	keep := int(math.Ceil(float64(len(coeffs)) * ((100.0 - float64(percent)) / 100.0)))
	if keep >= len(coeffs) {
		return
	}
	slices.SortStableFunc(coeffs, func(a, b coefficient) int {
		return cmp.Compare(b.mag, a.mag)
	})
	for _, c := range coeffs[keep:] {
		planes[c.plane][c.index] = 0
	}
}

// WaveletEncode pads every channel of src to a power-of-two square, applies
// the 2D Haar transform, suppresses numerical noise and then drops the
// smallest percent of the remaining coefficients, counted jointly over all
// channels. percent is clamped to [0,100].
func WaveletEncode(src *raster.Image, percent int) *WaveletPlanes {
	percent = clampInt(percent, 0, 100)
	h, w := src.Height(), src.Width()
	side := PaddedSide(h, w)
	n := 1
	if src.IsChroma() {
		n = 3
	}
	wp := &WaveletPlanes{Height: h, Width: w, Side: side, Planes: make([][]float64, n)}
	tr := newHaar(side)
	for p := range wp.Planes {
		plane := make([]float64, side*side)
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				plane[r*side+c] = float64(src.Component(r, c, raster.Channels[p]))
			}
		}
		tr.forward2D(plane)
		wp.Planes[p] = plane
	}
	threshold(wp.Planes, percent)
	return wp
}

// Decode inverts the transform and crops back to Height x Width, rounding
// half up and clamping to [0,255]. wp is left untouched.
func (wp *WaveletPlanes) Decode() *raster.Image {
	out := raster.New(wp.Kind(), wp.Height, wp.Width)
	tr := newHaar(wp.Side)
	var samples [3][]float64
	for p, src := range wp.Planes {
		plane := slices.Clone(src)
		tr.inverse2D(plane)
		samples[p] = plane
	}
	round := func(v float64) int { return raster.ClampFloat(math.Floor(v + 0.5)) }
	for r := 0; r < wp.Height; r++ {
		for c := 0; c < wp.Width; c++ {
			i := r*wp.Side + c
			if out.IsChroma() {
				out.SetPixel(r, c, raster.NewPixel(round(samples[0][i]), round(samples[1][i]), round(samples[2][i])))
				continue
			}
			out.SetSample(r, c, round(samples[0][i]))
		}
	}
	return out
}

// Compress is WaveletEncode followed by Decode.
func Compress(src *raster.Image, percent int) *raster.Image {
	return WaveletEncode(src, percent).Decode()
}
