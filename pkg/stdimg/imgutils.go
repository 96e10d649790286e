package stdimg

import (
	"runtime"
	"sync"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

// parallelRows calls fn over contiguous bands of [0,h), one band per worker.
// Small images run on the calling goroutine. fn must only write rows inside
// its band.
func parallelRows(h int, fn func(y0, y1 int)) {
	workers := runtime.GOMAXPROCS(0)
	if h < 64 || workers <= 1 {
		fn(0, h)
		return
	}
	chunk := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += chunk {
		y1 := min(y0+chunk, h)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// mapChannels applies fn to every channel value of src and returns a new
// image of the same kind. fn results are clamped.
func mapChannels(src *raster.Image, fn func(v int) int) *raster.Image {
	h, w := src.Height(), src.Width()
	out := raster.New(src.Kind(), h, w)
	parallelRows(h, func(y0, y1 int) {
		for r := y0; r < y1; r++ {
			for c := 0; c < w; c++ {
				if !src.IsChroma() {
					out.SetSample(r, c, fn(src.Sample(r, c)))
					continue
				}
				p := src.Pixel(r, c)
				out.SetPixel(r, c, raster.NewPixel(fn(p.R()), fn(p.G()), fn(p.B())))
			}
		}
	})
	return out
}

// copyAt copies the value at (sr, sc) in src to (dr, dc) in dst. Both images
// must be of the same kind.
func copyAt(dst *raster.Image, dr, dc int, src *raster.Image, sr, sc int) {
	if dst.IsChroma() {
		dst.SetPixel(dr, dc, src.Pixel(sr, sc))
		return
	}
	dst.SetSample(dr, dc, src.Sample(sr, sc))
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
