package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// Kernel is a square convolution kernel with an odd side length.
type Kernel [][]float64

// BlurKernel is the 3x3 binomial approximation of a Gaussian.
var BlurKernel = Kernel{
	{0.0625, 0.125, 0.0625},
	{0.125, 0.25, 0.125},
	{0.0625, 0.125, 0.0625},
}

// SharpenKernel is the 5x5 unsharp kernel: center 1.0, inner ring 0.25,
// outer ring -0.125.
var SharpenKernel = Kernel{
	{-0.125, -0.125, -0.125, -0.125, -0.125},
	{-0.125, 0.25, 0.25, 0.25, -0.125},
	{-0.125, 0.25, 1.0, 0.25, -0.125},
	{-0.125, 0.25, 0.25, 0.25, -0.125},
	{-0.125, -0.125, -0.125, -0.125, -0.125},
}

// Convolve applies k to every channel of src. The source is treated as if
// surrounded by zeros, so borders darken rather than replicate edge pixels.
// Each weighted sum is clamped to [0,255] and truncated.
func Convolve(src *raster.Image, k Kernel) *raster.Image {
	h, w := src.Height(), src.Width()
	out := raster.New(src.Kind(), h, w)
	pad := (len(k) - 1) / 2
	parallelRows(h, func(y0, y1 int) {
		for r := y0; r < y1; r++ {
			for c := 0; c < w; c++ {
				var sum [3]float64
				for kr := range k {
					sr := r + kr - pad
					if sr < 0 || sr >= h {
						continue
					}
					for kc, weight := range k[kr] {
						sc := c + kc - pad
						if sc < 0 || sc >= w {
							continue
						}
						if !src.IsChroma() {
							sum[0] += float64(src.Sample(sr, sc)) * weight
							continue
						}
						p := src.Pixel(sr, sc)
						sum[0] += float64(p.R()) * weight
						sum[1] += float64(p.G()) * weight
						sum[2] += float64(p.B()) * weight
					}
				}
				if !src.IsChroma() {
					out.SetSample(r, c, raster.ClampFloat(sum[0]))
					continue
				}
				out.SetPixel(r, c, raster.NewPixel(raster.ClampFloat(sum[0]), raster.ClampFloat(sum[1]), raster.ClampFloat(sum[2])))
			}
		}
	})
	return out
}
