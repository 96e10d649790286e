package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// sepiaMatrix rows produce red, green and blue from (R,G,B).
var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Sepia applies the classic sepia tone matrix. The result is always Chroma;
// Mono input is read as gray pixels.
func Sepia(src *raster.Image) *raster.Image {
	h, w := src.Height(), src.Width()
	out := raster.NewChroma(h, w)
	parallelRows(h, func(y0, y1 int) {
		for r := y0; r < y1; r++ {
			for c := 0; c < w; c++ {
				out.SetPixel(r, c, sepiaPixel(src.Pixel(r, c)))
			}
		}
	})
	return out
}

func sepiaPixel(p raster.Pixel) raster.Pixel {
	var v [3]int
	for i, m := range sepiaMatrix {
		v[i] = min(255, int(m[0]*float64(p.R())+m[1]*float64(p.G())+m[2]*float64(p.B())))
	}
	return raster.NewPixel(v[0], v[1], v[2])
}
