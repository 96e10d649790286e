package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// Blur softens src with BlurKernel.
func Blur(src *raster.Image) *raster.Image {
	return Convolve(src, BlurKernel)
}

// Sharpen accentuates edges in src with SharpenKernel.
func Sharpen(src *raster.Image) *raster.Image {
	return Convolve(src, SharpenKernel)
}
