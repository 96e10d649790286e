package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// Brighten adds delta to every channel. Positive deltas saturate at 255,
// zero or negative deltas floor at 0.
func Brighten(src *raster.Image, delta int) *raster.Image {
	if delta > 0 {
		return mapChannels(src, func(v int) int { return min(255, v+delta) })
	}
	return mapChannels(src, func(v int) int { return max(0, v+delta) })
}
