package stdimg

import "github.com/Fepozopo/rasterkit/pkg/raster"

// FrequencyTable counts occurrences of every sample value 0..255.
type FrequencyTable [256]int

// Peak returns the value with the highest count. Ties keep the lowest value.
func (t *FrequencyTable) Peak() int {
	idx, best := 0, 0
	for i, n := range t {
		if n > best {
			best = n
			idx = i
		}
	}
	return idx
}

// Max returns the highest count in the table.
func (t *FrequencyTable) Max() int {
	best := 0
	for _, n := range t {
		best = max(best, n)
	}
	return best
}

// Frequencies tabulates the red, green and blue channels of src. For Mono
// input all three tables describe the single sample channel.
func Frequencies(src *raster.Image) [3]FrequencyTable {
	var tables [3]FrequencyTable
	for r := 0; r < src.Height(); r++ {
		for c := 0; c < src.Width(); c++ {
			p := src.Pixel(r, c)
			tables[0][p.R()]++
			tables[1][p.G()]++
			tables[2][p.B()]++
		}
	}
	return tables
}

const histogramSize = 256

var (
	histogramBackground = raster.NewPixel(255, 255, 255)
	histogramGridColor  = raster.NewPixel(220, 220, 220)
	histogramLineColors = [3]raster.Pixel{
		raster.NewPixel(255, 0, 0),
		raster.NewPixel(0, 255, 0),
		raster.NewPixel(0, 0, 255),
	}
	histogramCells = []int{11, 12, 12, 12, 12}
)

// Histogram renders the per-channel frequency curves of src onto a 256x256
// Chroma canvas with a light grid. All three curves share one scale, the
// largest count found in any channel.
func Histogram(src *raster.Image) *raster.Image {
	tables := Frequencies(src)
	peak := max(tables[0].Max(), tables[1].Max(), tables[2].Max())

	canvas := raster.NewChroma(histogramSize, histogramSize)
	drawHistogramGrid(canvas)
	for ch := range tables {
		var norm [256]float64
		if peak > 0 {
			for i, n := range tables[ch] {
				norm[i] = float64(n) / float64(peak)
			}
		}
		plotCurve(canvas, norm[:], histogramLineColors[ch])
	}
	return canvas
}

func drawHistogramGrid(canvas *raster.Image) {
	size := canvas.Width()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			canvas.SetPixel(r, c, histogramBackground)
		}
	}
	x := 0
	for i := 0; i < 20; i++ {
		x += histogramCells[i%len(histogramCells)]
		drawLine(canvas, x, 0, x, size, histogramGridColor)
		x++
	}
	y := size - 1
	for i := 0; i < 20; i++ {
		y -= histogramCells[i%len(histogramCells)]
		drawLine(canvas, 0, y, size-1, y, histogramGridColor)
		y--
	}
}

// plotCurve draws a polyline through (i, y(norm[i])). A normalized value of
// 1.0 maps one row above the canvas and is clipped.
func plotCurve(canvas *raster.Image, norm []float64, col raster.Pixel) {
	h := canvas.Height()
	yOf := func(v float64) int { return h - int(v*float64(h)) - 1 }
	px, py := 0, yOf(norm[0])
	for i := 1; i < len(norm); i++ {
		y := yOf(norm[i])
		drawLine(canvas, px, py, i, y, col)
		px, py = i, y
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm, skipping points
// that fall outside the canvas.
func drawLine(canvas *raster.Image, x0, y0, x1, y1 int, col raster.Pixel) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < canvas.Width() && y0 < canvas.Height() {
			canvas.SetPixel(y0, x0, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
