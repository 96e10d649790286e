// Package raster holds the two in-memory pixel representations used by
// rasterkit: single-channel (Mono) and three-channel (Chroma) grids of 8-bit
// samples.
package raster

// Channel selects one component of a Pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the three color channels in storage order.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// Pixel is an immutable RGB triple. Components are clamped to [0,255] when
// the pixel is built.
type Pixel struct {
	r, g, b uint8
}

// NewPixel builds a pixel, clamping every component into [0,255].
func NewPixel(r, g, b int) Pixel {
	return Pixel{r: Clamp8(r), g: Clamp8(g), b: Clamp8(b)}
}

// GrayPixel returns a pixel whose three components are all v.
func GrayPixel(v int) Pixel {
	c := Clamp8(v)
	return Pixel{r: c, g: c, b: c}
}

func (p Pixel) R() int { return int(p.r) }
func (p Pixel) G() int { return int(p.g) }
func (p Pixel) B() int { return int(p.b) }

// Component returns the value of channel c.
func (p Pixel) Component(c Channel) int {
	switch c {
	case Red:
		return int(p.r)
	case Green:
		return int(p.g)
	case Blue:
		return int(p.b)
	}
	panic("raster: invalid channel")
}

// IsGray reports whether all three components are equal.
func (p Pixel) IsGray() bool {
	return p.r == p.g && p.g == p.b
}

// Clamp8 clamps v to [0,255].
func Clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ClampFloat clamps v to [0,255] and truncates toward zero.
func ClampFloat(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}
