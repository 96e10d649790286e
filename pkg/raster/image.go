package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Kind is the pixel representation of an Image.
type Kind uint8

const (
	// Mono images carry one sample per pixel.
	Mono Kind = iota
	// Chroma images carry an RGB Pixel per pixel.
	Chroma
)

func (k Kind) String() string {
	if k == Chroma {
		return "chroma"
	}
	return "mono"
}

// Image is a height x width grid of either Mono samples or Chroma pixels.
// Storage is row-major and never shared between two Images. Setters exist
// for building a fresh result; once an Image is handed to a caller it is
// treated as read-only.
//
// Coordinates outside the grid are programming errors and panic.
type Image struct {
	kind   Kind
	height int
	width  int
	mono   []uint8
	chroma []Pixel
}

// NewMono allocates a zero-filled Mono image.
func NewMono(height, width int) *Image {
	checkDims(height, width)
	return &Image{kind: Mono, height: height, width: width, mono: make([]uint8, height*width)}
}

// NewChroma allocates a Chroma image with every pixel black.
func NewChroma(height, width int) *Image {
	checkDims(height, width)
	return &Image{kind: Chroma, height: height, width: width, chroma: make([]Pixel, height*width)}
}

// New allocates a zero-filled image of the given kind.
func New(kind Kind, height, width int) *Image {
	if kind == Chroma {
		return NewChroma(height, width)
	}
	return NewMono(height, width)
}

func checkDims(height, width int) {
	if height < 0 || width < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", height, width))
	}
}

// MonoFromRows builds a Mono image from a rectangular grid of samples.
// Samples are clamped into [0,255].
func MonoFromRows(rows [][]int) *Image {
	h, w := gridDims(len(rows), func(i int) int { return len(rows[i]) })
	img := NewMono(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			img.SetSample(r, c, rows[r][c])
		}
	}
	return img
}

// ChromaFromRows builds a Chroma image from a rectangular grid of RGB triples.
func ChromaFromRows(rows [][][3]int) *Image {
	h, w := gridDims(len(rows), func(i int) int { return len(rows[i]) })
	img := NewChroma(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := rows[r][c]
			img.SetPixel(r, c, NewPixel(v[0], v[1], v[2]))
		}
	}
	return img
}

func gridDims(n int, rowLen func(int) int) (int, int) {
	if n == 0 {
		return 0, 0
	}
	w := rowLen(0)
	for i := 1; i < n; i++ {
		if rowLen(i) != w {
			panic(fmt.Sprintf("raster: ragged grid, row %d has %d elements, want %d", i, rowLen(i), w))
		}
	}
	return n, w
}

func (im *Image) Kind() Kind { return im.kind }

func (im *Image) Height() int { return im.height }

func (im *Image) Width() int { return im.width }

// IsChroma reports whether the image carries RGB pixels.
func (im *Image) IsChroma() bool { return im.kind == Chroma }

func (im *Image) offset(row, col int) int {
	if uint(row) >= uint(im.height) || uint(col) >= uint(im.width) {
		panic(fmt.Sprintf("raster: (%d,%d) outside %dx%d image", row, col, im.height, im.width))
	}
	return row*im.width + col
}

// Sample returns the Mono sample at (row, col). It panics on a Chroma image.
func (im *Image) Sample(row, col int) int {
	if im.kind != Mono {
		panic("raster: Sample on chroma image")
	}
	return int(im.mono[im.offset(row, col)])
}

// Pixel returns the pixel at (row, col). Mono samples are widened to a gray
// pixel.
func (im *Image) Pixel(row, col int) Pixel {
	i := im.offset(row, col)
	if im.kind == Mono {
		v := im.mono[i]
		return Pixel{r: v, g: v, b: v}
	}
	return im.chroma[i]
}

// Component returns channel c at (row, col). Every channel of a Mono image
// is its single sample.
func (im *Image) Component(row, col int, c Channel) int {
	i := im.offset(row, col)
	if im.kind == Mono {
		return int(im.mono[i])
	}
	return im.chroma[i].Component(c)
}

// SetSample stores a clamped sample. It panics on a Chroma image.
func (im *Image) SetSample(row, col, v int) {
	if im.kind != Mono {
		panic("raster: SetSample on chroma image")
	}
	im.mono[im.offset(row, col)] = Clamp8(v)
}

// SetPixel stores p. It panics on a Mono image.
func (im *Image) SetPixel(row, col int, p Pixel) {
	if im.kind != Chroma {
		panic("raster: SetPixel on mono image")
	}
	im.chroma[im.offset(row, col)] = p
}

// Equal reports structural equality: same kind, same dimensions and the same
// value at every coordinate.
func (im *Image) Equal(o *Image) bool {
	if im == nil || o == nil {
		return im == o
	}
	if im.kind != o.kind || im.height != o.height || im.width != o.width {
		return false
	}
	if im.kind == Mono {
		for i := range im.mono {
			if im.mono[i] != o.mono[i] {
				return false
			}
		}
		return true
	}
	for i := range im.chroma {
		if im.chroma[i] != o.chroma[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := &Image{kind: im.kind, height: im.height, width: im.width}
	if im.kind == Mono {
		out.mono = append([]uint8(nil), im.mono...)
	} else {
		out.chroma = append([]Pixel(nil), im.chroma...)
	}
	return out
}

// ToChroma returns a Chroma copy. Mono samples become gray pixels.
func (im *Image) ToChroma() *Image {
	if im.kind == Chroma {
		return im.Clone()
	}
	out := NewChroma(im.height, im.width)
	for i, v := range im.mono {
		out.chroma[i] = Pixel{r: v, g: v, b: v}
	}
	return out
}

// Plane copies channel c into a row-major slice of height*width samples.
func (im *Image) Plane(c Channel) []uint8 {
	out := make([]uint8, im.height*im.width)
	if im.kind == Mono {
		copy(out, im.mono)
		return out
	}
	for i, p := range im.chroma {
		out[i] = uint8(p.Component(c))
	}
	return out
}

// IsGray reports whether every pixel has equal components. Mono images are
// always gray.
func (im *Image) IsGray() bool {
	if im.kind == Mono {
		return true
	}
	for _, p := range im.chroma {
		if !p.IsGray() {
			return false
		}
	}
	return true
}

func (im *Image) String() string {
	return fmt.Sprintf("%s %dx%d", im.kind, im.width, im.height)
}

// ColorModel implements image.Image. Mono images report color.GrayModel.
func (im *Image) ColorModel() color.Model {
	if im.kind == Mono {
		return color.GrayModel
	}
	return color.NRGBAModel
}

// Bounds implements image.Image with the origin at (0,0); x is the column.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.width, im.height)
}

// At implements image.Image. Points outside the grid are transparent black,
// matching the image package convention.
func (im *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= im.width || y >= im.height {
		if im.kind == Mono {
			return color.Gray{}
		}
		return color.NRGBA{}
	}
	if im.kind == Mono {
		return color.Gray{Y: im.mono[y*im.width+x]}
	}
	p := im.chroma[y*im.width+x]
	return color.NRGBA{R: p.r, G: p.g, B: p.b, A: 255}
}
