package raster

import (
	"image"
	"image/color"
)

// FromImage converts any decoded image. When every pixel has equal red,
// green and blue components the result is Mono, otherwise Chroma. Alpha is
// dropped.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	h, w := b.Dy(), b.Dx()
	px := make([]Pixel, 0, h*w)
	gray := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			p := Pixel{r: c.R, g: c.G, b: c.B}
			gray = gray && p.IsGray()
			px = append(px, p)
		}
	}
	if gray {
		out := NewMono(h, w)
		for i, p := range px {
			out.mono[i] = p.r
		}
		return out
	}
	out := NewChroma(h, w)
	copy(out.chroma, px)
	return out
}

// ToStdImage returns a standard library image: *image.Gray for Mono and an
// opaque *image.NRGBA for Chroma.
func (im *Image) ToStdImage() image.Image {
	r := image.Rect(0, 0, im.width, im.height)
	if im.kind == Mono {
		g := image.NewGray(r)
		for y := 0; y < im.height; y++ {
			copy(g.Pix[y*g.Stride:y*g.Stride+im.width], im.mono[y*im.width:(y+1)*im.width])
		}
		return g
	}
	n := image.NewNRGBA(r)
	for i, p := range im.chroma {
		n.Pix[4*i+0] = p.r
		n.Pix[4*i+1] = p.g
		n.Pix[4*i+2] = p.b
		n.Pix[4*i+3] = 255
	}
	return n
}
