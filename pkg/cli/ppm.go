package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

// maxPPMSide bounds each header dimension so width*height*3 cannot overflow.
const maxPPMSide = 1 << 15

// ReadPPM parses a plain-text (P3) PPM image. Lines starting with '#' are
// comments. The maximum value must not exceed 255; samples are clamped into
// [0,255] without rescaling. An image whose pixels are all gray is returned
// as Mono.
func ReadPPM(r io.Reader) (*raster.Image, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ppm: %w", err)
	}

	if len(tokens) < 4 {
		return nil, fmt.Errorf("%w: ppm header truncated", ErrFormat)
	}
	if tokens[0] != "P3" {
		return nil, fmt.Errorf("%w: ppm magic %q, want P3", ErrFormat, tokens[0])
	}
	header := make([]int, 3)
	for i := range header {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: bad ppm header field %q", ErrFormat, tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]
	if maxVal > 255 {
		return nil, fmt.Errorf("%w: ppm max value %d exceeds 255", ErrFormat, maxVal)
	}
	if width == 0 || height == 0 || width > maxPPMSide || height > maxPPMSide {
		return nil, fmt.Errorf("%w: ppm size %dx%d outside 1..%d", ErrFormat, width, height, maxPPMSide)
	}
	samples := tokens[4:]
	if want := width * height * 3; len(samples) < want {
		return nil, fmt.Errorf("%w: ppm has %d samples, want %d", ErrFormat, len(samples), want)
	}

	img := raster.NewChroma(height, width)
	k := 0
	next := func() (int, error) {
		v, err := strconv.Atoi(samples[k])
		if err != nil {
			return 0, fmt.Errorf("%w: bad ppm sample %q", ErrFormat, samples[k])
		}
		k++
		return v, nil
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var rgb [3]int
			for i := range rgb {
				v, err := next()
				if err != nil {
					return nil, err
				}
				rgb[i] = v
			}
			img.SetPixel(row, col, raster.NewPixel(rgb[0], rgb[1], rgb[2]))
		}
	}
	if img.IsGray() {
		return raster.FromImage(img), nil
	}
	return img, nil
}

// WritePPM writes img as a P3 PPM with max value 255, one sample per line.
// Mono samples are written as three equal components.
func WritePPM(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width(), img.Height())
	for row := 0; row < img.Height(); row++ {
		for col := 0; col < img.Width(); col++ {
			p := img.Pixel(row, col)
			fmt.Fprintf(bw, "%d\n%d\n%d\n", p.R(), p.G(), p.B())
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm: %w", err)
	}
	return nil
}
