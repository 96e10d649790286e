package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

func TestReadPPMColor(t *testing.T) {
	src := `P3
# a comment line
2 2
255
255 0 0   0 255 0
# another comment
0 0 255   300 -5 7
`
	img, err := ReadPPM(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if !img.IsChroma() || img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("got %s, want chroma 2x2", img)
	}
	want := raster.ChromaFromRows([][][3]int{
		{{255, 0, 0}, {0, 255, 0}},
		{{0, 0, 255}, {255, 0, 7}},
	})
	if !img.Equal(want) {
		t.Fatalf("pixels differ: got %v", img.Pixel(1, 1))
	}
}

func TestReadPPMGrayBecomesMono(t *testing.T) {
	src := "P3\n3 1\n255\n10 10 10\n20 20 20\n30 30 30\n"
	img, err := ReadPPM(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if img.IsChroma() {
		t.Fatalf("all-gray PPM should load as mono")
	}
	for c, want := range []int{10, 20, 30} {
		if got := img.Sample(0, c); got != want {
			t.Fatalf("sample %d = %d, want %d", c, got, want)
		}
	}
}

func TestReadPPMErrors(t *testing.T) {
	cases := map[string]string{
		"binary magic":    "P6\n1 1\n255\n0 0 0\n",
		"max too big":     "P3\n1 1\n65535\n0 0 0\n",
		"truncated":       "P3\n2 1\n255\n0 0 0\n",
		"bad sample":      "P3\n1 1\n255\n0 x 0\n",
		"no header":       "P3\n1\n",
		"huge dimensions": "P3 4294967296 4294967296 255\n",
		"zero width":      "P3 0 9000000000000000000 255\n",
		"zero height":     "P3 4 0 255\n",
		"wide":            "P3 40000 1 255\n0 0 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadPPM(strings.NewReader(src)); !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestWritePPMLayout(t *testing.T) {
	img := raster.MonoFromRows([][]int{{7, 8}})
	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	want := "P3\n2 1\n255\n7\n7\n7\n8\n8\n8\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPPMRoundTrip(t *testing.T) {
	img := sampleColorImage(3, 4)
	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	back, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("ReadPPM: %v", err)
	}
	if !back.Equal(img) {
		t.Fatalf("round trip changed the image")
	}
}
