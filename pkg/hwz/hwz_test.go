package hwz

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/Fepozopo/rasterkit/pkg/raster"
	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

func gradient(h, w int) *raster.Image {
	img := raster.NewChroma(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			img.SetPixel(r, c, raster.NewPixel(r*7, c*5, (r*c)%256))
		}
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	for _, percent := range []int{0, 40, 90} {
		src := gradient(13, 21)
		wp := stdimg.WaveletEncode(src, percent)

		var buf bytes.Buffer
		if err := Encode(&buf, wp); err != nil {
			t.Fatalf("encode %d: %v", percent, err)
		}
		got, err := Decode(&buf)
		if err != nil {
			t.Fatalf("decode %d: %v", percent, err)
		}
		if got.Height != wp.Height || got.Width != wp.Width || got.Side != wp.Side || len(got.Planes) != len(wp.Planes) {
			t.Fatalf("header mismatch: got %+v", got)
		}
		for p := range wp.Planes {
			for i := range wp.Planes[p] {
				if got.Planes[p][i] != wp.Planes[p][i] {
					t.Fatalf("plane %d index %d: got %v, want %v", p, i, got.Planes[p][i], wp.Planes[p][i])
				}
			}
		}
		if percent == 0 && !got.Decode().Equal(src) {
			t.Fatalf("lossless stream did not reproduce the image")
		}
	}
}

func TestMonoRoundTrip(t *testing.T) {
	src := raster.MonoFromRows([][]int{{200, 180, 0}, {160, 140, 0}})
	var buf bytes.Buffer
	if err := Encode(&buf, stdimg.WaveletEncode(src, 0)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	wp, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := wp.Decode(); !got.Equal(src) {
		t.Fatalf("got %v, want %v", got, src)
	}
}

func TestSparseIsSmaller(t *testing.T) {
	src := gradient(64, 64)
	var full, sparse bytes.Buffer
	if err := Encode(&full, stdimg.WaveletEncode(src, 0)); err != nil {
		t.Fatal(err)
	}
	if err := Encode(&sparse, stdimg.WaveletEncode(src, 95)); err != nil {
		t.Fatal(err)
	}
	if sparse.Len() >= full.Len() {
		t.Fatalf("95%% thresholded stream (%d bytes) not smaller than lossless (%d bytes)", sparse.Len(), full.Len())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := map[string][]byte{
		"empty":     nil,
		"bad magic": []byte("PNG!...."),
		"no frame":  []byte(magic + "not zstd"),
	}
	for name, data := range tests {
		if _, err := Decode(bytes.NewReader(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Decode(bytes.NewReader([]byte("nope"))); !errors.Is(err, ErrFormat) {
		t.Fatalf("bad magic should wrap ErrFormat, got %v", err)
	}
}

func le(vs ...uint32) []byte {
	var b []byte
	for _, v := range vs {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return b
}

// frame wraps a raw payload the way Encode does.
func frame(t *testing.T, payload []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	defer enc.Close()
	return append([]byte(magic), enc.EncodeAll(payload, nil)...)
}

func TestParseValidatesHeader(t *testing.T) {
	tests := map[string][]byte{
		"short":           le(1, 1),
		"wrong side":      le(5, 5, 4, 1, 0),
		"plane count":     le(2, 2, 2, 2),
		"index outside":   append(le(1, 1, 1, 1, 1, 9), make([]byte, 8)...),
		"trailing":        append(le(1, 1, 1, 1, 0), 0),
		"side too large":  le(32768, 32768, 32768, 3),
		"color too large": le(8192, 8192, 8192, 3),
	}
	for name, payload := range tests {
		if _, err := parse(payload); !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: got %v, want ErrFormat", name, err)
		}
	}
}

func TestDecodeBoundsHeaderAndPayload(t *testing.T) {
	tests := map[string][]byte{
		"huge side":      le(1<<31, 1<<31, 1<<31, 3),
		"short header":   le(1, 1),
		"oversized body": append(le(1, 1, 1, 1, 0), make([]byte, 64)...),
	}
	for name, payload := range tests {
		if _, err := Decode(bytes.NewReader(frame(t, payload))); !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: got %v, want ErrFormat", name, err)
		}
	}
}

func TestEncodeRejectsOversizedPlanes(t *testing.T) {
	wp := &stdimg.WaveletPlanes{Height: 8192, Width: 8192, Side: 8192, Planes: make([][]float64, 3)}
	var buf bytes.Buffer
	if err := Encode(&buf, wp); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written for a rejected image")
	}
}
