// Package hwz stores thresholded Haar wavelet coefficients on disk.
//
// A file is the four byte magic "HWZ1" followed by one zstd frame. The
// decompressed payload is little-endian: uint32 height, width, side and
// plane count, then for every plane a uint32 number of non-zero
// coefficients followed by that many (uint32 index, float64 value) pairs.
// Indexes address the side x side plane in row-major order.
package hwz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

const magic = "HWZ1"

const headerSize = 16

// Limits on what Decode will allocate. maxCoefficients spans every plane,
// so a color image tops out at a 4096 side and a gray one at 8192.
const (
	maxSide         = 1 << 13
	maxCoefficients = 1 << 26
)

// ErrFormat reports a stream that is not a valid hwz file.
var ErrFormat = errors.New("hwz: malformed stream")

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Encode writes wp to w. Only non-zero coefficients are stored.
func Encode(w io.Writer, wp *stdimg.WaveletPlanes) error {
	if err := checkHeader(wp.Height, wp.Width, wp.Side, len(wp.Planes)); err != nil {
		return fmt.Errorf("hwz: encode: %w", err)
	}
	var raw bytes.Buffer
	hdr := []uint32{uint32(wp.Height), uint32(wp.Width), uint32(wp.Side), uint32(len(wp.Planes))}
	if err := binary.Write(&raw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	var rec [12]byte
	for _, plane := range wp.Planes {
		count := 0
		for _, v := range plane {
			if v != 0 {
				count++
			}
		}
		if err := binary.Write(&raw, binary.LittleEndian, uint32(count)); err != nil {
			return err
		}
		for i, v := range plane {
			if v == 0 {
				continue
			}
			binary.LittleEndian.PutUint32(rec[0:4], uint32(i))
			binary.LittleEndian.PutUint64(rec[4:12], math.Float64bits(v))
			raw.Write(rec[:])
		}
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("hwz: write magic: %w", err)
	}
	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	enc.Reset(w)
	if _, err := enc.Write(raw.Bytes()); err != nil {
		_ = enc.Close()
		return fmt.Errorf("hwz: zstd encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("hwz: zstd encode: %w", err)
	}
	return nil
}

// Decode reads a stream written by Encode.
func Decode(r io.Reader) (*stdimg.WaveletPlanes, error) {
	var m [len(magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("%w: short magic: %v", ErrFormat, err)
	}
	if string(m[:]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, m[:])
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)
	if err := dec.Reset(r); err != nil {
		return nil, fmt.Errorf("hwz: zstd decode: %w", err)
	}
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, dec, headerSize); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrFormat, err)
	}
	h, w, side, n, err := readHeader(payload.Bytes())
	if err != nil {
		return nil, err
	}
	if err := checkHeader(h, w, side, n); err != nil {
		return nil, err
	}
	// one count per plane, at most side*side records of 12 bytes each
	limit := int64(n) * (4 + int64(side)*int64(side)*12)
	if _, err := payload.ReadFrom(io.LimitReader(dec, limit+1)); err != nil {
		return nil, fmt.Errorf("hwz: zstd decode: %w", err)
	}
	if int64(payload.Len()) > headerSize+limit {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrFormat, headerSize+limit)
	}
	return parse(payload.Bytes())
}

func readHeader(b []byte) (h, w, side, n int, err error) {
	if len(b) < headerSize {
		return 0, 0, 0, 0, fmt.Errorf("%w: truncated header", ErrFormat)
	}
	u := func(i int) int { return int(binary.LittleEndian.Uint32(b[4*i : 4*i+4])) }
	return u(0), u(1), u(2), u(3), nil
}

// checkHeader validates the geometry before any plane is allocated.
func checkHeader(h, w, side, n int) error {
	if n != 1 && n != 3 {
		return fmt.Errorf("%w: %d planes", ErrFormat, n)
	}
	if side > maxSide || side != stdimg.PaddedSide(h, w) {
		return fmt.Errorf("%w: side %d does not fit %dx%d", ErrFormat, side, w, h)
	}
	if side*side*n > maxCoefficients {
		return fmt.Errorf("%w: %dx%d with %d planes is too large", ErrFormat, w, h, n)
	}
	return nil
}

func parse(payload []byte) (*stdimg.WaveletPlanes, error) {
	pos := 0
	readU32 := func(label string) (uint32, error) {
		if len(payload)-pos < 4 {
			return 0, fmt.Errorf("%w: truncated while reading %s", ErrFormat, label)
		}
		v := binary.LittleEndian.Uint32(payload[pos : pos+4])
		pos += 4
		return v, nil
	}

	h, w, side, n, err := readHeader(payload)
	if err != nil {
		return nil, err
	}
	if err := checkHeader(h, w, side, n); err != nil {
		return nil, err
	}
	pos = headerSize

	wp := &stdimg.WaveletPlanes{Height: h, Width: w, Side: side, Planes: make([][]float64, n)}
	size := side * side
	for p := range wp.Planes {
		count, err := readU32("coefficient count")
		if err != nil {
			return nil, err
		}
		if int(count) > size || len(payload)-pos < int(count)*12 {
			return nil, fmt.Errorf("%w: plane %d claims %d coefficients", ErrFormat, p, count)
		}
		plane := make([]float64, size)
		for range count {
			idx := binary.LittleEndian.Uint32(payload[pos : pos+4])
			v := math.Float64frombits(binary.LittleEndian.Uint64(payload[pos+4 : pos+12]))
			pos += 12
			if int(idx) >= size {
				return nil, fmt.Errorf("%w: index %d outside plane of %d", ErrFormat, idx, size)
			}
			plane[idx] = v
		}
		wp.Planes[p] = plane
	}
	if pos != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrFormat, len(payload)-pos)
	}
	return wp, nil
}
