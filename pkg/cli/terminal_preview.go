package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/draw"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

// Terminal preview for the Kitty graphics protocol and the iTerm2 inline
// image protocol (OSC 1337, also implemented by WezTerm, Warp, VSCode and
// others). The image is downscaled to the configured preview width and sent
// as PNG.

// ErrNoPreview means previews are disabled or the terminal supports neither
// protocol.
var ErrNoPreview = errors.New("terminal preview unavailable")

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		debugf("TERM_PROGRAM indicates inline-capable: %s", os.Getenv("TERM_PROGRAM"))
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") || strings.Contains(term, "tabby") {
		debugf("TERM suggests inline-capable: %s", term)
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

// previewBackend resolves the configured mode to "kitty", "iterm" or "".
func previewBackend(mode string) string {
	switch mode {
	case PreviewOff:
		return ""
	case PreviewKitty, PreviewITerm:
		return mode
	}
	if isKitty() {
		return PreviewKitty
	}
	if isInlineImageCapable() {
		return PreviewITerm
	}
	return ""
}

// PreviewSupported reports whether PreviewImage would draw anything.
func PreviewSupported(cfg Config) bool {
	return previewBackend(cfg.Preview) != ""
}

// PreviewImage draws img to w using the backend chosen by cfg.Preview.
func PreviewImage(w io.Writer, img *raster.Image, cfg Config) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	backend := previewBackend(cfg.Preview)
	if backend == "" {
		return ErrNoPreview
	}
	if img.Width() == 0 || img.Height() == 0 {
		return fmt.Errorf("empty image")
	}

	scaled := downscale(img.ToStdImage(), cfg.PreviewWidth)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	size := computePreviewSize(scaled)
	debugf("preview via %s: %dx%d px, %d bytes, %dx%d cells", backend, scaled.Bounds().Dx(), scaled.Bounds().Dy(), buf.Len(), size.Cols, size.Rows)

	if backend == PreviewKitty {
		return sendKittyImage(w, buf.Bytes(), size)
	}
	return sendInlineImage(w, buf.Bytes(), size)
}

// downscale shrinks src to at most maxWidth pixels wide, keeping the aspect
// ratio. Smaller images are returned unchanged.
func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}
	h := int(math.Round(float64(b.Dy()) * float64(maxWidth) / float64(b.Dx())))
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize maps pixel dimensions to a character cell area,
// preserving the aspect ratio and never scaling up.
func computePreviewSize(img image.Image) PreviewSize {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	const charW, charH = 8, 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	scaleW := float64(maxCols*charW) / float64(w)
	scaleH := float64(maxRows*charH) / float64(h)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = clampRange(cols, minCols, maxCols)
	rows = clampRange(rows, minRows, maxRows)

	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// postImageNewlines returns how many newlines to emit after an image so the
// prompt lands directly below it.
func postImageNewlines(requestedRows int) int {
	switch {
	case requestedRows <= 2:
		return 1
	case requestedRows <= 6:
		return 2
	case requestedRows <= 20:
		return 3
	}
	return 4
}

// sendKittyImage transmits PNG bytes with the kitty graphics protocol in
// base64 chunks of at most 4096 bytes. The first chunk carries the placement
// (c=cols, r=rows); q=2 suppresses terminal responses.
func sendKittyImage(w io.Writer, data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, strings.Repeat("\n", postImageNewlines(size.Rows)))
	return err
}

// sendInlineImage emits the iTerm2-style inline image OSC 1337 sequence.
func sendInlineImage(w io.Writer, data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + enc + "\a"
	n, err := io.WriteString(w, seq)
	debugf("wrote %d bytes for inline image (err=%v)", n, err)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.Repeat("\n", postImageNewlines(0)))
	return err
}
