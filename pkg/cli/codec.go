package cli

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Fepozopo/rasterkit/pkg/hwz"
	"github.com/Fepozopo/rasterkit/pkg/raster"
	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

var (
	// ErrNoImage reports a name missing from the session table.
	ErrNoImage = errors.New("no such image")
	// ErrFormat reports an unsupported file extension or malformed file.
	ErrFormat = errors.New("unsupported or malformed image file")
)

// Extensions lists the file extensions LoadImage and SaveImage understand.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".ppm", ".hwz"}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	case ".ppm":
		return "ppm", nil
	case ".hwz":
		return "hwz", nil
	}
	return "", fmt.Errorf("%w: extension %q (want one of %s)", ErrFormat, ext, strings.Join(Extensions, " "))
}

// LoadImage reads the file at path, choosing the decoder from the extension.
// It returns the image and the format name.
func LoadImage(path string) (*raster.Image, string, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var img *raster.Image
	switch format {
	case "ppm":
		img, err = ReadPPM(r)
	case "hwz":
		var wp *stdimg.WaveletPlanes
		wp, err = hwz.Decode(r)
		if err == nil {
			img = wp.Decode()
		}
	default:
		var std image.Image
		var got string
		std, got, err = image.Decode(r)
		if err == nil {
			debugf("decoded %s as %s", path, got)
			img = raster.FromImage(std)
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", path, err)
	}
	debugf("loaded %s: %s", path, img)
	return img, format, nil
}

// SaveImage writes img to path in the format named by its extension.
// hwzPercent is the coefficient threshold used for .hwz files. The image is
// written to a temporary file next to path and renamed into place, so a
// failed encode leaves any existing file untouched.
func SaveImage(path string, img *raster.Image, hwzPercent int) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	std := img.ToStdImage()
	switch format {
	case "png":
		err = png.Encode(w, std)
	case "jpeg":
		err = jpeg.Encode(w, std, &jpeg.Options{Quality: 92})
	case "gif":
		err = gif.Encode(w, std, nil)
	case "bmp":
		err = bmp.Encode(w, std)
	case "tiff":
		err = tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate})
	case "ppm":
		err = WritePPM(w, img)
	case "hwz":
		err = hwz.Encode(w, stdimg.WaveletEncode(img, hwzPercent))
	}
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = f.Chmod(0o644)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(f.Name(), path)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	debugf("saved %s as %s", path, format)
	return nil
}

// GetImageInfo returns a short description of img.
func GetImageInfo(img *raster.Image) string {
	kind := "color"
	if !img.IsChroma() {
		kind = "grayscale"
	}
	return fmt.Sprintf("Kind: %s, Width: %d, Height: %d", kind, img.Width(), img.Height())
}
