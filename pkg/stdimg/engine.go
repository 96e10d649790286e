package stdimg

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Fepozopo/rasterkit/pkg/raster"
)

var (
	// ErrUnsupported means the command is not meaningful for the image kind,
	// such as extracting a color channel from a grayscale image.
	ErrUnsupported = errors.New("unsupported for this image kind")
	// ErrArgs reports a wrong argument count, a non-integer, an out of range
	// value or inconsistent inputs.
	ErrArgs = errors.New("invalid arguments")
	// ErrUnknownCommand reports a name missing from Commands.
	ErrUnknownCommand = errors.New("unknown command")
)

// Apply runs a single-source command on src and returns a new image.
// args holds the command's numeric parameters in order, optionally followed
// by "split" and a percent in 1..99 for commands that support a preview.
// Every argument is validated before src is read.
func Apply(src *raster.Image, commandName string, args []string) (*raster.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	spec, ok := Lookup(commandName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, commandName)
	}
	if len(spec.Images) != 2 {
		return nil, fmt.Errorf("%w: %s does not produce a single image", ErrArgs, commandName)
	}
	params, split, err := ParseArgs(spec, args)
	if err != nil {
		return nil, err
	}

	out, err := apply(src, spec.Name, params)
	if err != nil {
		return nil, err
	}
	if split > 0 {
		out = Preview(src, out, split)
	}
	return out, nil
}

func apply(src *raster.Image, name string, params []int) (*raster.Image, error) {
	var (
		out *raster.Image
		ok  = true
	)
	switch name {
	case "brighten":
		out = Brighten(src, params[0])
	case "horizontal-flip":
		out = HorizontalFlip(src)
	case "vertical-flip":
		out = VerticalFlip(src)
	case "blur":
		out = Blur(src)
	case "sharpen":
		out = Sharpen(src)
	case "sepia":
		out = Sepia(src)
	case "red-component":
		out, ok = RedComponent(src)
	case "green-component":
		out, ok = GreenComponent(src)
	case "blue-component":
		out, ok = BlueComponent(src)
	case "value-component":
		out, ok = Value(src)
	case "intensity-component":
		out, ok = Intensity(src)
	case "luma-component":
		out, ok = Luma(src)
	case "histogram":
		out = Histogram(src)
	case "color-correct":
		out = ColorCorrect(src)
	case "level-adjust":
		b, m, w := params[0], params[1], params[2]
		if !(b < m && m < w) {
			return nil, fmt.Errorf("%w: level-adjust needs black < mid < white, got %d %d %d", ErrArgs, b, m, w)
		}
		out = LevelAdjust(src, b, m, w)
	case "compress":
		out = Compress(src, params[0])
	case "dither":
		out, ok = Dither(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if !ok {
		return nil, fmt.Errorf("%s on %s image: %w", name, src.Kind(), ErrUnsupported)
	}
	return out, nil
}

// ApplySplit returns the three component images of a color image.
func ApplySplit(src *raster.Image) (red, green, blue *raster.Image, err error) {
	red, green, blue, ok := Split(src)
	if !ok {
		return nil, nil, nil, fmt.Errorf("rgb-split on %s image: %w", src.Kind(), ErrUnsupported)
	}
	return red, green, blue, nil
}

// ApplyCombine validates and combines three color images of equal size.
func ApplyCombine(red, green, blue *raster.Image) (*raster.Image, error) {
	for _, im := range []*raster.Image{red, green, blue} {
		if !im.IsChroma() {
			return nil, fmt.Errorf("rgb-combine with %s source: %w", im.Kind(), ErrUnsupported)
		}
	}
	if red.Height() != green.Height() || red.Width() != green.Width() ||
		red.Height() != blue.Height() || red.Width() != blue.Width() {
		return nil, fmt.Errorf("%w: rgb-combine sources differ in size (%v, %v, %v)", ErrArgs, red.Bounds().Size(), green.Bounds().Size(), blue.Bounds().Size())
	}
	return Combine(red, green, blue), nil
}

// ParseArgs checks args against spec and returns the numeric parameters and
// the split percent (0 when no preview was requested).
func ParseArgs(spec CommandSpec, args []string) ([]int, int, error) {
	n := len(spec.Args)
	switch {
	case len(args) == n:
	case spec.Split && len(args) == n+2:
		if args[n] != "split" {
			return nil, 0, fmt.Errorf("%w: expected \"split\", got %q", ErrArgs, args[n])
		}
	default:
		return nil, 0, fmt.Errorf("%w: usage: %s", ErrArgs, spec.Usage)
	}

	params := make([]int, n)
	for i, a := range spec.Args {
		v, err := parseArg(a, args[i])
		if err != nil {
			return nil, 0, err
		}
		params[i] = v
	}
	split := 0
	if len(args) == n+2 {
		v, err := parseArg(splitPercent, args[n+1])
		if err != nil {
			return nil, 0, err
		}
		split = v
	}
	return params, split, nil
}

func parseArg(a ArgSpec, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrArgs, a.Name, s)
	}
	if a.Bounded && (v < a.Min || v > a.Max) {
		return 0, fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrArgs, a.Name, a.Min, a.Max, v)
	}
	return v, nil
}
