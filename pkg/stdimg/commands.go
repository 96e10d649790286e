package stdimg

import "fmt"

// ArgSpec describes one numeric parameter of a command. Min and Max bound
// the accepted value when Bounded is set.
type ArgSpec struct {
	Name        string
	Type        string // "int"
	Required    bool
	Default     string // textual default (for help only)
	Description string
	Bounded     bool
	Min, Max    int
}

// CommandSpec defines a command: its numeric parameters, the image names it
// reads and writes, and whether it accepts a trailing "split <percent>".
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Images      []string // image name slots, sources first
	Split       bool
	Usage       string // short usage string
	Description string // brief description
}

var srcDst = []string{"src", "dst"}

// splitPercent validates the value following "split".
var splitPercent = ArgSpec{Name: "percent", Type: "int", Required: false, Description: "width share of the original in a split preview", Bounded: true, Min: 1, Max: 99}

func byteArg(name, desc string) ArgSpec {
	return ArgSpec{Name: name, Type: "int", Required: true, Description: desc, Bounded: true, Min: 0, Max: 255}
}

// Commands is the authoritative list of image commands.
var Commands = []CommandSpec{
	{
		Name:        "brighten",
		Args:        []ArgSpec{{Name: "delta", Type: "int", Required: true, Description: "amount added to every channel, negative darkens"}},
		Images:      srcDst,
		Description: "Brighten or darken by a constant, saturating at 0 and 255.",
	},
	{
		Name:        "horizontal-flip",
		Images:      srcDst,
		Description: "Mirror left to right.",
	},
	{
		Name:        "vertical-flip",
		Images:      srcDst,
		Description: "Mirror top to bottom.",
	},
	{
		Name:        "blur",
		Images:      srcDst,
		Split:       true,
		Description: "3x3 Gaussian blur with zero padding.",
	},
	{
		Name:        "sharpen",
		Images:      srcDst,
		Split:       true,
		Description: "5x5 sharpen with zero padding.",
	},
	{
		Name:        "sepia",
		Images:      srcDst,
		Split:       true,
		Description: "Sepia tone. Always produces a color image.",
	},
	{
		Name:        "red-component",
		Images:      srcDst,
		Description: "Keep the red channel, zero the others. Color images only.",
	},
	{
		Name:        "green-component",
		Images:      srcDst,
		Description: "Keep the green channel, zero the others. Color images only.",
	},
	{
		Name:        "blue-component",
		Images:      srcDst,
		Description: "Keep the blue channel, zero the others. Color images only.",
	},
	{
		Name:        "value-component",
		Images:      srcDst,
		Split:       true,
		Description: "Grayscale from max(R,G,B). Color images only.",
	},
	{
		Name:        "intensity-component",
		Images:      srcDst,
		Split:       true,
		Description: "Grayscale from the mean of R, G and B. Color images only.",
	},
	{
		Name:        "luma-component",
		Images:      srcDst,
		Split:       true,
		Description: "Grayscale from Rec. 709 luma. Color images only.",
	},
	{
		Name:        "histogram",
		Images:      srcDst,
		Description: "Render a 256x256 RGB line histogram.",
	},
	{
		Name:        "color-correct",
		Images:      srcDst,
		Split:       true,
		Description: "Align the histogram peaks of the three channels.",
	},
	{
		Name: "level-adjust",
		Args: []ArgSpec{
			byteArg("black", "input value mapped to 0"),
			byteArg("mid", "input value mapped to 128"),
			byteArg("white", "input value mapped to 255"),
		},
		Images:      srcDst,
		Split:       true,
		Description: "Quadratic levels curve through black, mid and white. Requires black < mid < white.",
	},
	{
		Name:        "compress",
		Args:        []ArgSpec{{Name: "percent", Type: "int", Required: true, Description: "share of wavelet coefficients to discard", Bounded: true, Min: 0, Max: 100}},
		Images:      srcDst,
		Description: "Lossy Haar wavelet compression.",
	},
	{
		Name:        "dither",
		Images:      srcDst,
		Split:       true,
		Description: "Floyd-Steinberg black and white dither. Color images only.",
	},
	{
		Name:        "rgb-split",
		Images:      []string{"src", "red", "green", "blue"},
		Description: "Split a color image into red, green and blue component images.",
	},
	{
		Name:        "rgb-combine",
		Images:      []string{"dst", "red", "green", "blue"},
		Description: "Combine the red, green and blue channels of three equally sized color images.",
	},
}

func init() {
	for i := range Commands {
		if Commands[i].Usage == "" {
			Commands[i].Usage = usageOf(Commands[i])
		}
	}
}

func usageOf(cs CommandSpec) string {
	u := cs.Name
	for _, a := range cs.Args {
		u += fmt.Sprintf(" <%s>", a.Name)
	}
	for _, n := range cs.Images {
		u += fmt.Sprintf(" <%s>", n)
	}
	if cs.Split {
		u += " [split <percent>]"
	}
	return u
}

// Lookup returns the command named name.
func Lookup(name string) (CommandSpec, bool) {
	for _, cs := range Commands {
		if cs.Name == name {
			return cs, true
		}
	}
	return CommandSpec{}, false
}
