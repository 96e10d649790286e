package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Fepozopo/rasterkit/pkg/raster"
	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

// ErrExit is returned by Execute for "exit" and "quit".
var ErrExit = errors.New("exit requested")

const maxScriptDepth = 16

// Session is a table of named images and the interpreter for the command
// language that reads and writes it. Commands never modify a stored image;
// every result is a new image stored under the destination name.
type Session struct {
	cfg    Config
	out    io.Writer
	errOut io.Writer
	store  *StdMetaStore
	images map[string]*raster.Image
	depth  int

	// OnResult, when set, is called with every image a command stores.
	OnResult func(name string, img *raster.Image)
	// PickFile chooses a path for "load /". It defaults to the fzf picker.
	PickFile func() (string, error)
}

// NewSession returns an empty session. Messages go to out and per-line
// script errors to errOut.
func NewSession(cfg Config, out, errOut io.Writer) *Session {
	return &Session{
		cfg:      cfg,
		out:      out,
		errOut:   errOut,
		store:    NewMetaStoreFromStdimg(stdimg.Commands),
		images:   make(map[string]*raster.Image),
		PickFile: func() (string, error) { return SelectFileWithFzf(".") },
	}
}

// Image returns the image stored under name.
func (s *Session) Image(name string) (*raster.Image, bool) {
	img, ok := s.images[name]
	return img, ok
}

// Put stores img under name, replacing any previous image.
func (s *Session) Put(name string, img *raster.Image) {
	s.images[name] = img
	if s.OnResult != nil {
		s.OnResult(name, img)
	}
}

// Names returns the stored image names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.images))
	for n := range s.images {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Session) lookup(name string) (*raster.Image, error) {
	img, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoImage, name)
	}
	return img, nil
}

// Execute runs one command line. Blank lines and lines starting with '#'
// are ignored.
func (s *Session) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	verb, args := fields[0], fields[1:]
	start := time.Now()
	defer func() { debugf("%s took %s", verb, time.Since(start)) }()

	switch verb {
	case "exit", "quit":
		return ErrExit
	case "load":
		return s.load(args)
	case "save":
		return s.save(args)
	case "run":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: run <script>", stdimg.ErrArgs)
		}
		return s.runFile(args[0])
	case "list":
		s.list()
		return nil
	case "menu", "help":
		return s.help(args)
	case "man":
		fmt.Fprint(s.out, s.store.Manual())
		return nil
	case "rgb-split":
		return s.split(args)
	case "rgb-combine":
		return s.combine(args)
	}
	return s.transform(verb, args)
}

func (s *Session) load(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: load <path> <name>", stdimg.ErrArgs)
	}
	path := args[0]
	if path == "/" && s.PickFile != nil {
		sel, err := s.PickFile()
		if err != nil {
			return fmt.Errorf("file selection: %w", err)
		}
		fmt.Fprintf(s.out, " [fzf] %s\n", sel)
		path = sel
	}
	img, _, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.Put(args[1], img)
	fmt.Fprintf(s.out, "Loaded %s as %s (%s)\n", path, args[1], img)
	return nil
}

func (s *Session) save(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: save <path> <name>", stdimg.ErrArgs)
	}
	img, err := s.lookup(args[1])
	if err != nil {
		return err
	}
	if err := SaveImage(args[0], img, s.cfg.HWZPercent); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %s to %s\n", args[1], args[0])
	return nil
}

func (s *Session) list() {
	names := s.Names()
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No images loaded.")
		return
	}
	for _, n := range names {
		fmt.Fprintf(s.out, "  %s: %s\n", n, GetImageInfo(s.images[n]))
	}
}

func (s *Session) help(args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprint(s.out, s.store.Menu())
		return nil
	case 1:
		tip, err := s.store.GetTooltip(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, tip)
		return nil
	}
	return fmt.Errorf("%w: usage: help [command]", stdimg.ErrArgs)
}

// transform runs a single-source image command:
// <verb> <params...> <src> <dst> [split <p>].
func (s *Session) transform(verb string, args []string) error {
	spec, ok := stdimg.Lookup(verb)
	if !ok {
		return fmt.Errorf("%w: %s (try \"menu\")", stdimg.ErrUnknownCommand, verb)
	}
	n := len(spec.Args)
	if len(args) < n+2 {
		return fmt.Errorf("%w: usage: %s", stdimg.ErrArgs, spec.Usage)
	}
	srcName, dstName := args[n], args[n+1]
	params := append(append([]string(nil), args[:n]...), args[n+2:]...)

	src, err := s.lookup(srcName)
	if err != nil {
		return err
	}
	out, err := stdimg.Apply(src, verb, params)
	if err != nil {
		return err
	}
	s.Put(dstName, out)
	fmt.Fprintf(s.out, "%s: %s -> %s (%s)\n", verb, srcName, dstName, out)
	return nil
}

func (s *Session) split(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: usage: rgb-split <src> <red> <green> <blue>", stdimg.ErrArgs)
	}
	src, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	r, g, b, err := stdimg.ApplySplit(src)
	if err != nil {
		return err
	}
	s.Put(args[1], r)
	s.Put(args[2], g)
	s.Put(args[3], b)
	fmt.Fprintf(s.out, "rgb-split: %s -> %s %s %s\n", args[0], args[1], args[2], args[3])
	return nil
}

func (s *Session) combine(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: usage: rgb-combine <dst> <red> <green> <blue>", stdimg.ErrArgs)
	}
	var srcs [3]*raster.Image
	for i := range srcs {
		img, err := s.lookup(args[i+1])
		if err != nil {
			return err
		}
		srcs[i] = img
	}
	out, err := stdimg.ApplyCombine(srcs[0], srcs[1], srcs[2])
	if err != nil {
		return err
	}
	s.Put(args[0], out)
	fmt.Fprintf(s.out, "rgb-combine: %s %s %s -> %s\n", args[1], args[2], args[3], args[0])
	return nil
}

func (s *Session) runFile(path string) error {
	if s.depth >= maxScriptDepth {
		return fmt.Errorf("run %s: scripts nested deeper than %d", path, maxScriptDepth)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer f.Close()

	s.depth++
	defer func() { s.depth-- }()
	if err := s.RunScript(f); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	fmt.Fprintf(s.out, "Script %s executed.\n", path)
	return nil
}

// ScriptError summarizes the failing lines of a script.
type ScriptError struct {
	Failed int
	Total  int
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%d of %d commands failed", e.Failed, e.Total)
}

// RunScript executes r line by line. A failing line is reported to the
// error writer and the script continues; "exit" stops it. The returned
// error is a *ScriptError when any line failed.
func (s *Session) RunScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo, total, failed := 0, 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		err := s.Execute(line)
		if errors.Is(err, ErrExit) {
			break
		}
		if err != nil {
			failed++
			fmt.Fprintf(s.errOut, "line %d: %s: %v\n", lineNo, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if failed > 0 {
		return &ScriptError{Failed: failed, Total: total}
	}
	return nil
}
