package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterkit/pkg/raster"
	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Type a command line (\"menu\" lists them), or one of:")
	fmt.Fprintln(w, "  /  - select a command and enter its arguments")
	fmt.Fprintln(w, "  o  - open an image (enter '/' as the path to use fzf)")
	fmt.Fprintln(w, "  s  - save an image")
	fmt.Fprintln(w, "  u  - check for updates")
	fmt.Fprintln(w, "  h  - show this help message")
	fmt.Fprintln(w, "  q  - quit")
}

// RunCLI runs the interactive prompt until "q", "exit" or end of input.
// Every image a command produces is previewed when the terminal supports it.
func RunCLI(cfg Config, in io.Reader, out io.Writer) error {
	sess := NewSession(cfg, out, out)
	if PreviewSupported(cfg) {
		sess.OnResult = func(name string, img *raster.Image) {
			if err := PreviewImage(out, img, cfg); err != nil {
				debugf("preview of %s failed: %v", name, err)
			}
		}
	}

	fmt.Fprintf(out, "rasterkit %s\n", Version)
	usage(out)

	reader := bufio.NewReader(in)
	for {
		line, err := PromptLineFrom(reader, out, "\n> ")
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		switch line {
		case "":
			continue
		case "h":
			usage(out)
			continue
		case "q":
			fmt.Fprintln(out, "Exiting...")
			return nil
		case "u", "update":
			if err := CheckForUpdates(cfg, reader, out); err != nil {
				fmt.Fprintf(out, "update check error: %v\n", err)
			}
			continue
		case "o":
			err = promptOpen(sess, reader, out)
		case "s":
			err = promptSave(sess, reader, out)
		case "/":
			line, err = promptCommand(sess.store, reader, out)
			if err == nil && line != "" {
				err = sess.Execute(line)
			}
		default:
			err = sess.Execute(line)
		}

		if errors.Is(err, ErrExit) {
			fmt.Fprintln(out, "Exiting...")
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func promptOpen(sess *Session, reader *bufio.Reader, out io.Writer) error {
	path, err := PromptPathFrom(reader, out, "Path to image (or '/' for fzf, empty to cancel): ")
	if err != nil || path == "" {
		return err
	}
	name, err := PromptLineFrom(reader, out, "Name for the image: ")
	if err != nil || name == "" {
		return err
	}
	return sess.load([]string{path, name})
}

func promptSave(sess *Session, reader *bufio.Reader, out io.Writer) error {
	name, err := PromptLineFrom(reader, out, "Image to save: ")
	if err != nil || name == "" {
		return err
	}
	path, err := PromptLineFrom(reader, out, "Output filename: ")
	if err != nil || path == "" {
		return err
	}
	return sess.save([]string{path, name})
}

// promptCommand picks a command with fzf (or a numbered list when fzf is
// unavailable), prompts for each of its arguments and returns the assembled
// command line. An empty line means the user cancelled.
func promptCommand(store *StdMetaStore, reader *bufio.Reader, out io.Writer) (string, error) {
	name, err := SelectCommandWithFzfStd(store.Commands)
	if err != nil || name == "" {
		debugf("fzf command selection: %v", err)
		name, err = selectCommandFromList(store, reader, out)
		if err != nil || name == "" {
			return "", err
		}
	}
	c, ok := store.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, name)
	}

	tooltip, rules, _ := store.GetCommandHelp(name)
	fmt.Fprintln(out, "\n"+tooltip+"\n")

	raw := make([]string, len(c.Args))
	for i, a := range c.Args {
		label := string(rules[a.Name].Type)
		if r := rules[a.Name]; r.Min != nil {
			label = fmt.Sprintf("%s %d..%d", label, *r.Min, *r.Max)
		}
		if raw[i], err = PromptLineFrom(reader, out, fmt.Sprintf("%s (%s): ", a.Name, label)); err != nil {
			return "", err
		}
	}
	params, err := NormalizeArgsFromStd(store, name, raw)
	if err != nil {
		return "", err
	}

	words := append([]string{name}, params...)
	for _, slot := range c.Images {
		v, err := PromptLineFrom(reader, out, fmt.Sprintf("%s image name: ", slot))
		if err != nil {
			return "", err
		}
		if v == "" || strings.ContainsAny(v, " \t") {
			return "", fmt.Errorf("%w: %s needs a single-word image name", stdimg.ErrArgs, slot)
		}
		words = append(words, v)
	}
	if c.Split {
		v, err := PromptLineFrom(reader, out, "split preview percent (1..99, empty for none): ")
		if err != nil {
			return "", err
		}
		if v != "" {
			p, err := parsePercentValue(v)
			if err != nil {
				return "", err
			}
			words = append(words, "split", p)
		}
	}
	return strings.Join(words, " "), nil
}

func selectCommandFromList(store *StdMetaStore, reader *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Command selection:")
	for i, c := range store.Commands {
		fmt.Fprintf(out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	sel, err := PromptLineFrom(reader, out, "Enter number or command name (leave empty to cancel): ")
	if err != nil || sel == "" {
		return "", err
	}
	if idx, perr := strconv.Atoi(sel); perr == nil {
		if idx < 1 || idx > len(store.Commands) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return store.Commands[idx-1].Name, nil
	}

	sel = strings.ToLower(sel)
	if _, ok := store.byName[sel]; ok {
		return sel, nil
	}
	var matches []string
	for _, c := range store.Commands {
		if strings.HasPrefix(c.Name, sel) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, sel)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous selection %q: %s", sel, strings.Join(matches, ", "))
}

// RunScriptFile runs the script at path in a fresh session. Per-line
// failures are written to errOut.
func RunScriptFile(cfg Config, path string, out, errOut io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return NewSession(cfg, out, errOut).RunScript(f)
}
