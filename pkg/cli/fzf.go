package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

// SelectCommandWithFzfStd displays a list of stdimg commands in fzf and returns the selected command name.
func SelectCommandWithFzfStd(commands []stdimg.CommandSpec) (string, error) {
	if _, err := exec.LookPath("fzf"); err != nil {
		return "", fmt.Errorf("fzf not found in PATH: %w", err)
	}
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}

	cmd := exec.Command("fzf", "--prompt=Command> ")
	cmd.Stdin = strings.NewReader(b.String())
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	return commandFromSelection(out.String())
}

func commandFromSelection(sel string) (string, error) {
	name, _, _ := strings.Cut(strings.TrimSpace(sel), ":")
	if name = strings.TrimSpace(name); name == "" {
		return "", fmt.Errorf("no command selected")
	}
	return name, nil
}

// findPattern builds the find(1) name filter for the loadable extensions.
func findPattern() string {
	parts := make([]string, len(Extensions))
	for i, ext := range Extensions {
		parts[i] = "-iname '*" + ext + "'"
	}
	return "\\( " + strings.Join(parts, " -o ") + " \\)"
}

// SelectFileWithFzf lists loadable images under startDir in fzf and returns
// the chosen path. It needs bash, find and fzf on PATH. The fzf preview pane
// uses kitty icat or imgcat when the terminal supports them.
func SelectFileWithFzf(startDir string) (string, error) {
	if _, err := exec.LookPath("fzf"); err != nil {
		return "", fmt.Errorf("fzf not found in PATH: %w", err)
	}
	var previewCmd string
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || file {}"
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || file {}"
	default:
		previewCmd = "file {}"
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f %s | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		findPattern(),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	if isKitty() {
		clearKittyImages()
	}
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages deletes images left behind by the fzf preview pane.
func clearKittyImages() {
	fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
}
