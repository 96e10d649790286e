package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptLineFrom displays a prompt on out and reads a full line from reader.
// The returned string is trimmed of surrounding whitespace. A final line
// without a newline is returned without error; io.EOF is returned only when
// nothing was read.
func PromptLineFrom(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptPathFrom reads a path like PromptLineFrom and treats a single "/" as
// a request to pick a file with fzf. When fzf is unavailable or the
// selection is cancelled the prompt is shown again.
func PromptPathFrom(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	input, err := PromptLineFrom(reader, out, prompt)
	if err != nil || input != "/" {
		return input, err
	}
	sel, selErr := SelectFileWithFzf(".")
	if selErr == nil && sel != "" {
		fmt.Fprintf(out, " [fzf] %s\n", sel)
		return sel, nil
	}
	debugf("fzf selection failed: %v", selErr)
	return PromptLineFrom(reader, out, prompt)
}
