package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt     ParamType = "int"
	ParamTypePercent ParamType = "percent"
	ParamTypeImage   ParamType = "image"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI or client can use to validate input before invoking a command.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *int      `json:"min,omitempty"`
	Max      *int      `json:"max,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

// parsePercentValue accepts "40%" or a bare integer and returns the integer text.
func parsePercentValue(s string) (string, error) {
	s = strings.TrimSpace(s)
	raw := strings.TrimSuffix(s, "%")
	if _, err := strconv.Atoi(raw); err != nil {
		return "", fmt.Errorf("invalid percent value: %q", s)
	}
	return raw, nil
}

func isPercentArg(a stdimg.ArgSpec) bool {
	return (a.Bounded && a.Min >= 0 && a.Max == 100) || strings.Contains(a.Name, "percent")
}

// builtinHelp documents the session verbs that are not image commands.
var builtinHelp = []struct{ usage, desc string }{
	{"load <path> <name>", "Load an image file under a name. Use / as the path to pick a file with fzf."},
	{"save <path> <name>", "Save a named image. The extension selects the format."},
	{"run <script>", "Run the commands in a script file."},
	{"list", "List the images in the session."},
	{"menu | help [command]", "Show the command list, or the details of one command."},
	{"man", "Show every command with its parameters."},
	{"exit | quit", "Stop the script or leave the prompt."},
}

// GenerateTooltipFromStdSpec produces a tooltip string from a stdimg.CommandSpec.
func GenerateTooltipFromStdSpec(c stdimg.CommandSpec) string {
	var sb strings.Builder
	sb.WriteString(c.Usage)
	sb.WriteString("\n  ")
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	for _, a := range c.Args {
		fmt.Fprintf(&sb, "\n  - %s (%s", a.Name, a.Type)
		if a.Bounded {
			fmt.Fprintf(&sb, ", %d..%d", a.Min, a.Max)
		}
		sb.WriteString(")")
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
	}
	if c.Split {
		sb.WriteString("\n  - split <percent> (optional, 1..99): show the original on the left percent of a side-by-side preview")
	}
	return sb.String()
}

// GenerateValidationRulesFromStdSpec creates ValidationRule entries from a
// stdimg.CommandSpec, including one per image slot.
func GenerateValidationRulesFromStdSpec(c stdimg.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args)+len(c.Images))
	for _, a := range c.Args {
		t := ParamTypeInt
		if isPercentArg(a) {
			t = ParamTypePercent
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description}
		if a.Bounded {
			lo, hi := a.Min, a.Max
			r.Min, r.Max = &lo, &hi
		}
		rules[a.Name] = r
	}
	for _, n := range c.Images {
		rules[n] = ValidationRule{Type: ParamTypeImage, Required: true, Hint: "image name"}
	}
	return rules
}

// StdMetaStore is a lookup wrapper for stdimg.CommandSpec.
type StdMetaStore struct {
	Commands []stdimg.CommandSpec
	byName   map[string]stdimg.CommandSpec
}

// NewMetaStoreFromStdimg creates a StdMetaStore from stdimg.CommandSpec list.
func NewMetaStoreFromStdimg(cmds []stdimg.CommandSpec) *StdMetaStore {
	m := &StdMetaStore{Commands: cmds, byName: make(map[string]stdimg.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// GetTooltip returns tooltip string for a stdimg command.
func (m *StdMetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, name)
	}
	return GenerateTooltipFromStdSpec(c), nil
}

// GetCommandHelp returns both tooltip and validation rules for a stdimg command.
func (m *StdMetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, name)
	}
	return GenerateTooltipFromStdSpec(c), GenerateValidationRulesFromStdSpec(c), nil
}

// Menu returns the one-line-per-command overview printed by "menu".
func (m *StdMetaStore) Menu() string {
	var sb strings.Builder
	sb.WriteString("Image commands:\n")
	for _, c := range m.Commands {
		fmt.Fprintf(&sb, "  %s\n", c.Usage)
	}
	sb.WriteString("Session commands:\n")
	for _, b := range builtinHelp {
		fmt.Fprintf(&sb, "  %s\n", b.usage)
	}
	return sb.String()
}

// Manual returns the detailed help printed by "man".
func (m *StdMetaStore) Manual() string {
	var sb strings.Builder
	for _, c := range m.Commands {
		sb.WriteString(GenerateTooltipFromStdSpec(c))
		sb.WriteString("\n\n")
	}
	for _, b := range builtinHelp {
		fmt.Fprintf(&sb, "%s\n  %s\n\n", b.usage, b.desc)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// NormalizeArgsFromStd checks prompted parameter values against the command
// metadata and returns them in the form the session expects. Percent
// parameters may carry a trailing '%'.
func NormalizeArgsFromStd(store *StdMetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, cmdName)
	}
	if len(args) != len(c.Args) {
		return nil, fmt.Errorf("%w: %s takes %d parameters, got %d", stdimg.ErrArgs, cmdName, len(c.Args), len(args))
	}
	rules := GenerateValidationRulesFromStdSpec(c)
	out := make([]string, len(args))
	var errs []string
	for i, a := range c.Args {
		v := strings.TrimSpace(args[i])
		rule := rules[a.Name]
		if rule.Type == ParamTypePercent {
			p, err := parsePercentValue(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", a.Name, err))
				continue
			}
			v = p
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: expected integer, got %q", a.Name, args[i]))
			continue
		}
		if rule.Min != nil && (n < *rule.Min || n > *rule.Max) {
			errs = append(errs, fmt.Sprintf("%s: %d outside %d..%d", a.Name, n, *rule.Min, *rule.Max))
			continue
		}
		out[i] = v
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("%w: %s", stdimg.ErrArgs, strings.Join(errs, "; "))
	}
	return out, nil
}
