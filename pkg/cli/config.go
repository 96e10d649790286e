package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Preview modes accepted by RASTERKIT_PREVIEW.
const (
	PreviewAuto  = "auto"
	PreviewOff   = "off"
	PreviewKitty = "kitty"
	PreviewITerm = "iterm"
)

// Config holds the settings read from the environment (and an optional .env
// file in the working directory).
type Config struct {
	Debug        bool
	Preview      string // one of PreviewAuto, PreviewOff, PreviewKitty, PreviewITerm
	PreviewWidth int    // widest preview sent to the terminal, in pixels
	UpdateRepo   string // owner/name on GitHub
	HWZPercent   int    // threshold used when saving .hwz files
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Preview:      PreviewAuto,
		PreviewWidth: 640,
		UpdateRepo:   "Fepozopo/rasterkit",
	}
}

var debugEnabled bool

// LoadConfig loads .env when present and reads the RASTERKIT_* variables.
// Malformed values are reported; the defaults stay in place for them.
func LoadConfig() (Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var errs []string

	switch strings.ToLower(getenv("RASTERKIT_DEBUG")) {
	case "1", "true", "yes":
		cfg.Debug = true
	}
	if v := getenv("RASTERKIT_PREVIEW"); strings.TrimSpace(v) != "" {
		mode, err := ParsePreviewMode(v)
		if err != nil {
			errs = append(errs, "RASTERKIT_PREVIEW: "+err.Error())
		} else {
			cfg.Preview = mode
		}
	}
	if v := getenv("RASTERKIT_PREVIEW_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 {
			errs = append(errs, fmt.Sprintf("RASTERKIT_PREVIEW_WIDTH: want an integer >= 16, got %q", v))
		} else {
			cfg.PreviewWidth = n
		}
	}
	if v := strings.TrimSpace(getenv("RASTERKIT_UPDATE_REPO")); v != "" {
		if strings.Count(v, "/") != 1 {
			errs = append(errs, fmt.Sprintf("RASTERKIT_UPDATE_REPO: want owner/name, got %q", v))
		} else {
			cfg.UpdateRepo = v
		}
	}
	if v := getenv("RASTERKIT_HWZ_PERCENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			errs = append(errs, fmt.Sprintf("RASTERKIT_HWZ_PERCENT: want 0..100, got %q", v))
		} else {
			cfg.HWZPercent = n
		}
	}

	debugEnabled = cfg.Debug
	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// ParsePreviewMode normalizes a preview mode name and rejects unknown ones.
func ParsePreviewMode(s string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case PreviewAuto, PreviewOff, PreviewKitty, PreviewITerm:
		return v, nil
	}
	return "", fmt.Errorf("unknown mode %q (want auto, off, kitty or iterm)", v)
}

func debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "rasterkit: "+format+"\n", args...)
	}
}

// EnableDebug turns on debugf output regardless of RASTERKIT_DEBUG.
func EnableDebug() {
	debugEnabled = true
}
