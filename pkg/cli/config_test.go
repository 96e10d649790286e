package cli

import (
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := configFromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("configFromEnv: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestConfigFromEnv(t *testing.T) {
	cfg, err := configFromEnv(envMap(map[string]string{
		"RASTERKIT_DEBUG":         "true",
		"RASTERKIT_PREVIEW":       "Kitty",
		"RASTERKIT_PREVIEW_WIDTH": "320",
		"RASTERKIT_UPDATE_REPO":   "someone/fork",
		"RASTERKIT_HWZ_PERCENT":   "35",
	}))
	defer func() { debugEnabled = false }()
	if err != nil {
		t.Fatalf("configFromEnv: %v", err)
	}
	want := Config{Debug: true, Preview: PreviewKitty, PreviewWidth: 320, UpdateRepo: "someone/fork", HWZPercent: 35}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestConfigRejectsBadValues(t *testing.T) {
	cfg, err := configFromEnv(envMap(map[string]string{
		"RASTERKIT_PREVIEW":       "sixel",
		"RASTERKIT_PREVIEW_WIDTH": "wide",
		"RASTERKIT_UPDATE_REPO":   "noslash",
		"RASTERKIT_HWZ_PERCENT":   "150",
	}))
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, key := range []string{"RASTERKIT_PREVIEW:", "RASTERKIT_PREVIEW_WIDTH", "RASTERKIT_UPDATE_REPO", "RASTERKIT_HWZ_PERCENT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not mention %s: %v", key, err)
		}
	}
	if cfg != DefaultConfig() {
		t.Fatalf("bad values should leave the defaults, got %+v", cfg)
	}
}

func TestParsePreviewMode(t *testing.T) {
	for in, want := range map[string]string{
		"auto":    PreviewAuto,
		" OFF ":   PreviewOff,
		"Kitty":   PreviewKitty,
		"iterm\n": PreviewITerm,
	} {
		got, err := ParsePreviewMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePreviewMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"", "sixel", "kitty2"} {
		if got, err := ParsePreviewMode(in); err == nil {
			t.Errorf("ParsePreviewMode(%q) = %q, want an error", in, got)
		}
	}
}
