package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/Fepozopo/rasterkit/pkg/stdimg"
)

func TestValidationRulesFromStdSpec(t *testing.T) {
	spec, _ := stdimg.Lookup("compress")
	rules := GenerateValidationRulesFromStdSpec(spec)
	p := rules["percent"]
	if p.Type != ParamTypePercent || p.Min == nil || *p.Min != 0 || *p.Max != 100 {
		t.Fatalf("percent rule = %+v", p)
	}
	if rules["src"].Type != ParamTypeImage || rules["dst"].Type != ParamTypeImage {
		t.Fatalf("image slots missing: %+v", rules)
	}

	spec, _ = stdimg.Lookup("brighten")
	if r := GenerateValidationRulesFromStdSpec(spec)["delta"]; r.Type != ParamTypeInt || r.Min != nil {
		t.Fatalf("delta rule = %+v", r)
	}
}

func TestNormalizeArgsFromStd(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)

	got, err := NormalizeArgsFromStd(store, "compress", []string{" 40% "})
	if err != nil || len(got) != 1 || got[0] != "40" {
		t.Fatalf("compress 40%%: got %v, %v", got, err)
	}
	got, err = NormalizeArgsFromStd(store, "level-adjust", []string{"10", "20", "30"})
	if err != nil || strings.Join(got, " ") != "10 20 30" {
		t.Fatalf("level-adjust: got %v, %v", got, err)
	}

	bad := []struct {
		name string
		args []string
		want error
	}{
		{"level-adjust", []string{"10", "300", "x"}, stdimg.ErrArgs},
		{"compress", []string{"101"}, stdimg.ErrArgs},
		{"brighten", nil, stdimg.ErrArgs},
		{"nope", nil, stdimg.ErrUnknownCommand},
	}
	for _, tc := range bad {
		if _, err := NormalizeArgsFromStd(store, tc.name, tc.args); !errors.Is(err, tc.want) {
			t.Errorf("%s %v: got %v, want %v", tc.name, tc.args, err, tc.want)
		}
	}
}

func TestMenuListsEveryCommand(t *testing.T) {
	store := NewMetaStoreFromStdimg(stdimg.Commands)
	menu := store.Menu()
	for _, c := range stdimg.Commands {
		if !strings.Contains(menu, c.Usage) {
			t.Errorf("menu missing %q", c.Usage)
		}
	}
	for _, verb := range []string{"load <path> <name>", "save <path> <name>", "run <script>", "exit | quit"} {
		if !strings.Contains(menu, verb) {
			t.Errorf("menu missing %q", verb)
		}
	}
	if strings.ContainsRune(store.Manual(), '\u2014') {
		t.Errorf("manual should be plain ASCII punctuation")
	}
}
