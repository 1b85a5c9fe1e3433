package theme

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/glint-editor/glint/internal/highlight"
)

func TestBuiltinThemesCoverAllClasses(t *testing.T) {
	for _, th := range []*Theme{DefaultDark(), Light(), Monokai()} {
		t.Run(th.Name, func(t *testing.T) {
			for _, c := range highlight.StyleClasses() {
				if _, ok := th.Styles[c]; !ok {
					t.Errorf("class %v has no style", c)
				}
			}
			if th.LineHighlight == 0 {
				t.Error("missing line highlight color")
			}
		})
	}
}

func TestStyleForFallback(t *testing.T) {
	th := &Theme{
		Name:       "sparse",
		Background: tcell.ColorBlack,
		Foreground: tcell.ColorWhite,
		Styles:     map[highlight.StyleClass]tcell.Style{},
	}
	got := th.StyleFor(highlight.StyleKeyword)
	fg, bg, _ := got.Decompose()
	if fg != tcell.ColorWhite || bg != tcell.ColorBlack {
		t.Errorf("fallback style = %v/%v", fg, bg)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Current() == nil || r.Current().Name != "Default Dark" {
		t.Fatal("Default Dark must be selected initially")
	}
	if len(r.Names()) < 3 {
		t.Errorf("Names() = %v, want the built-ins", r.Names())
	}

	if r.SetCurrent("no such theme") {
		t.Error("unknown theme must not be selectable")
	}
	if !r.SetCurrent("Monokai") {
		t.Fatal("Monokai must be selectable")
	}
	if r.Current().Name != "Monokai" {
		t.Error("SetCurrent did not switch")
	}
}

func TestRegisterDerivesLineHighlight(t *testing.T) {
	r := NewRegistry()
	r.Register(&Theme{
		Name:       "bare",
		Background: tcell.NewRGBColor(10, 10, 10),
		Foreground: tcell.NewRGBColor(200, 200, 200),
		Styles:     map[highlight.StyleClass]tcell.Style{},
	})
	got, ok := r.Get("bare")
	if !ok {
		t.Fatal("theme not registered")
	}
	if got.LineHighlight == 0 || got.LineHighlight == got.Background {
		t.Errorf("LineHighlight = %v, want derived off-background color", got.LineHighlight)
	}
}

const sampleTheme = `
name: Ocean
background: "#102030"
foreground: "#c0d0e0"
styles:
  comment: {color: "#608060", italic: true}
  keyword: {color: "#4080ff", bold: true}
  string: {color: "#a0c080"}
`

func TestParse(t *testing.T) {
	th, err := Parse([]byte(sampleTheme))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Ocean" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background != tcell.NewRGBColor(0x10, 0x20, 0x30) {
		t.Errorf("Background = %v", th.Background)
	}

	kw := th.StyleFor(highlight.StyleKeyword)
	fg, _, attrs := kw.Decompose()
	if fg != tcell.NewRGBColor(0x40, 0x80, 0xff) {
		t.Errorf("keyword color = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("keyword must be bold")
	}

	_, _, cAttrs := th.StyleFor(highlight.StyleComment).Decompose()
	if cAttrs&tcell.AttrItalic == 0 {
		t.Error("comment must be italic")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no name", `background: "#000000"`, "no name"},
		{"unknown class", "name: X\nstyles:\n  bogus: {color: \"#ffffff\"}\n", "unknown style class"},
		{"bad color", "name: X\nbackground: \"zzz\"\n", "bad color"},
		{"bad yaml", "{unterminated: ", "parsing theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
