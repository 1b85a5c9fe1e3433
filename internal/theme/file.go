package theme

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/glint-editor/glint/internal/highlight"
)

// themeFile is the on-disk YAML theme format:
//
//	name: My Theme
//	background: "#1e1e1e"
//	foreground: "#d4d4d4"
//	styles:
//	  comment: {color: "#6a9955", italic: true}
//	  keyword: {color: "#569cd6", bold: true}
type themeFile struct {
	Name       string               `yaml:"name"`
	Background string               `yaml:"background"`
	Foreground string               `yaml:"foreground"`
	Styles     map[string]styleSpec `yaml:"styles"`
}

type styleSpec struct {
	Color     string `yaml:"color"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
}

// LoadFile reads a YAML theme file.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a theme from YAML theme data.
func Parse(data []byte) (*Theme, error) {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}
	if tf.Name == "" {
		return nil, fmt.Errorf("theme has no name")
	}

	bg, err := parseColor(tf.Background, tcell.ColorBlack)
	if err != nil {
		return nil, fmt.Errorf("theme %s: background: %w", tf.Name, err)
	}
	fg, err := parseColor(tf.Foreground, tcell.ColorWhite)
	if err != nil {
		return nil, fmt.Errorf("theme %s: foreground: %w", tf.Name, err)
	}

	t := &Theme{
		Name:       tf.Name,
		Background: bg,
		Foreground: fg,
		Styles:     make(map[highlight.StyleClass]tcell.Style),
	}
	base := t.base()
	for name, spec := range tf.Styles {
		class, ok := highlight.StyleClassFromString(name)
		if !ok {
			return nil, fmt.Errorf("theme %s: unknown style class %q", tf.Name, name)
		}
		style := base
		if spec.Color != "" {
			c, err := parseColor(spec.Color, fg)
			if err != nil {
				return nil, fmt.Errorf("theme %s: style %s: %w", tf.Name, name, err)
			}
			style = style.Foreground(c)
		}
		style = style.Bold(spec.Bold).Italic(spec.Italic).Underline(spec.Underline)
		t.Styles[class] = style
	}
	return t, nil
}

// parseColor parses a #rrggbb hex color, returning the fallback for an
// empty string.
func parseColor(s string, fallback tcell.Color) (tcell.Color, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
