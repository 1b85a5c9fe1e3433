// Package theme resolves style classes to renderable terminal styles.
// The tokenizers only emit style classes; colors exist solely here and
// are consumed at paint time.
package theme

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/glint-editor/glint/internal/highlight"
)

// Theme maps style classes to tcell styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the editor background color.
	Background tcell.Color

	// Foreground is the default text color.
	Foreground tcell.Color

	// LineHighlight is the current-line background.
	LineHighlight tcell.Color

	// Styles maps style classes to their terminal styles.
	Styles map[highlight.StyleClass]tcell.Style
}

// StyleFor returns the style for a class, falling back to the theme's
// default foreground/background.
func (t *Theme) StyleFor(class highlight.StyleClass) tcell.Style {
	if s, ok := t.Styles[class]; ok {
		return s
	}
	return t.base()
}

func (t *Theme) base() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// rgb builds a tcell color from components.
func rgb(r, g, b int32) tcell.Color {
	return tcell.NewRGBColor(r, g, b)
}

// DefaultDark returns the default dark theme.
func DefaultDark() *Theme {
	bg := rgb(30, 30, 30)
	fg := rgb(212, 212, 212)
	t := &Theme{
		Name:          "Default Dark",
		Background:    bg,
		Foreground:    fg,
		LineHighlight: rgb(40, 40, 40),
		Styles:        make(map[highlight.StyleClass]tcell.Style),
	}
	base := t.base()
	t.Styles[highlight.StyleNeutral] = base
	t.Styles[highlight.StyleComment] = base.Foreground(rgb(106, 153, 85)).Italic(true)
	t.Styles[highlight.StyleString] = base.Foreground(rgb(206, 145, 120))
	t.Styles[highlight.StyleStringAlt] = base.Foreground(rgb(215, 186, 125))
	t.Styles[highlight.StyleURLInString] = base.Foreground(rgb(78, 201, 176)).Underline(true)
	t.Styles[highlight.StyleKeyword] = base.Foreground(rgb(86, 156, 214))
	t.Styles[highlight.StyleBuiltin] = base.Foreground(rgb(220, 220, 170))
	t.Styles[highlight.StyleNumber] = base.Foreground(rgb(181, 206, 168))
	t.Styles[highlight.StyleOperator] = base.Foreground(rgb(180, 180, 180))
	t.Styles[highlight.StyleVariable] = base.Foreground(rgb(156, 220, 254))
	t.Styles[highlight.StyleLabel] = base.Foreground(rgb(197, 134, 192))
	t.Styles[highlight.StyleTag] = base.Foreground(rgb(86, 156, 214))
	t.Styles[highlight.StyleAttribute] = base.Foreground(rgb(156, 220, 254))
	t.Styles[highlight.StyleMarkup] = base.Foreground(rgb(86, 156, 214)).Bold(true)
	t.Styles[highlight.StyleMarkupCode] = base.Foreground(rgb(206, 145, 120))
	return t
}

// Light returns a light theme.
func Light() *Theme {
	bg := rgb(255, 255, 255)
	fg := rgb(0, 0, 0)
	t := &Theme{
		Name:          "Light",
		Background:    bg,
		Foreground:    fg,
		LineHighlight: rgb(245, 245, 245),
		Styles:        make(map[highlight.StyleClass]tcell.Style),
	}
	base := t.base()
	t.Styles[highlight.StyleNeutral] = base
	t.Styles[highlight.StyleComment] = base.Foreground(rgb(0, 128, 0)).Italic(true)
	t.Styles[highlight.StyleString] = base.Foreground(rgb(163, 21, 21))
	t.Styles[highlight.StyleStringAlt] = base.Foreground(rgb(163, 82, 21))
	t.Styles[highlight.StyleURLInString] = base.Foreground(rgb(38, 127, 153)).Underline(true)
	t.Styles[highlight.StyleKeyword] = base.Foreground(rgb(0, 0, 255))
	t.Styles[highlight.StyleBuiltin] = base.Foreground(rgb(121, 94, 38))
	t.Styles[highlight.StyleNumber] = base.Foreground(rgb(9, 134, 88))
	t.Styles[highlight.StyleOperator] = base.Foreground(rgb(60, 60, 60))
	t.Styles[highlight.StyleVariable] = base.Foreground(rgb(0, 16, 128))
	t.Styles[highlight.StyleLabel] = base.Foreground(rgb(175, 0, 219))
	t.Styles[highlight.StyleTag] = base.Foreground(rgb(0, 0, 255))
	t.Styles[highlight.StyleAttribute] = base.Foreground(rgb(255, 0, 0))
	t.Styles[highlight.StyleMarkup] = base.Foreground(rgb(0, 0, 255)).Bold(true)
	t.Styles[highlight.StyleMarkupCode] = base.Foreground(rgb(163, 21, 21))
	return t
}

// Monokai returns a Monokai-inspired theme.
func Monokai() *Theme {
	bg := rgb(39, 40, 34)
	fg := rgb(248, 248, 242)
	t := &Theme{
		Name:          "Monokai",
		Background:    bg,
		Foreground:    fg,
		LineHighlight: rgb(62, 61, 50),
		Styles:        make(map[highlight.StyleClass]tcell.Style),
	}
	base := t.base()
	t.Styles[highlight.StyleNeutral] = base
	t.Styles[highlight.StyleComment] = base.Foreground(rgb(117, 113, 94))
	t.Styles[highlight.StyleString] = base.Foreground(rgb(230, 219, 116))
	t.Styles[highlight.StyleStringAlt] = base.Foreground(rgb(230, 219, 116))
	t.Styles[highlight.StyleURLInString] = base.Foreground(rgb(102, 217, 239)).Underline(true)
	t.Styles[highlight.StyleKeyword] = base.Foreground(rgb(249, 38, 114))
	t.Styles[highlight.StyleBuiltin] = base.Foreground(rgb(102, 217, 239))
	t.Styles[highlight.StyleNumber] = base.Foreground(rgb(174, 129, 255))
	t.Styles[highlight.StyleOperator] = base.Foreground(rgb(249, 38, 114))
	t.Styles[highlight.StyleVariable] = base.Foreground(rgb(253, 151, 31))
	t.Styles[highlight.StyleLabel] = base.Foreground(rgb(174, 129, 255))
	t.Styles[highlight.StyleTag] = base.Foreground(rgb(249, 38, 114))
	t.Styles[highlight.StyleAttribute] = base.Foreground(rgb(166, 226, 46))
	t.Styles[highlight.StyleMarkup] = base.Foreground(rgb(102, 217, 239)).Bold(true)
	t.Styles[highlight.StyleMarkupCode] = base.Foreground(rgb(230, 219, 116))
	return t
}

// Registry holds available themes.
type Registry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewRegistry creates a registry with the built-in themes, Default
// Dark selected.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	r.Register(DefaultDark())
	r.Register(Light())
	r.Register(Monokai())
	r.current = r.themes["Default Dark"]
	return r
}

// Register adds a theme. A theme without a line-highlight color gets
// one derived from its background.
func (r *Registry) Register(t *Theme) {
	if t.LineHighlight == 0 {
		t.LineHighlight = deriveLineHighlight(t.Background)
	}
	r.themes[t.Name] = t
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the selected theme.
func (r *Registry) Current() *Theme { return r.current }

// SetCurrent selects a theme by name, reporting whether it exists.
func (r *Registry) SetCurrent(name string) bool {
	if t, ok := r.themes[name]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns the registered theme names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	return names
}

// deriveLineHighlight nudges the background toward the opposite
// luminance to get a subtle current-line color.
func deriveLineHighlight(bg tcell.Color) tcell.Color {
	cr, cg, cb := bg.RGB()
	c := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
	l, a, b := c.Lab()
	if l < 0.5 {
		l += 0.05
	} else {
		l -= 0.05
	}
	out := colorful.Lab(l, a, b).Clamped()
	ir, ig, ib := out.RGB255()
	return tcell.NewRGBColor(int32(ir), int32(ig), int32(ib))
}
