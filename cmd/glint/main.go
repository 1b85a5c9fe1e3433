// Package main is the glint viewer: a read-only terminal pager with
// incremental syntax highlighting and live reload.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/glint-editor/glint/internal/config"
	"github.com/glint-editor/glint/internal/document"
	"github.com/glint-editor/glint/internal/highlight"
	"github.com/glint-editor/glint/internal/highlight/driver"
	"github.com/glint-editor/glint/internal/highlight/shell"
	"github.com/glint-editor/glint/internal/highlight/simple"
	"github.com/glint-editor/glint/internal/langdetect"
	"github.com/glint-editor/glint/internal/plugin/luagram"
	"github.com/glint-editor/glint/internal/theme"
	"github.com/glint-editor/glint/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	language    string
	themeName   string
	showVersion bool
	path        string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("glint %s (%s)\n", version, commit)
		return 0
	}
	if opts.path == "" {
		fmt.Fprintln(os.Stderr, "usage: glint [flags] <file>")
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	registry := buildRegistry(cfg)
	themes := buildThemes(cfg)
	if opts.themeName != "" {
		cfg.Theme = opts.themeName
	}
	if !themes.SetCurrent(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default\n", cfg.Theme)
	}

	data, err := os.ReadFile(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	buf := document.NewLineBuffer(strings.ReplaceAll(string(data), "\r\n", "\n"))

	lang := opts.language
	if lang == "" {
		lang = langdetect.Detect(opts.path, buf.Line(0))
	}
	engine := driver.New(buf, registry.ForLanguage(lang), cfg.MaxFileSize)

	v := &viewer{
		path:     opts.path,
		cfgPath:  opts.configPath,
		buf:      buf,
		engine:   engine,
		themes:   themes,
		theme:    themes.Current(),
		language: lang,
		tabWidth: cfg.TabWidth,
	}
	if err := v.main(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file path")
	flag.StringVar(&opts.language, "lang", "", "language override (e.g. sh, python)")
	flag.StringVar(&opts.themeName, "theme", "", "theme name")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()
	opts.path = flag.Arg(0)
	return opts
}

// buildRegistry assembles the grammar registry: shell, the built-in
// simple grammars, then user Lua grammars.
func buildRegistry(cfg config.Config) *highlight.Registry {
	reg := highlight.NewRegistry()
	reg.Register(shell.New())
	simple.RegisterBuiltins(reg)
	if cfg.GrammarDir != "" {
		for _, err := range luagram.LoadDir(cfg.GrammarDir, reg) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	return reg
}

// buildThemes assembles built-in themes plus user YAML themes.
func buildThemes(cfg config.Config) *theme.Registry {
	themes := theme.NewRegistry()
	if cfg.ThemeDir == "" {
		return themes
	}
	entries, err := os.ReadDir(cfg.ThemeDir)
	if err != nil {
		return themes
	}
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || (!strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml")) {
			continue
		}
		t, err := theme.LoadFile(filepath.Join(cfg.ThemeDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		themes.Register(t)
	}
	return themes
}

// viewer is the full-screen pager.
type viewer struct {
	path     string
	cfgPath  string
	buf      *document.LineBuffer
	engine   *driver.Engine
	themes   *theme.Registry
	theme    *theme.Theme
	language string
	tabWidth int

	screen tcell.Screen
	top    int // first visible line
}

// reloadEvent is posted by the watcher goroutine; the actual reload
// runs on the event loop so viewer state is never touched concurrently.
type reloadEvent struct {
	config bool
}

// stepBudget is how many lines one idle slice tokenizes; small enough
// to keep the UI responsive on large pastes and reloads.
const stepBudget = 256

func (v *viewer) main() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	v.screen = screen

	// Live reload for the file and the config. Watch events arrive on
	// the watcher goroutine and are forwarded into the event loop.
	absFile, _ := filepath.Abs(v.path)
	absCfg := ""
	if v.cfgPath != "" {
		absCfg, _ = filepath.Abs(v.cfgPath)
	}
	w, err := watcher.New(func(p string) {
		switch p {
		case absFile:
			_ = screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{}))
		case absCfg:
			_ = screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{config: true}))
		}
	}, 0)
	if err == nil {
		defer w.Close()
		_ = w.Add(v.path)
		if v.cfgPath != "" {
			_ = w.Add(v.cfgPath)
		}
	}

	for {
		v.draw()
		// Pump the highlighter during idle time instead of blocking:
		// keep consuming small slices until input arrives.
		for v.engine.Pending() && !screen.HasPendingEvent() {
			if !v.engine.Step(stepBudget) {
				break
			}
			v.draw()
		}

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			if r, ok := ev.Data().(reloadEvent); ok {
				if r.config {
					v.reloadConfig()
				} else {
					v.reloadFile()
				}
			}
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// reloadFile re-reads the file into the buffer, which notifies the
// engine.
func (v *viewer) reloadFile() {
	data, err := os.ReadFile(v.path)
	if err != nil {
		return
	}
	v.buf.SetText(strings.ReplaceAll(string(data), "\r\n", "\n"))
	v.scroll(0) // clamp in case the file shrank
}

// reloadConfig re-applies the theme and tab width from the config file.
func (v *viewer) reloadConfig() {
	cfg, err := config.Load(v.cfgPath)
	if err != nil {
		return
	}
	if v.themes.SetCurrent(cfg.Theme) {
		v.theme = v.themes.Current()
	}
	v.tabWidth = cfg.TabWidth
}

// handleKey reports true when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	_, height := v.screen.Size()
	page := height - 1
	if page < 1 {
		page = 1
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-page)
	case tcell.KeyPgDn:
		v.scroll(page)
	case tcell.KeyHome:
		v.top = 0
	case tcell.KeyEnd:
		v.top = v.maxTop()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'g':
			v.top = 0
		case 'G':
			v.top = v.maxTop()
		case 'h':
			v.engine.SetEnabled(!v.engine.Enabled())
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		}
	}
	return false
}

func (v *viewer) scroll(delta int) {
	v.top += delta
	if v.top < 0 {
		v.top = 0
	}
	if max := v.maxTop(); v.top > max {
		v.top = max
	}
}

func (v *viewer) maxTop() int {
	_, height := v.screen.Size()
	max := v.buf.LineCount() - (height - 1)
	if max < 0 {
		max = 0
	}
	return max
}

func (v *viewer) draw() {
	width, height := v.screen.Size()
	if height < 1 {
		return
	}
	base := tcell.StyleDefault.
		Foreground(v.theme.Foreground).
		Background(v.theme.Background)
	v.screen.Fill(' ', base)

	visible := height - 1
	v.engine.EnsureRange(v.top, v.top+visible-1)
	for row := 0; row < visible; row++ {
		lineNo := v.top + row
		if lineNo >= v.buf.LineCount() {
			break
		}
		v.drawLine(row, lineNo, width, base)
	}
	v.drawStatus(height-1, width)
	v.screen.Show()
}

// drawLine paints one buffer line, mapping byte spans to screen cells
// and expanding tabs.
func (v *viewer) drawLine(row, lineNo, width int, base tcell.Style) {
	line := v.buf.Line(lineNo)
	spans := v.engine.SpansFor(lineNo)

	col := 0
	si := 0
	for i, r := range line {
		for si < len(spans) && i >= spans[si].End() {
			si++
		}
		style := base
		if si < len(spans) && spans[si].Contains(i) {
			style = v.theme.StyleFor(spans[si].Class)
		}
		if r == '\t' {
			next := (col/v.tabWidth + 1) * v.tabWidth
			for col < next && col < width {
				v.screen.SetContent(col, row, ' ', nil, style)
				col++
			}
			continue
		}
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (v *viewer) drawStatus(row, width int) {
	lang := v.language
	if lang == "" {
		lang = "plain"
	}
	state := ""
	switch {
	case v.engine.Skipped():
		state = " [too large, highlighting skipped]"
	case !v.engine.Enabled():
		state = " [highlighting off]"
	case v.engine.Pending():
		state = " [highlighting…]"
	}
	text := fmt.Sprintf(" %s  %s  %d/%d%s", v.path, lang, v.top+1, v.buf.LineCount(), state)
	style := tcell.StyleDefault.
		Foreground(v.theme.Background).
		Background(v.theme.Foreground)
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for col < width {
		v.screen.SetContent(col, row, ' ', nil, style)
		col++
	}
}
