// Package config loads the engine's configuration: the highlight size
// ceiling, the active theme and the directories for user themes and
// grammar plugins. Configuration comes from a TOML file with GLINT_*
// environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all settings.
type Config struct {
	// MaxFileSize is the byte ceiling above which highlighting is
	// skipped for a document.
	MaxFileSize int64 `toml:"max_file_size"`

	// Theme is the name of the active color theme.
	Theme string `toml:"theme"`

	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// ThemeDir holds user YAML theme files.
	ThemeDir string `toml:"theme_dir"`

	// GrammarDir holds user Lua grammar plugins.
	GrammarDir string `toml:"grammar_dir"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		MaxFileSize: 10 << 20, // 10 MiB
		Theme:       "Default Dark",
		TabWidth:    8,
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glint", "config.toml")
}

// Load reads the config file at path, layering it over the defaults
// and applying environment overrides. A missing file is not an error;
// the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// applyEnv applies GLINT_* environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("GLINT_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("GLINT_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileSize = n
		}
	}
	if v := os.Getenv("GLINT_TAB_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TabWidth = n
		}
	}
	if v := os.Getenv("GLINT_THEME_DIR"); v != "" {
		c.ThemeDir = v
	}
	if v := os.Getenv("GLINT_GRAMMAR_DIR"); v != "" {
		c.GrammarDir = v
	}
}

// normalize clamps out-of-range values instead of rejecting them.
func (c *Config) normalize() {
	if c.TabWidth < 1 {
		c.TabWidth = 8
	}
	if c.MaxFileSize < 0 {
		c.MaxFileSize = 0
	}
}
