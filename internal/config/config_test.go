package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxFileSize != 10<<20 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if cfg.Theme != "Default Dark" || cfg.TabWidth != 8 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_file_size = 1048576
theme = "Monokai"
tab_width = 4
grammar_dir = "/opt/grammars"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFileSize != 1<<20 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize)
	}
	if cfg.Theme != "Monokai" || cfg.TabWidth != 4 || cfg.GrammarDir != "/opt/grammars" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `theme = "Light"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "Light" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.MaxFileSize != Default().MaxFileSize || cfg.TabWidth != Default().TabWidth {
		t.Errorf("unset fields must keep defaults: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Theme != Default().Theme {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadBadTOML(t *testing.T) {
	_, err := Load(writeConfig(t, `theme = `))
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("err = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GLINT_THEME", "Light")
	t.Setenv("GLINT_MAX_FILE_SIZE", "2048")
	t.Setenv("GLINT_TAB_WIDTH", "2")
	t.Setenv("GLINT_GRAMMAR_DIR", "/tmp/g")

	cfg, err := Load(writeConfig(t, `theme = "Monokai"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "Light" {
		t.Errorf("Theme = %q, env must win over the file", cfg.Theme)
	}
	if cfg.MaxFileSize != 2048 || cfg.TabWidth != 2 || cfg.GrammarDir != "/tmp/g" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("GLINT_MAX_FILE_SIZE", "not-a-number")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFileSize != Default().MaxFileSize {
		t.Errorf("MaxFileSize = %d, want default", cfg.MaxFileSize)
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tab_width = 0\nmax_file_size = -5\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want clamped to 8", cfg.TabWidth)
	}
	if cfg.MaxFileSize != 0 {
		t.Errorf("MaxFileSize = %d, want clamped to 0", cfg.MaxFileSize)
	}
}
