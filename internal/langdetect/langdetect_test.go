package langdetect

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"script.sh", "sh"},
		{"/usr/share/x/setup.bash", "sh"},
		{"overlay.ebuild", "sh"},
		{"PKGBUILD", "sh"},
		{"/home/u/.bashrc", "sh"},
		{"main.go", "go"},
		{"tool.py", "python"},
		{"data.json", "json"},
		{"page.html", "xml"},
		{"README.md", "markdown"},
		{"ci.yml", "yaml"},
		{"UPPER.SH", "sh"},
		{"noext", ""},
		{"archive.tar.gz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ByName(tt.path); got != tt.want {
				t.Errorf("ByName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestByShebang(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"#!/bin/sh", "sh"},
		{"#!/bin/bash", "sh"},
		{"#!/usr/bin/env bash", "sh"},
		{"#!/usr/bin/env python3", "python"},
		{"#!/usr/bin/python3.12", "python"},
		{"#!/usr/bin/env node", ""},
		{"#!", ""},
		{"echo no shebang", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := ByShebang(tt.line); got != tt.want {
				t.Errorf("ByShebang(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	// Name wins over content.
	if got := Detect("run.py", "#!/bin/bash"); got != "python" {
		t.Errorf("Detect = %q, want python", got)
	}
	// Shebang is the fallback for extensionless scripts.
	if got := Detect("/usr/local/bin/deploy", "#!/bin/bash"); got != "sh" {
		t.Errorf("Detect = %q, want sh", got)
	}
	if got := Detect("notes.txt", "plain text"); got != "" {
		t.Errorf("Detect = %q, want empty", got)
	}
}
