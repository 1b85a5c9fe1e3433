// Package langdetect maps file names and content to language keys.
// Detection is advisory: callers may override the result, and unknown
// files simply get no language (plain highlighting).
package langdetect

import (
	"path/filepath"
	"strings"
)

// extensionMap maps lowercase file extensions to language keys.
var extensionMap = map[string]string{
	".sh":       "sh",
	".bash":     "sh",
	".zsh":      "sh",
	".ksh":      "sh",
	".ebuild":   "sh",
	".eclass":   "sh",
	".go":       "go",
	".py":       "python",
	".pyw":      "python",
	".pyi":      "python",
	".json":     "json",
	".xml":      "xml",
	".svg":      "xml",
	".html":     "xml",
	".htm":      "xml",
	".xhtml":    "xml",
	".md":       "markdown",
	".markdown": "markdown",
	".mkd":      "markdown",
	".yml":      "yaml",
	".yaml":     "yaml",
}

// specialFilenames maps well-known file names (compared lowercase) to
// language keys, for files without a telling extension.
var specialFilenames = map[string]string{
	"pkgbuild":      "sh",
	"apkbuild":      "sh",
	"bashrc":        "sh",
	".bashrc":       "sh",
	"bash_profile":  "sh",
	".bash_profile": "sh",
	"profile":       "sh",
	".profile":      "sh",
	"zshrc":         "sh",
	".zshrc":        "sh",
	"fstab":         "sh",
}

// shebangs maps interpreter names found on a #! line to language keys.
var shebangs = map[string]string{
	"sh":      "sh",
	"bash":    "sh",
	"zsh":     "sh",
	"ksh":     "sh",
	"dash":    "sh",
	"python":  "python",
	"python2": "python",
	"python3": "python",
}

// Detect returns the language key for a file, using its name first and
// falling back to the first line of content (shebang). It returns ""
// when nothing matches.
func Detect(path, firstLine string) string {
	if lang := ByName(path); lang != "" {
		return lang
	}
	return ByShebang(firstLine)
}

// ByName detects the language from a file path alone.
func ByName(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if lang, ok := specialFilenames[base]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if lang, ok := extensionMap[ext]; ok {
		return lang
	}
	return ""
}

// ByShebang detects the language from a "#!" interpreter line.
func ByShebang(line string) string {
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = filepath.Base(fields[1])
	}
	// Strip trailing version digits: python3.12, bash5.
	interp = strings.TrimRight(interp, "0123456789.")
	if interp == "" {
		return ""
	}
	if lang, ok := shebangs[interp]; ok {
		return lang
	}
	// Retry without the trim for exact entries like python3.
	if lang, ok := shebangs[filepath.Base(fields[0])]; ok {
		return lang
	}
	return ""
}
