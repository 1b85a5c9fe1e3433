// Package luagram loads user-defined grammars from Lua files. A
// grammar plugin declares a global table:
//
//	grammar = {
//	  language   = "ini",
//	  extensions = {".ini", ".cfg"},
//	  line_comment = ";",
//	  keywords   = {"section", "include"},
//	  builtins   = {"true", "false"},
//	  strings    = {'"', "'"},
//	  block_comment = {"/*", "*/"},
//	  block_string  = {"[[", "]]"},
//	}
//
// The result is a table-driven tokenizer with the same contract as the
// built-in simple grammars. At most one block comment and one block
// string construct are supported per plugin.
package luagram

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/glint-editor/glint/internal/highlight"
	"github.com/glint-editor/glint/internal/highlight/simple"
)

// Load reads one Lua grammar file and builds its tokenizer.
func Load(path string) (*simple.Tokenizer, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("running grammar %s: %w", path, err)
	}
	tbl, ok := L.GetGlobal("grammar").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("grammar %s: no global 'grammar' table", path)
	}
	return build(tbl, path)
}

// LoadDir loads every *.lua grammar in dir into the registry. Missing
// directories are fine; individual bad grammars are reported but do
// not stop the rest from loading.
func LoadDir(dir string, reg *highlight.Registry) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []error{err}
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if !ent.IsDir() && strings.HasSuffix(ent.Name(), ".lua") {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		tok, err := Load(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reg.Register(tok)
	}
	return errs
}

// build converts the Lua grammar table into a tokenizer.
func build(tbl *lua.LTable, path string) (*simple.Tokenizer, error) {
	language := getString(tbl, "language")
	if language == "" {
		return nil, fmt.Errorf("grammar %s: 'language' is required", path)
	}

	t := simple.New(language, getStrings(tbl, "extensions"))

	if pair := getStrings(tbl, "block_comment"); len(pair) == 2 {
		t.AddMultiLine(pair[0], pair[1], highlight.StyleComment, highlight.ContBlockComment)
	}
	if pair := getStrings(tbl, "block_string"); len(pair) == 2 {
		t.AddMultiLine(pair[0], pair[1], highlight.StyleString, highlight.ContTripleString)
	}

	if lc := getString(tbl, "line_comment"); lc != "" {
		t.AddRule(regexp.QuoteMeta(lc)+".*$", highlight.StyleComment)
	}
	for _, q := range getStrings(tbl, "strings") {
		if len(q) != 1 {
			return nil, fmt.Errorf("grammar %s: string delimiter %q must be one character", path, q)
		}
		qm := regexp.QuoteMeta(q)
		class := highlight.StyleString
		if q == "'" {
			class = highlight.StyleStringAlt
		}
		t.AddRule(qm+`(?:[^`+qm+`\\]|\\.)*`+qm, class)
	}
	t.AddRule(`\b\d+\.?\d*\b`, highlight.StyleNumber)

	if kw := getStrings(tbl, "keywords"); len(kw) > 0 {
		t.AddKeywords(highlight.StyleKeyword, kw...)
	}
	if bi := getStrings(tbl, "builtins"); len(bi) > 0 {
		t.AddKeywords(highlight.StyleBuiltin, bi...)
	}

	return t, nil
}

// getString reads a string field from the table.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getStrings reads an array-of-strings field from the table.
func getStrings(tbl *lua.LTable, key string) []string {
	arr, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	arr.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}
