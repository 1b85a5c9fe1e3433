package simple

import (
	"testing"

	"github.com/glint-editor/glint/internal/highlight"
)

func classesFor(t *testing.T, tok *Tokenizer, line string, in highlight.BlockState) ([]highlight.StyleClass, highlight.BlockState) {
	t.Helper()
	spans, out := tok.Tokenize(line, in)
	checkCoverage(t, line, spans)
	classes := make([]highlight.StyleClass, len(line))
	for _, sp := range spans {
		for i := sp.Start; i < sp.End(); i++ {
			classes[i] = sp.Class
		}
	}
	return classes, out
}

func checkCoverage(t *testing.T, line string, spans []highlight.Span) {
	t.Helper()
	if len(line) == 0 {
		return
	}
	pos := 0
	for _, sp := range spans {
		if sp.Start != pos || sp.Length <= 0 {
			t.Fatalf("gap or overlap at byte %d of %q: %+v", pos, line, spans)
		}
		pos = sp.End()
	}
	if pos != len(line) {
		t.Fatalf("spans of %q end at %d, want %d", line, pos, len(line))
	}
}

func assertRange(t *testing.T, classes []highlight.StyleClass, start, end int, want highlight.StyleClass) {
	t.Helper()
	for i := start; i < end; i++ {
		if classes[i] != want {
			t.Fatalf("byte %d = %v, want %v (classes %v)", i, classes[i], want, classes)
		}
	}
}

func TestGoLineComment(t *testing.T) {
	classes, out := classesFor(t, Go(), `x := 1 // count`, highlight.Initial())
	assertRange(t, classes, 5, 6, highlight.StyleNumber)
	assertRange(t, classes, 7, 15, highlight.StyleComment)
	if !out.IsZero() {
		t.Errorf("out = %+v, want zero", out)
	}
}

func TestGoKeywordsAndStrings(t *testing.T) {
	classes, _ := classesFor(t, Go(), `func f() string { return "ok" }`, highlight.Initial())
	assertRange(t, classes, 0, 4, highlight.StyleKeyword)  // func
	assertRange(t, classes, 9, 15, highlight.StyleBuiltin) // string
	assertRange(t, classes, 18, 24, highlight.StyleKeyword)
	assertRange(t, classes, 25, 29, highlight.StyleString)
}

func TestGoBlockCommentAcrossLines(t *testing.T) {
	tok := Go()
	_, out := classesFor(t, tok, `x /* starts`, highlight.Initial())
	if out.Cont != highlight.ContBlockComment {
		t.Fatalf("out = %+v, want open block comment", out)
	}

	classes, mid := classesFor(t, tok, `all comment`, out)
	assertRange(t, classes, 0, len(classes), highlight.StyleComment)
	if mid.Cont != highlight.ContBlockComment {
		t.Fatal("unterminated comment must stay open")
	}

	classes, done := classesFor(t, tok, `ends */ var x`, mid)
	assertRange(t, classes, 0, 7, highlight.StyleComment)
	assertRange(t, classes, 8, 11, highlight.StyleKeyword)
	if !done.IsZero() {
		t.Errorf("out = %+v, want zero", done)
	}
}

func TestGoRawStringAcrossLines(t *testing.T) {
	tok := Go()
	_, out := classesFor(t, tok, "q := `raw", highlight.Initial())
	if out.Cont != highlight.ContRawString {
		t.Fatalf("out = %+v, want open raw string", out)
	}
	classes, done := classesFor(t, tok, "end` + x", out)
	assertRange(t, classes, 0, 4, highlight.StyleString)
	if !done.IsZero() {
		t.Errorf("out = %+v, want zero", done)
	}
}

func TestPythonTripleString(t *testing.T) {
	tok := Python()
	_, out := classesFor(t, tok, `doc = """summary`, highlight.Initial())
	if out.Cont != highlight.ContTripleString {
		t.Fatalf("out = %+v, want open triple string", out)
	}
	classes, done := classesFor(t, tok, `end."""`, out)
	assertRange(t, classes, 0, 7, highlight.StyleString)
	if !done.IsZero() {
		t.Errorf("out = %+v, want zero", done)
	}
}

func TestPythonSingleLine(t *testing.T) {
	classes, _ := classesFor(t, Python(), `def f(n):  # doc`, highlight.Initial())
	assertRange(t, classes, 0, 3, highlight.StyleKeyword)
	assertRange(t, classes, 11, 16, highlight.StyleComment)
}

func TestJSONKeysVersusValues(t *testing.T) {
	classes, _ := classesFor(t, JSON(), `{"name": "x", "n": 10}`, highlight.Initial())
	assertRange(t, classes, 1, 7, highlight.StyleAttribute) // "name"
	assertRange(t, classes, 9, 12, highlight.StyleString)   // "x"
	assertRange(t, classes, 19, 21, highlight.StyleNumber)
}

func TestXMLCDATAAcrossLines(t *testing.T) {
	tok := XML()
	_, out := classesFor(t, tok, `<data><![CDATA[raw < text`, highlight.Initial())
	if out.Cont != highlight.ContCDATA {
		t.Fatalf("out = %+v, want open CDATA", out)
	}
	classes, done := classesFor(t, tok, `more]]>`, out)
	assertRange(t, classes, 0, 7, highlight.StyleString)
	if !done.IsZero() {
		t.Errorf("out = %+v, want zero", done)
	}
}

func TestMarkdownFence(t *testing.T) {
	tok := Markdown()
	classes, _ := classesFor(t, tok, `# Title`, highlight.Initial())
	assertRange(t, classes, 0, 7, highlight.StyleMarkup)

	_, out := classesFor(t, tok, "```go", highlight.Initial())
	if out.Cont != highlight.ContFencedCode {
		t.Fatalf("out = %+v, want open fence", out)
	}
	classes, inside := classesFor(t, tok, `code here`, out)
	assertRange(t, classes, 0, len(classes), highlight.StyleMarkupCode)
	if inside.Cont != highlight.ContFencedCode {
		t.Fatal("fence must stay open")
	}
	_, closed := classesFor(t, tok, "```", inside)
	if !closed.IsZero() {
		t.Errorf("out = %+v, want zero after closing fence", closed)
	}
}

func TestYAMLKeys(t *testing.T) {
	classes, _ := classesFor(t, YAML(), `port: 8080  # listen`, highlight.Initial())
	assertRange(t, classes, 0, 4, highlight.StyleAttribute)
	assertRange(t, classes, 6, 10, highlight.StyleNumber)
	assertRange(t, classes, 12, 20, highlight.StyleComment)
}

func TestForeignContinuationResets(t *testing.T) {
	// State written by another grammar (language switch) must not wedge
	// the tokenizer.
	in := highlight.BlockState{Cont: highlight.ContHereDoc, HereDoc: "EOF"}
	classes, out := classesFor(t, Go(), `var x int`, in)
	assertRange(t, classes, 0, 3, highlight.StyleKeyword)
	if !out.IsZero() {
		t.Errorf("out = %+v, want zero", out)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	r := highlight.NewRegistry()
	RegisterBuiltins(r)
	for _, lang := range []string{"go", "python", "json", "xml", "markdown", "yaml"} {
		if _, ok := r.Lookup(lang); !ok {
			t.Errorf("grammar %s not registered", lang)
		}
	}
	if r.ForExtension(".py").Language() != "python" {
		t.Error("extension lookup failed")
	}
}
