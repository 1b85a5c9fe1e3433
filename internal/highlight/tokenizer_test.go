package highlight

import "testing"

// fakeTokenizer is a registry test double.
type fakeTokenizer struct {
	lang string
	exts []string
}

func (f *fakeTokenizer) Tokenize(line string, in BlockState) ([]Span, BlockState) {
	if len(line) == 0 {
		return nil, in
	}
	return []Span{{Start: 0, Length: len(line), Class: StyleKeyword}}, in
}
func (f *fakeTokenizer) Language() string         { return f.lang }
func (f *fakeTokenizer) FileExtensions() []string { return f.exts }

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	ini := &fakeTokenizer{lang: "ini", exts: []string{".ini", ".cfg"}}
	r.Register(ini)

	if got := r.ForLanguage("ini"); got != Tokenizer(ini) {
		t.Error("ForLanguage did not return the registered tokenizer")
	}
	if _, ok := r.Lookup("ini"); !ok {
		t.Error("Lookup must report registered languages")
	}
	if _, ok := r.Lookup("cobol"); ok {
		t.Error("Lookup must not report unknown languages")
	}
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"", "unknown"} {
		tok := r.ForLanguage(key)
		if tok == nil {
			t.Fatalf("ForLanguage(%q) = nil", key)
		}
		if tok.Language() != "plain" {
			t.Errorf("ForLanguage(%q) = %s, want plain fallback", key, tok.Language())
		}
	}
	if r.ForExtension(".xyz").Language() != "plain" {
		t.Error("unknown extension must fall back to plain")
	}
}

func TestRegistryForExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTokenizer{lang: "ini", exts: []string{".ini"}})

	for _, ext := range []string{".ini", "ini"} {
		if got := r.ForExtension(ext).Language(); got != "ini" {
			t.Errorf("ForExtension(%q) = %s, want ini", ext, got)
		}
	}
}

func TestPlainTokenizer(t *testing.T) {
	p := Plain()
	spans, out := p.Tokenize("hello world", BlockState{Cont: ContHereDoc, HereDoc: "EOF"})
	if !out.IsZero() {
		t.Error("plain output state must be zero")
	}
	want := Span{Start: 0, Length: 11, Class: StyleNeutral}
	if len(spans) != 1 || spans[0] != want {
		t.Errorf("spans = %+v, want [%+v]", spans, want)
	}

	spans, _ = p.Tokenize("", Initial())
	if spans != nil {
		t.Error("empty line must yield no spans")
	}
}
