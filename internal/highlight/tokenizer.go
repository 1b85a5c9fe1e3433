package highlight

import "sync"

// Tokenizer is the contract every grammar implements.
//
// Tokenize is a pure function of (line, incoming state): it returns the
// styled spans covering the whole line plus the state to carry into the
// next line. It never fails; malformed constructs degrade to neutral or
// string styling and propagate as open state.
type Tokenizer interface {
	// Tokenize highlights a single line given the state carried over
	// from the previous line.
	Tokenize(line string, in BlockState) ([]Span, BlockState)

	// Language returns the language key this tokenizer serves.
	Language() string

	// FileExtensions returns the file extensions this tokenizer
	// handles, including the leading dot.
	FileExtensions() []string
}

// Registry maps language keys and file extensions to tokenizers.
// Lookups for unknown keys fall back to the plain tokenizer, so
// dispatch never fails.
type Registry struct {
	mu          sync.RWMutex
	byLanguage  map[string]Tokenizer
	byExtension map[string]Tokenizer
	fallback    Tokenizer
}

// NewRegistry creates an empty registry with the plain fallback.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Tokenizer),
		byExtension: make(map[string]Tokenizer),
		fallback:    Plain(),
	}
}

// Register adds a tokenizer, indexing it by language and extensions.
func (r *Registry) Register(t Tokenizer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLanguage[t.Language()] = t
	for _, ext := range t.FileExtensions() {
		r.byExtension[ext] = t
	}
}

// ForLanguage returns the tokenizer for the language key, or the plain
// fallback when the key is unknown or empty.
func (r *Registry) ForLanguage(lang string) Tokenizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.byLanguage[lang]; ok {
		return t
	}
	return r.fallback
}

// Lookup returns the tokenizer for the language key and whether it was
// registered.
func (r *Registry) Lookup(lang string) (Tokenizer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byLanguage[lang]
	return t, ok
}

// ForExtension returns the tokenizer for a file extension (with or
// without the leading dot), or the plain fallback.
func (r *Registry) ForExtension(ext string) Tokenizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ext == "" {
		return r.fallback
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	if t, ok := r.byExtension[ext]; ok {
		return t
	}
	return r.fallback
}

// Languages returns all registered language keys.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		langs = append(langs, lang)
	}
	return langs
}

// PlainTokenizer classifies every byte as neutral. It backs documents
// with no detected language and unknown language keys.
type PlainTokenizer struct{}

// Plain returns the shared plain tokenizer.
func Plain() *PlainTokenizer { return &plainTokenizer }

var plainTokenizer PlainTokenizer

// Tokenize emits one neutral span for the whole line.
func (*PlainTokenizer) Tokenize(line string, _ BlockState) ([]Span, BlockState) {
	if len(line) == 0 {
		return nil, BlockState{}
	}
	return []Span{{Start: 0, Length: len(line), Class: StyleNeutral}}, BlockState{}
}

// Language returns the plain language key.
func (*PlainTokenizer) Language() string { return "plain" }

// FileExtensions returns nil; plain is only reached by fallback.
func (*PlainTokenizer) FileExtensions() []string { return nil }
