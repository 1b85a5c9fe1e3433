// Package highlight provides the incremental syntax-highlighting core:
// style spans, per-line lexical state, the tokenizer contract, and the
// grammar registry.
package highlight

// StyleClass is the semantic style category assigned to a span of text.
// Style classes are resolved to concrete colors at paint time; the
// tokenizers never deal in colors.
type StyleClass uint8

// Style classes emitted by the built-in tokenizers.
const (
	StyleNeutral StyleClass = iota

	StyleComment
	StyleString      // double-quoted string content
	StyleStringAlt   // single-quoted string content
	StyleURLInString // URL detected inside a string span

	StyleKeyword
	StyleBuiltin
	StyleNumber
	StyleOperator
	StyleVariable
	StyleLabel // here-doc terminator lines and similar markers

	StyleTag       // XML/HTML tags
	StyleAttribute // XML/HTML attributes
	StyleMarkup    // markdown headings, emphasis
	StyleMarkupCode

	styleClassCount
)

// styleClassNames maps style classes to their string names.
var styleClassNames = []string{
	StyleNeutral:     "neutral",
	StyleComment:     "comment",
	StyleString:      "string",
	StyleStringAlt:   "string.alt",
	StyleURLInString: "string.url",
	StyleKeyword:     "keyword",
	StyleBuiltin:     "builtin",
	StyleNumber:      "number",
	StyleOperator:    "operator",
	StyleVariable:    "variable",
	StyleLabel:       "label",
	StyleTag:         "tag",
	StyleAttribute:   "attribute",
	StyleMarkup:      "markup",
	StyleMarkupCode:  "markup.code",
}

// String returns the string representation of a style class.
func (c StyleClass) String() string {
	if int(c) < len(styleClassNames) {
		return styleClassNames[c]
	}
	return "unknown"
}

// StyleClasses returns every style class, for callers that enumerate
// the palette (theme files, tests).
func StyleClasses() []StyleClass {
	out := make([]StyleClass, 0, int(styleClassCount))
	for c := StyleClass(0); c < styleClassCount; c++ {
		out = append(out, c)
	}
	return out
}

// StyleClassFromString resolves a style class by name. It reports
// false for unknown names.
func StyleClassFromString(name string) (StyleClass, bool) {
	for i, n := range styleClassNames {
		if n == name {
			return StyleClass(i), true
		}
	}
	return StyleNeutral, false
}

// IsString reports whether the class marks string content.
func (c StyleClass) IsString() bool {
	return c == StyleString || c == StyleStringAlt || c == StyleURLInString
}

// Span is a half-open byte range [Start, Start+Length) within one line,
// tagged with a single style class. The spans emitted for a line always
// cover the whole line exactly once, with no gaps or overlaps.
type Span struct {
	Start  int
	Length int
	Class  StyleClass
}

// End returns the exclusive end offset of the span.
func (s Span) End() int { return s.Start + s.Length }

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End()
}

// ClassBuffer is a per-byte style scratch buffer used while tokenizing
// one line. Tokenizers write a class for every byte and compress the
// buffer into spans at the end, which is what guarantees that a line is
// covered exactly once with no gaps or overlaps.
type ClassBuffer []StyleClass

// NewClassBuffer returns a buffer for a line of n bytes, every byte
// starting out neutral.
func NewClassBuffer(n int) ClassBuffer {
	return make(ClassBuffer, n)
}

// Fill assigns the class to [start, end), clamped to the line.
func (cb ClassBuffer) Fill(start, end int, class StyleClass) {
	if start < 0 {
		start = 0
	}
	if end > len(cb) {
		end = len(cb)
	}
	for i := start; i < end; i++ {
		cb[i] = class
	}
}

// Set assigns the class to the single byte at pos, if in range.
func (cb ClassBuffer) Set(pos int, class StyleClass) {
	if pos >= 0 && pos < len(cb) {
		cb[pos] = class
	}
}

// At returns the class currently assigned to pos, or StyleNeutral when
// pos is out of range.
func (cb ClassBuffer) At(pos int) StyleClass {
	if pos >= 0 && pos < len(cb) {
		return cb[pos]
	}
	return StyleNeutral
}

// Spans compresses the per-byte classes into a minimal ordered span
// list. An empty line yields no spans.
func (cb ClassBuffer) Spans() []Span {
	if len(cb) == 0 {
		return nil
	}
	spans := make([]Span, 0, 8)
	start := 0
	cur := cb[0]
	for i := 1; i < len(cb); i++ {
		if cb[i] != cur {
			spans = append(spans, Span{Start: start, Length: i - start, Class: cur})
			start = i
			cur = cb[i]
		}
	}
	spans = append(spans, Span{Start: start, Length: len(cb) - start, Class: cur})
	return spans
}
