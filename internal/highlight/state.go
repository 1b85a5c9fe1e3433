package highlight

// Continuation identifies which multi-line construct, if any, is still
// open at the end of a line. Values above contShellMax are used by
// non-shell grammars.
type Continuation uint8

const (
	// ContNone means no multi-line construct is open.
	ContNone Continuation = iota

	// ContSingleQuote means a top-level '...' is open.
	ContSingleQuote

	// ContDoubleQuote means a top-level "..." is open.
	ContDoubleQuote

	// ContNestedSingleQuote means a '...' is open inside one or more
	// $( ) command-substitution levels.
	ContNestedSingleQuote

	// ContNestedDoubleQuote means a "..." is open inside one or more
	// $( ) command-substitution levels.
	ContNestedDoubleQuote

	// ContHereDoc means a here-document body is being consumed.
	ContHereDoc

	// ContBlockComment is a generic multi-line comment (/* */, <!-- -->).
	ContBlockComment

	// ContTripleString is a python-style triple-quoted string.
	ContTripleString

	// ContTripleStringAlt is the single-quoted triple string variant.
	ContTripleStringAlt

	// ContFencedCode is a markdown fenced code block.
	ContFencedCode

	// ContCDATA is an XML CDATA section.
	ContCDATA

	// ContRawString is a Go backtick raw string.
	ContRawString
)

// String returns the continuation name.
func (c Continuation) String() string {
	switch c {
	case ContNone:
		return "none"
	case ContSingleQuote:
		return "single-quote"
	case ContDoubleQuote:
		return "double-quote"
	case ContNestedSingleQuote:
		return "nested-single-quote"
	case ContNestedDoubleQuote:
		return "nested-double-quote"
	case ContHereDoc:
		return "here-doc"
	case ContBlockComment:
		return "block-comment"
	case ContTripleString:
		return "triple-string"
	case ContTripleStringAlt:
		return "triple-string-alt"
	case ContFencedCode:
		return "fenced-code"
	case ContCDATA:
		return "cdata"
	case ContRawString:
		return "raw-string"
	default:
		return "unknown"
	}
}

// QuoteSet records, per open command-substitution depth, whether that
// depth is currently inside a double-quoted region. Depth 0 is the top
// level of the line. Depths beyond 63 are clamped; shell text nested
// that deep is degenerate input, not something to report an error for.
type QuoteSet uint64

const maxQuoteDepth = 63

// Has reports whether the given depth is double-quoted.
func (q QuoteSet) Has(depth int) bool {
	if depth < 0 || depth > maxQuoteDepth {
		return false
	}
	return q&(1<<uint(depth)) != 0
}

// With returns the set with the given depth marked double-quoted.
func (q QuoteSet) With(depth int) QuoteSet {
	if depth < 0 || depth > maxQuoteDepth {
		return q
	}
	return q | (1 << uint(depth))
}

// Without returns the set with the given depth cleared.
func (q QuoteSet) Without(depth int) QuoteSet {
	if depth < 0 || depth > maxQuoteDepth {
		return q
	}
	return q &^ (1 << uint(depth))
}

// Truncate clears every depth at or above n.
func (q QuoteSet) Truncate(n int) QuoteSet {
	if n < 0 {
		return 0
	}
	if n > maxQuoteDepth {
		return q
	}
	return q & ((1 << uint(n)) - 1)
}

// BlockState is the lexical state carried from one line into the next.
// The state at the start of line N is the state emitted at the end of
// line N-1; the first line of a document starts from Initial().
type BlockState struct {
	// Cont identifies the innermost open multi-line construct.
	Cont Continuation

	// NestDepth counts unclosed $( ) command-substitution levels.
	NestDepth int

	// Quotes marks which open nesting depths are double-quoted.
	Quotes QuoteSet

	// HereDoc is the pending here-document terminator, or "".
	HereDoc string

	// HereDocQuoted is set when the here-doc was opened while a quote
	// or command substitution was still open (e.g. VAR="$(cat<<EOF),
	// so the text after the terminator resumes inside that construct.
	HereDocQuoted bool
}

// Initial returns the state for the first line of a document, or for a
// line whose predecessor was deleted.
func Initial() BlockState {
	return BlockState{}
}

// Equal reports whether two states match exactly. Every field counts:
// a difference only in Quotes (a deeper substitution level becoming
// quoted) still means following lines must be re-tokenized.
func (s BlockState) Equal(o BlockState) bool {
	return s.Cont == o.Cont &&
		s.NestDepth == o.NestDepth &&
		s.Quotes == o.Quotes &&
		s.HereDoc == o.HereDoc &&
		s.HereDocQuoted == o.HereDocQuoted
}

// IsZero reports whether the state is the initial "nothing open" state.
func (s BlockState) IsZero() bool {
	return s.Equal(BlockState{})
}

// InQuote reports whether the state ends inside any quoted region,
// including here-doc bodies.
func (s BlockState) InQuote() bool {
	switch s.Cont {
	case ContSingleQuote, ContDoubleQuote, ContNestedSingleQuote,
		ContNestedDoubleQuote, ContHereDoc:
		return true
	}
	return false
}

// Normalize clamps impossible field combinations instead of erroring:
// the input is partially-edited human text, not a validated program.
func (s BlockState) Normalize() BlockState {
	if s.NestDepth < 0 {
		s.NestDepth = 0
	}
	s.Quotes = s.Quotes.Truncate(s.NestDepth + 1)
	if s.HereDoc == "" && s.Cont != ContHereDoc {
		s.HereDocQuoted = false
	}
	return s
}
