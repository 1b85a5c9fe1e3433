// Package shell implements the shell-script tokenizer, the most
// involved grammar in the engine: multi-line quote tracking, nested
// $( ) command substitution with per-depth quote flags, here-documents
// and whitespace-introduced comments.
package shell

import (
	"strings"

	"github.com/glint-editor/glint/internal/highlight"
)

// Tokenizer is the shell grammar. It is stateless; all lexical state
// travels through highlight.BlockState.
type Tokenizer struct{}

// New returns the shell tokenizer.
func New() *Tokenizer { return &Tokenizer{} }

// Language returns "sh".
func (*Tokenizer) Language() string { return "sh" }

// FileExtensions returns the extensions served by the shell grammar.
func (*Tokenizer) FileExtensions() []string {
	return []string{".sh", ".bash", ".zsh", ".ksh", ".ebuild", ".eclass"}
}

// frame is one level of $( ) nesting. frames[0] is the top level of the
// line; pushing a frame increments the nesting depth. parenDepth counts
// plain parentheses opened inside the frame so that a literal ( ... )
// pair does not close the substitution.
type frame struct {
	doubleQuoted bool
	parenDepth   int
}

// scanner walks one line left to right, writing a style class for
// every byte. The explicit frame stack replaces recursion: closing the
// innermost ) restores exactly the quoting state one level up.
type scanner struct {
	line   string
	cb     highlight.ClassBuffer
	pos    int
	frames []frame
	// open single quote at end of line
	singleOpen bool
	// here-doc terminator recorded on this line, if any
	hereDoc string
}

// Tokenize highlights one line of shell given the incoming state.
func (t *Tokenizer) Tokenize(line string, in highlight.BlockState) ([]highlight.Span, highlight.BlockState) {
	in = in.Normalize()

	if len(line) == 0 {
		return nil, in
	}

	// Here-doc body: every line is inert string content until the
	// terminator line.
	if in.Cont == highlight.ContHereDoc && in.HereDoc != "" {
		return tokenizeHereDocLine(line, in)
	}

	s := &scanner{
		line:   line,
		cb:     highlight.NewClassBuffer(len(line)),
		frames: framesFromState(in),
	}

	// Resolve an open single quote from the previous line before any
	// normal scanning: either it closes on this line or the whole line
	// is string content.
	if in.Cont == highlight.ContSingleQuote || in.Cont == highlight.ContNestedSingleQuote {
		if !s.continueSingleQuote() {
			highlight.TagURLs(s.cb, line, 0, len(line))
			return s.cb.Spans(), in
		}
	}

	s.scan()

	out := s.stateOut()
	highlight.TagURLs(s.cb, line, 0, len(line))
	return s.cb.Spans(), out
}

// framesFromState rebuilds the nesting stack recorded at the end of
// the previous line. Plain-paren depth inside a frame is line-local
// and starts at zero, matching the original engine's behavior.
func framesFromState(in highlight.BlockState) []frame {
	frames := make([]frame, in.NestDepth+1)
	for d := range frames {
		frames[d].doubleQuoted = in.Quotes.Has(d)
	}
	return frames
}

// tokenizeHereDocLine handles a line inside a here-doc body. A line
// consisting of exactly the terminator (modulo surrounding whitespace)
// closes the document; anything else is unconditionally string content.
func tokenizeHereDocLine(line string, in highlight.BlockState) ([]highlight.Span, highlight.BlockState) {
	cb := highlight.NewClassBuffer(len(line))
	if strings.TrimSpace(line) == in.HereDoc {
		cb.Fill(0, len(line), highlight.StyleLabel)
		out := in
		out.HereDoc = ""
		out.HereDocQuoted = false
		out.Cont = highlight.ContNone
		if out.Quotes.Has(out.NestDepth) {
			if out.NestDepth > 0 {
				out.Cont = highlight.ContNestedDoubleQuote
			} else {
				out.Cont = highlight.ContDoubleQuote
			}
		}
		return cb.Spans(), out
	}
	cb.Fill(0, len(line), highlight.StyleString)
	highlight.TagURLs(cb, line, 0, len(line))
	return cb.Spans(), in
}

// continueSingleQuote consumes the remainder of a single-quoted region
// carried over from the previous line. It reports whether the quote
// closed on this line.
func (s *scanner) continueSingleQuote() bool {
	end := findUnescaped(s.line, 0, '\'')
	if end < 0 {
		s.cb.Fill(0, len(s.line), highlight.StyleStringAlt)
		s.singleOpen = true
		return false
	}
	s.cb.Fill(0, end+1, highlight.StyleStringAlt)
	s.pos = end + 1
	return true
}

// scan is the main per-character loop.
func (s *scanner) scan() {
	for s.pos < len(s.line) {
		cur := &s.frames[len(s.frames)-1]
		if cur.doubleQuoted {
			s.scanQuotedChar(cur)
		} else if !s.scanUnquotedChar(cur) {
			return // comment consumed the rest of the line
		}
	}
}

// scanQuotedChar handles one position inside a double-quoted region of
// the current frame.
func (s *scanner) scanQuotedChar(cur *frame) {
	c := s.line[s.pos]
	switch {
	case c == '\\':
		// Escapes stay inside the string; never close the quote.
		s.cb.Fill(s.pos, s.pos+2, highlight.StyleString)
		s.pos += 2
	case c == '"':
		s.cb.Set(s.pos, highlight.StyleString)
		cur.doubleQuoted = false
		s.pos++
	case c == '$' && s.pos+1 < len(s.line) && s.line[s.pos+1] == '(':
		// Command substitution is live inside double quotes; only
		// single quotes suppress it.
		s.cb.Fill(s.pos, s.pos+2, highlight.StyleNeutral)
		s.frames = append(s.frames, frame{})
		s.pos += 2
	default:
		s.cb.Set(s.pos, highlight.StyleString)
		s.pos++
	}
}

// scanUnquotedChar handles one position outside any quote in the
// current frame. It reports false when a comment starts, which
// consumes the rest of the line.
func (s *scanner) scanUnquotedChar(cur *frame) bool {
	line := s.line
	pos := s.pos
	c := line[pos]

	switch {
	case c == '\\':
		s.cb.Fill(pos, pos+2, highlight.StyleNeutral)
		s.pos += 2

	case c == '#':
		if pos == 0 || isSpaceByte(line[pos-1]) {
			// Comment to end of line; nothing inside it is
			// reinterpreted. Open frames survive into the next line.
			s.cb.Fill(pos, len(line), highlight.StyleComment)
			s.pos = len(line)
			return false
		}
		s.cb.Set(pos, highlight.StyleNeutral)
		s.pos++

	case c == '\'':
		s.scanSingleQuote()

	case c == '"':
		s.cb.Set(pos, highlight.StyleString)
		cur.doubleQuoted = true
		s.pos++

	case c == '$':
		if pos+1 < len(line) && line[pos+1] == '(' {
			s.cb.Fill(pos, pos+2, highlight.StyleNeutral)
			s.frames = append(s.frames, frame{})
			s.pos += 2
			break
		}
		if len(s.frames) == 1 {
			if m := variablePattern.FindString(line[pos:]); m != "" {
				s.cb.Fill(pos, pos+len(m), highlight.StyleVariable)
				s.pos += len(m)
				break
			}
		}
		s.cb.Set(pos, highlight.StyleNeutral)
		s.pos++

	case c == '(':
		cur.parenDepth++
		s.cb.Set(pos, highlight.StyleNeutral)
		s.pos++

	case c == ')':
		switch {
		case cur.parenDepth > 0:
			cur.parenDepth--
			s.cb.Set(pos, highlight.StyleNeutral)
		case len(s.frames) > 1:
			// Closes the innermost substitution; the frame above
			// resumes with its own quote flag intact.
			s.frames = s.frames[:len(s.frames)-1]
			s.cb.Set(pos, highlight.StyleNeutral)
		default:
			// Stray paren in malformed text; plain character.
			s.cb.Set(pos, highlight.StyleNeutral)
		}
		s.pos++

	case c == '<' && pos+1 < len(line) && line[pos+1] == '<':
		s.scanHereDocOpener()

	default:
		if isWordByte(c) {
			s.scanWord()
			break
		}
		if _, ok := operatorChars[c]; ok && len(s.frames) == 1 {
			s.cb.Set(pos, highlight.StyleOperator)
		} else {
			s.cb.Set(pos, highlight.StyleNeutral)
		}
		s.pos++
	}
	return true
}

// scanSingleQuote handles a single quote opening at s.pos. Inside
// single quotes nothing is expanded, so the region is consumed in one
// step; without a close on this line the state stays open.
func (s *scanner) scanSingleQuote() {
	if isEscaped(s.line, s.pos) {
		s.cb.Set(s.pos, highlight.StyleNeutral)
		s.pos++
		return
	}
	end := findUnescaped(s.line, s.pos+1, '\'')
	if end < 0 {
		s.cb.Fill(s.pos, len(s.line), highlight.StyleStringAlt)
		s.singleOpen = true
		s.pos = len(s.line)
		return
	}
	s.cb.Fill(s.pos, end+1, highlight.StyleStringAlt)
	s.pos = end + 1
}

// scanHereDocOpener recognizes << openers. The here-string operator
// <<< is passed through as a plain operator.
func (s *scanner) scanHereDocOpener() {
	line, pos := s.line, s.pos
	if pos+2 < len(line) && line[pos+2] == '<' {
		s.cb.Fill(pos, pos+3, highlight.StyleOperator)
		s.pos = pos + 3
		return
	}
	m := hereDocOpener.FindStringSubmatchIndex(line[pos:])
	if m == nil {
		s.cb.Fill(pos, pos+2, highlight.StyleOperator)
		s.pos = pos + 2
		return
	}
	var ls, le int
	for g := 1; g <= 3; g++ {
		if m[2*g] >= 0 {
			ls, le = pos+m[2*g], pos+m[2*g+1]
			break
		}
	}
	end := pos + m[1]
	s.cb.Fill(pos, ls, highlight.StyleOperator)
	s.cb.Fill(ls, le, highlight.StyleLabel)
	s.cb.Fill(le, end, highlight.StyleOperator)
	if s.hereDoc == "" {
		s.hereDoc = line[ls:le]
	}
	s.pos = end
}

// scanWord consumes one word at top level and classifies it against
// the keyword, builtin and number tables. Inside substitution frames
// words stay neutral, like the original engine.
func (s *scanner) scanWord() {
	line, start := s.line, s.pos
	end := start
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	s.pos = end

	if len(s.frames) > 1 {
		s.cb.Fill(start, end, highlight.StyleNeutral)
		return
	}
	word := line[start:end]
	switch {
	case numberPattern.MatchString(word):
		s.cb.Fill(start, end, highlight.StyleNumber)
	case inSet(keywords, word):
		s.cb.Fill(start, end, highlight.StyleKeyword)
	case inSet(builtins, word):
		s.cb.Fill(start, end, highlight.StyleBuiltin)
	default:
		s.cb.Fill(start, end, highlight.StyleNeutral)
	}
}

// stateOut derives the outgoing block state from the final scanner
// position: the frame stack, any open single quote and any recorded
// here-doc label.
func (s *scanner) stateOut() highlight.BlockState {
	var out highlight.BlockState
	out.NestDepth = len(s.frames) - 1
	for d, f := range s.frames {
		if f.doubleQuoted {
			out.Quotes = out.Quotes.With(d)
		}
	}

	switch {
	case s.hereDoc != "":
		// The here-doc body owns the following lines; any quote or
		// substitution still open resumes after the terminator.
		out.Cont = highlight.ContHereDoc
		out.HereDoc = s.hereDoc
		out.HereDocQuoted = out.NestDepth > 0 || out.Quotes != 0
	case s.singleOpen:
		if out.NestDepth > 0 {
			out.Cont = highlight.ContNestedSingleQuote
		} else {
			out.Cont = highlight.ContSingleQuote
		}
	case out.Quotes.Has(out.NestDepth):
		if out.NestDepth > 0 {
			out.Cont = highlight.ContNestedDoubleQuote
		} else {
			out.Cont = highlight.ContDoubleQuote
		}
	}
	return out
}

// isEscaped reports whether the byte at pos is preceded by an odd
// number of backslashes.
func isEscaped(line string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// findUnescaped returns the index of the first unescaped occurrence of
// c at or after from, or -1.
func findUnescaped(line string, from int, c byte) int {
	for i := from; i < len(line); i++ {
		if line[i] == c && !isEscaped(line, i) {
			return i
		}
	}
	return -1
}

func inSet(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}
