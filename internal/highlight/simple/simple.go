// Package simple provides a table-driven tokenizer for grammars whose
// multi-line constructs are plain begin/end pairs (block comments,
// triple-quoted strings, CDATA sections, fenced code blocks). Each
// grammar is a static table of regex rules, keywords and multi-line
// pairs; the scan itself is shared.
package simple

import (
	"regexp"
	"unicode"

	"github.com/glint-editor/glint/internal/highlight"
)

// Rule is a single-line regex rule.
type Rule struct {
	Pattern *regexp.Regexp
	Class   highlight.StyleClass
	// Submatch selects a capture group instead of the whole match.
	Submatch int
}

// MultiLine is a begin/end construct that may span lines. Cont is the
// continuation value recorded when End is not found on the same line.
type MultiLine struct {
	Start string
	End   string
	Class highlight.StyleClass
	Cont  highlight.Continuation
}

// Tokenizer is a reusable regex/table tokenizer.
type Tokenizer struct {
	language   string
	extensions []string
	rules      []Rule
	keywords   map[string]highlight.StyleClass
	multi      []MultiLine
}

// New creates an empty tokenizer for the given language key.
func New(language string, extensions []string) *Tokenizer {
	return &Tokenizer{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]highlight.StyleClass),
	}
}

// AddRule appends a regex rule. Rules are applied in order; earlier
// rules claim their text first.
func (t *Tokenizer) AddRule(pattern string, class highlight.StyleClass) *Tokenizer {
	t.rules = append(t.rules, Rule{Pattern: regexp.MustCompile(pattern), Class: class})
	return t
}

// AddSubmatchRule appends a rule that styles only one capture group.
func (t *Tokenizer) AddSubmatchRule(pattern string, submatch int, class highlight.StyleClass) *Tokenizer {
	t.rules = append(t.rules, Rule{
		Pattern:  regexp.MustCompile(pattern),
		Class:    class,
		Submatch: submatch,
	})
	return t
}

// AddKeywords registers keywords sharing one style class.
func (t *Tokenizer) AddKeywords(class highlight.StyleClass, words ...string) *Tokenizer {
	for _, w := range words {
		t.keywords[w] = class
	}
	return t
}

// AddMultiLine registers a begin/end construct.
func (t *Tokenizer) AddMultiLine(start, end string, class highlight.StyleClass, cont highlight.Continuation) *Tokenizer {
	t.multi = append(t.multi, MultiLine{Start: start, End: end, Class: class, Cont: cont})
	return t
}

// Language returns the language key.
func (t *Tokenizer) Language() string { return t.language }

// FileExtensions returns the registered extensions.
func (t *Tokenizer) FileExtensions() []string { return t.extensions }

// Tokenize highlights one line given the incoming state.
func (t *Tokenizer) Tokenize(line string, in highlight.BlockState) ([]highlight.Span, highlight.BlockState) {
	in = in.Normalize()
	if len(line) == 0 {
		return nil, in
	}

	cb := highlight.NewClassBuffer(len(line))
	covered := make([]bool, len(line))
	pos := 0

	// Continuation: consume the open construct first.
	if in.Cont != highlight.ContNone {
		ml, ok := t.multiFor(in.Cont)
		if !ok {
			// State from another grammar (language was switched);
			// treat as no continuation rather than erroring.
			in = highlight.Initial()
		} else {
			idx := indexFrom(line, 0, ml.End)
			if idx < 0 {
				cb.Fill(0, len(line), ml.Class)
				highlight.TagURLs(cb, line, 0, len(line))
				return cb.Spans(), in
			}
			pos = idx + len(ml.End)
			cb.Fill(0, pos, ml.Class)
			markCovered(covered, 0, pos)
			in = highlight.Initial()
		}
	}

	out := t.scanNormal(line, cb, covered, pos)
	highlight.TagURLs(cb, line, 0, len(line))
	return cb.Spans(), out
}

// scanNormal applies multi-line starts, regex rules and keywords to
// the uncovered portion of the line starting at pos.
func (t *Tokenizer) scanNormal(line string, cb highlight.ClassBuffer, covered []bool, pos int) highlight.BlockState {
	out := highlight.Initial()

	// Multi-line construct starts, leftmost first so an earlier
	// construct claims its region before a later one is considered.
	for {
		ml, idx := t.nextMultiStart(line, covered, pos)
		if idx < 0 {
			break
		}
		endIdx := indexFrom(line, idx+len(ml.Start), ml.End)
		if endIdx < 0 {
			cb.Fill(idx, len(line), ml.Class)
			markCovered(covered, idx, len(line))
			out.Cont = ml.Cont
			break
		}
		end := endIdx + len(ml.End)
		cb.Fill(idx, end, ml.Class)
		markCovered(covered, idx, end)
	}

	// Regex rules over uncovered text.
	for _, rule := range t.rules {
		for _, m := range rule.Pattern.FindAllStringSubmatchIndex(line, -1) {
			start, end := m[0], m[1]
			if rule.Submatch > 0 && len(m) > rule.Submatch*2+1 {
				start, end = m[rule.Submatch*2], m[rule.Submatch*2+1]
			}
			if start < pos || end <= start || anyCovered(covered, start, end) {
				continue
			}
			cb.Fill(start, end, rule.Class)
			markCovered(covered, start, end)
		}
	}

	// Keywords over remaining identifiers.
	t.scanKeywords(line, cb, covered, pos)

	return out
}

// nextMultiStart finds the leftmost uncovered multi-line start at or
// after pos.
func (t *Tokenizer) nextMultiStart(line string, covered []bool, pos int) (MultiLine, int) {
	best := -1
	var bestML MultiLine
	for _, ml := range t.multi {
		from := pos
		for {
			idx := indexFrom(line, from, ml.Start)
			if idx < 0 {
				break
			}
			if !anyCovered(covered, idx, idx+len(ml.Start)) {
				if best < 0 || idx < best {
					best = idx
					bestML = ml
				}
				break
			}
			from = idx + 1
		}
	}
	return bestML, best
}

// multiFor returns the construct matching a continuation value.
func (t *Tokenizer) multiFor(cont highlight.Continuation) (MultiLine, bool) {
	for _, ml := range t.multi {
		if ml.Cont == cont {
			return ml, true
		}
	}
	return MultiLine{}, false
}

// scanKeywords walks uncovered identifier runs and classifies them
// against the keyword table.
func (t *Tokenizer) scanKeywords(line string, cb highlight.ClassBuffer, covered []bool, pos int) {
	i := pos
	for i < len(line) {
		if covered[i] {
			i++
			continue
		}
		r := rune(line[i])
		if !unicode.IsLetter(r) && r != '_' {
			i++
			continue
		}
		start := i
		for i < len(line) {
			r = rune(line[i])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			i++
		}
		if anyCovered(covered, start, i) {
			continue
		}
		if class, ok := t.keywords[line[start:i]]; ok {
			cb.Fill(start, i, class)
			markCovered(covered, start, i)
		}
	}
}

func indexFrom(line string, from int, sub string) int {
	if from < 0 || from > len(line) || sub == "" {
		return -1
	}
	for i := from; i+len(sub) <= len(line); i++ {
		if line[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func anyCovered(covered []bool, start, end int) bool {
	if start < 0 {
		start = 0
	}
	for i := start; i < end && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func markCovered(covered []bool, start, end int) {
	if start < 0 {
		start = 0
	}
	for i := start; i < end && i < len(covered); i++ {
		covered[i] = true
	}
}
