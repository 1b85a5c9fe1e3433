// Package driver owns incremental re-highlighting: it decides which
// lines must be re-tokenized after an edit and propagates lexical
// state forward only until a line's outgoing state stops changing.
package driver

import (
	"sync"

	"github.com/glint-editor/glint/internal/document"
	"github.com/glint-editor/glint/internal/highlight"
)

// entry is the cached highlight result for one line. The zero value is
// a dirty, never-tokenized line.
type entry struct {
	out   highlight.BlockState
	spans []highlight.Span
	// highlighted means spans and out are valid for the line's current
	// text and its currently-effective incoming state.
	highlighted bool
}

// Engine drives incremental highlighting for one document. All calls
// must come from the single thread that owns highlighting; the mutex
// only guards against misuse, it is not a concurrency design.
type Engine struct {
	mu  sync.Mutex
	buf document.Buffer
	tok highlight.Tokenizer

	lines      []entry
	firstDirty int

	enabled  bool
	maxBytes int64
	skipped  bool
}

// New creates an engine over the buffer using the given tokenizer.
// maxBytes is the size ceiling above which highlighting is skipped;
// zero or negative disables the guard. When the buffer reports edits,
// the engine subscribes itself.
func New(buf document.Buffer, tok highlight.Tokenizer, maxBytes int64) *Engine {
	if tok == nil {
		tok = highlight.Plain()
	}
	e := &Engine{
		buf:      buf,
		tok:      tok,
		lines:    make([]entry, buf.LineCount()),
		enabled:  true,
		maxBytes: maxBytes,
	}
	e.skipped = e.overLimit()
	if n, ok := buf.(document.Notifier); ok {
		n.OnChange(e.Apply)
	}
	return e
}

// Apply records an edit: line entries are spliced to match the new
// line layout and the affected lines are marked dirty.
func (e *Engine) Apply(ch document.Change) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := ch.StartLine
	if start < 0 {
		start = 0
	}
	if start > len(e.lines) {
		start = len(e.lines)
	}
	removed := ch.LinesRemoved
	if removed < 0 {
		removed = 0
	}
	if start+removed > len(e.lines) {
		removed = len(e.lines) - start
	}
	inserted := ch.LinesInserted
	if inserted < 0 {
		inserted = 0
	}

	// Fresh entries are dirty. The last one keeps the outgoing state the
	// line after the region was last computed with, so propagation can
	// detect an unchanged state and stop at the edited region.
	fresh := make([]entry, inserted)
	if inserted > 0 {
		if k := start + removed - 1; k >= 0 && k < len(e.lines) {
			fresh[inserted-1].out = e.lines[k].out
		}
	}
	tail := e.lines[start+removed:]
	e.lines = append(append(e.lines[:start:start], fresh...), tail...)

	// After a pure deletion the line now at start follows a different
	// predecessor; mark it so its incoming state is re-checked.
	if start < len(e.lines) {
		e.lines[start].highlighted = false
	}
	if start < e.firstDirty {
		e.firstDirty = start
	}

	e.syncLength()
	e.skipped = e.overLimit()
}

// SpansFor returns the spans for line i, tokenizing any dirty
// predecessors first. It returns nil when highlighting is disabled,
// skipped for size, or i is out of range.
func (e *Engine) SpansFor(i int) []highlight.Span {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() || i < 0 || i >= len(e.lines) {
		return nil
	}
	e.ensure(i)
	return e.lines[i].spans
}

// StateAt returns the outgoing block state of line i, tokenizing up to
// it if needed.
func (e *Engine) StateAt(i int) highlight.BlockState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() || i < 0 || i >= len(e.lines) {
		return highlight.Initial()
	}
	e.ensure(i)
	return e.lines[i].out
}

// EnsureRange tokenizes all dirty lines needed so that [start, end]
// is valid, resolving any propagation chain already in flight. It
// never forces a full-document scan.
func (e *Engine) EnsureRange(start, end int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() || len(e.lines) == 0 {
		return
	}
	if end >= len(e.lines) {
		end = len(e.lines) - 1
	}
	if end < 0 {
		return
	}
	e.ensure(end)
}

// Step tokenizes at most budget dirty lines and reports whether dirty
// lines remain. It is the cooperative-scheduling hook: the UI loop
// calls it with a small budget during idle time so large documents
// highlight without freezing interaction.
func (e *Engine) Step(budget int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready() || budget <= 0 {
		return false
	}
	e.process(len(e.lines)-1, budget)
	return e.firstDirty < len(e.lines)
}

// Pending reports whether any line is still dirty.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready() && e.firstDirty < len(e.lines)
}

// SetEnabled toggles highlighting. Disabling discards all cached spans
// and states; re-enabling re-tokenizes lazily from line 0.
func (e *Engine) SetEnabled(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if on == e.enabled {
		return
	}
	e.enabled = on
	e.reset()
}

// Enabled reports whether highlighting is on.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// SetTokenizer switches the grammar (language override or detection
// change) and invalidates everything.
func (e *Engine) SetTokenizer(tok highlight.Tokenizer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tok == nil {
		tok = highlight.Plain()
	}
	e.tok = tok
	e.reset()
}

// Tokenizer returns the active tokenizer.
func (e *Engine) Tokenizer() highlight.Tokenizer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tok
}

// InvalidateAll marks every line dirty, forcing a full re-tokenize on
// demand (explicit full re-scan request).
func (e *Engine) InvalidateAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Skipped reports whether highlighting is being skipped because the
// document exceeds the configured size ceiling. This is a condition,
// not an error: the document stays fully usable without color.
func (e *Engine) Skipped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipped
}

// ready reports whether the engine will produce spans at all.
func (e *Engine) ready() bool {
	return e.enabled && !e.skipped
}

// ensure makes lines [0, target] valid, continuing past target only
// while outgoing states keep changing.
func (e *Engine) ensure(target int) {
	e.process(target, -1)
}

// process tokenizes dirty lines in order. target is the last line that
// must become valid (propagation may run further); budget limits how
// many lines are tokenized, -1 for unlimited.
func (e *Engine) process(target, budget int) {
	count := len(e.lines)
	i := e.firstDirty
	done := 0
	for i < count {
		// Past the target, any remaining dirty line is resolved lazily
		// when it is itself requested.
		if budget < 0 && i > target {
			break
		}
		if e.lines[i].highlighted {
			i++
			continue
		}
		if budget >= 0 && done >= budget {
			break
		}

		in := highlight.Initial()
		if i > 0 {
			in = e.lines[i-1].out
		}
		spans, out := e.tok.Tokenize(e.buf.Line(i), in)
		prevOut := e.lines[i].out
		e.lines[i] = entry{out: out, spans: spans, highlighted: true}
		done++

		// Propagation: the next line only needs re-tokenizing when its
		// incoming state actually changed. This is what bounds a
		// single-character edit to the edited line in the common case.
		if i+1 < count && !out.Equal(prevOut) {
			e.lines[i+1].highlighted = false
		}
		i++
	}
	e.firstDirty = e.nextDirty(i)
}

// nextDirty returns the first dirty index at or after from.
func (e *Engine) nextDirty(from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(e.lines); i++ {
		if !e.lines[i].highlighted {
			return i
		}
	}
	return len(e.lines)
}

// reset drops all cached state and marks everything dirty.
func (e *Engine) reset() {
	e.lines = make([]entry, e.buf.LineCount())
	e.firstDirty = 0
	e.skipped = e.overLimit()
}

// syncLength clamps the entry slice to the buffer's line count in case
// a change event and the buffer disagree.
func (e *Engine) syncLength() {
	count := e.buf.LineCount()
	switch {
	case len(e.lines) < count:
		e.lines = append(e.lines, make([]entry, count-len(e.lines))...)
	case len(e.lines) > count:
		e.lines = e.lines[:count]
	}
	if e.firstDirty > len(e.lines) {
		e.firstDirty = len(e.lines)
	}
}

func (e *Engine) overLimit() bool {
	return e.maxBytes > 0 && e.buf.Size() > e.maxBytes
}
