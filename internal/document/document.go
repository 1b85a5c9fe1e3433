// Package document provides the line-oriented buffer abstraction the
// highlighting engine consumes, plus a simple in-memory implementation.
package document

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Change describes an edit in line terms: starting at StartLine,
// LinesRemoved lines were removed and LinesInserted lines inserted.
// An in-place edit of a single line is {N, 1, 1}.
type Change struct {
	StartLine     int
	LinesRemoved  int
	LinesInserted int
}

// Buffer is the read side of a document the engine highlights.
type Buffer interface {
	// Line returns the text of line i without its terminator. Out of
	// range indices return "".
	Line(i int) string

	// LineCount returns the number of lines. An empty document has one
	// empty line.
	LineCount() int

	// Size returns the document size in bytes, used by the size guard.
	Size() int64
}

// Notifier is implemented by buffers that report edits.
type Notifier interface {
	// OnChange registers a callback invoked after every edit.
	OnChange(func(Change))
}

// LineBuffer is an in-memory Buffer with edit operations that compute
// the corresponding change events. It is not safe for concurrent
// mutation; the owner drives all edits from one goroutine.
type LineBuffer struct {
	mu        sync.RWMutex
	id        uuid.UUID
	lines     []string
	listeners []func(Change)
}

// NewLineBuffer creates a buffer from existing text. The text is split
// on newlines; an empty string yields one empty line.
func NewLineBuffer(text string) *LineBuffer {
	return &LineBuffer{
		id:    uuid.New(),
		lines: strings.Split(text, "\n"),
	}
}

// ID returns the buffer's identity.
func (b *LineBuffer) ID() uuid.UUID { return b.id }

// Line returns the text of line i.
func (b *LineBuffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineCount returns the number of lines.
func (b *LineBuffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Size returns the byte size of the buffer, counting one byte per
// line separator.
func (b *LineBuffer) Size() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var n int64
	for _, l := range b.lines {
		n += int64(len(l)) + 1
	}
	if n > 0 {
		n-- // no separator after the last line
	}
	return n
}

// OnChange registers a change listener.
func (b *LineBuffer) OnChange(fn func(Change)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// SetLine replaces the text of line i.
func (b *LineBuffer) SetLine(i int, text string) {
	b.mu.Lock()
	if i < 0 || i >= len(b.lines) {
		b.mu.Unlock()
		return
	}
	b.lines[i] = text
	b.mu.Unlock()
	b.notify(Change{StartLine: i, LinesRemoved: 1, LinesInserted: 1})
}

// InsertLines inserts the given lines before line i.
func (b *LineBuffer) InsertLines(i int, lines ...string) {
	if len(lines) == 0 {
		return
	}
	b.mu.Lock()
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines[:i], append(append([]string{}, lines...), b.lines[i:]...)...)
	b.mu.Unlock()
	b.notify(Change{StartLine: i, LinesRemoved: 0, LinesInserted: len(lines)})
}

// RemoveLines removes n lines starting at line i.
func (b *LineBuffer) RemoveLines(i, n int) {
	b.mu.Lock()
	if i < 0 || i >= len(b.lines) || n <= 0 {
		b.mu.Unlock()
		return
	}
	if i+n > len(b.lines) {
		n = len(b.lines) - i
	}
	b.lines = append(b.lines[:i], b.lines[i+n:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	b.mu.Unlock()
	b.notify(Change{StartLine: i, LinesRemoved: n, LinesInserted: 0})
}

// SetText replaces the whole buffer content.
func (b *LineBuffer) SetText(text string) {
	b.mu.Lock()
	removed := len(b.lines)
	b.lines = strings.Split(text, "\n")
	inserted := len(b.lines)
	b.mu.Unlock()
	b.notify(Change{StartLine: 0, LinesRemoved: removed, LinesInserted: inserted})
}

// Lines returns a copy of all lines.
func (b *LineBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *LineBuffer) notify(ch Change) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()
	for _, fn := range listeners {
		fn(ch)
	}
}
