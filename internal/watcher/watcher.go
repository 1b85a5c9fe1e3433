// Package watcher provides debounced file watching so the viewer can
// reload a file (and its config) when it changes on disk.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of a changed file after debouncing.
type Handler func(path string)

// Watcher monitors individual files for modification.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	pending  map[string]*time.Timer
	done     chan struct{}
	closed   bool
}

// New creates a watcher invoking handler on changes. A debounce of
// zero uses a small default so editors that write in several steps
// trigger one reload.
func New(handler Handler, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	w := &Watcher{
		fsw:      fsw,
		handler:  handler,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Add starts watching a file. The parent directory is watched so that
// rename-and-replace saves are still observed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsw.Add(filepath.Dir(abs))
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule(ev.Name)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal to the viewer; the file just
			// stops live-reloading.
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.handler(path)
		}
	})
}
