// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors a configuration file through fsnotify and calls
// handlers after the file settles. The parent directory is watched rather
// than the file itself, since editors often save by replacing the file.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when starting a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors one file for changes.
type Watcher struct {
	mu sync.Mutex

	fsw  *fsnotify.Watcher
	path string

	handlers []Handler
	debounce time.Duration

	lastError error
	running   bool
	closed    bool
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before handlers run.
// Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for the file at path. The file does not need to
// exist yet, but its directory does.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering events to handlers.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.running {
		return nil
	}
	w.running = true

	w.wg.Add(1)
	go w.processLoop()
	return nil
}

// Close stops the watcher and waits for pending handlers to return.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

// LastError returns the most recent error reported by fsnotify.
func (w *Watcher) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var (
		pending *Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			event, ok := w.convert(fsEvent)
			if !ok {
				continue
			}
			if w.debounce == 0 {
				w.emit(event)
				continue
			}
			pending = coalesce(pending, event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != nil {
				w.emit(*pending)
				pending = nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.lastError = err
			w.mu.Unlock()
		}
	}
}

// convert maps an fsnotify event on the watched file to an Event.
func (w *Watcher) convert(fsEvent fsnotify.Event) (Event, bool) {
	if filepath.Clean(fsEvent.Name) != w.path {
		return Event{}, false
	}

	var op Operation
	switch {
	case fsEvent.Op.Has(fsnotify.Remove):
		op = OpRemove
	case fsEvent.Op.Has(fsnotify.Rename):
		op = OpRename
	case fsEvent.Op.Has(fsnotify.Create):
		op = OpCreate
	case fsEvent.Op.Has(fsnotify.Write):
		op = OpWrite
	default:
		return Event{}, false // chmod
	}
	return Event{Path: w.path, Op: op, Time: time.Now()}, true
}

// coalesce merges a new event into a pending one:
// create + write => create, any + remove => remove, otherwise latest wins.
func coalesce(pending *Event, event Event) *Event {
	if pending != nil && pending.Op == OpCreate && event.Op == OpWrite {
		pending.Time = event.Time
		return pending
	}
	return &event
}

func (w *Watcher) emit(event Event) {
	w.mu.Lock()
	handlers := append([]Handler(nil), w.handlers...)
	w.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}
