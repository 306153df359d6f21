// Package backend provides the output sinks a grid paints into: a tcell
// terminal, a raw ANSI stream and an in-memory null backend for tests.
package backend

import (
	"errors"

	"github.com/dshills/termrect/internal/renderer/grid"
)

// ErrNotInitialized is returned when a backend is used before Init.
var ErrNotInitialized = errors.New("backend not initialized")

// Backend is a grid.Sink bound to a display device.
type Backend interface {
	grid.Sink

	// Init prepares the device for drawing.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores the device state and releases resources.
	Shutdown()

	// Clear blanks the whole display with the default style.
	Clear()

	// Show makes everything drawn since the last Show visible.
	Show()
}

// EventType identifies the type of device event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventClosed
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys a session reacts to.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyCtrlC
)

// Event is an input or resize notification from the device.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// IsQuit reports whether the event asks the session to stop.
func (e Event) IsQuit() bool {
	switch {
	case e.Type == EventClosed:
		return true
	case e.Type != EventKey:
		return false
	case e.Key == KeyEscape, e.Key == KeyCtrlC:
		return true
	default:
		return e.Key == KeyRune && e.Rune == 'q'
	}
}

// EventSource is implemented by backends that deliver device events.
type EventSource interface {
	// PollEvent waits for and returns the next event.
	// Returns an EventClosed event once the backend is shut down.
	PollEvent() Event

	// PostEvent queues a synthetic event.
	PostEvent(event Event)
}

// ErrorReporter is implemented by backends whose writes can fail after Init.
type ErrorReporter interface {
	// Err returns the first write error, if any.
	Err() error
}
