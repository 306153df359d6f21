package backend

import (
	"slices"
	"strings"
	"sync"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/text"
)

// DrawCall is one DrawTextAt received by a NullBackend.
type DrawCall struct {
	Pos core.Pos
	Run text.Run
}

// NullBackend is an in-memory backend for testing. It keeps the cells a
// terminal would show and a log of every draw call.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	calls         []DrawCall
	shows         int
	closed        bool
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]core.Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error { return nil }

// Shutdown makes PollEvent report EventClosed.
func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.width, b.height
}

// DrawTextAt lays the run's clusters into cells. Wide clusters occupy a
// cell plus a continuation cell; clusters crossing the edge are dropped.
func (b *NullBackend) DrawTextAt(pos core.Pos, run text.Run) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, DrawCall{Pos: pos, Run: run})

	changed := false
	style := run.Style()
	for _, p := range place(pos, run, b.width, b.height) {
		changed = b.set(p.x, pos.Y, core.NewStyledCell(p.cluster, style)) || changed
		for i := 1; i < p.width; i++ {
			changed = b.set(p.x+i, pos.Y, core.ContinuationCell(style)) || changed
		}
	}
	return changed
}

func (b *NullBackend) set(x, y int, cell core.Cell) bool {
	if b.cells[y][x].Equals(cell) {
		return false
	}
	b.cells[y][x] = cell
	return true
}

// Cell returns the cell at the given position.
// Returns an empty cell for positions outside the backend.
func (b *NullBackend) Cell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Line returns the text shown on row y.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Calls returns the draw calls received since the last ResetCalls.
func (b *NullBackend) Calls() []DrawCall {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.calls)
}

// ResetCalls clears the call log.
func (b *NullBackend) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = nil
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shows++
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.shows
}

func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventClosed}
	}
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Resize simulates a device resize. Content is cleared and a resize event
// is posted.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()

	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
