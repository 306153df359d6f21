package backend

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/text"
)

// Stream is a Backend that writes ANSI escape sequences to an io.Writer.
// It keeps no cell buffer: what a grid paints is what gets written, so the
// grid's delta tracking is the only diffing. Styles are diffed against the
// last style written.
//
// Writes are buffered until Show. The first write error is kept and
// reported by Err; later writes are dropped.
type Stream struct {
	mu            sync.Mutex
	out           *bufio.Writer
	width, height int
	cur           core.Style
	ready         bool
	err           error
}

// NewStream creates a stream backend for a width x height display.
func NewStream(w io.Writer, width, height int) *Stream {
	return &Stream{
		out:    bufio.NewWriter(w),
		width:  width,
		height: height,
		cur:    core.DefaultStyle(),
	}
}

// Init resets the display style and clears the screen.
func (s *Stream) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ready = true
	s.cur = core.DefaultStyle()
	s.write(ansi.ResetStyle + ansi.EraseEntireScreen)
	return s.flush()
}

// Shutdown resets the style, moves the cursor below the drawn area and
// flushes.
func (s *Stream) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}
	s.write(ansi.ResetStyle + ansi.CursorPosition(1, s.height) + "\r\n")
	_ = s.flush() // reported by Err
	s.ready = false
}

func (s *Stream) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.width, s.height
}

// Resize changes the display dimensions used for clipping.
func (s *Stream) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width, s.height = width, height
}

// DrawTextAt positions the cursor, switches style if needed and writes
// the clusters of run that fit on the display.
func (s *Stream) DrawTextAt(pos core.Pos, run text.Run) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready || s.err != nil {
		return false
	}
	placed := place(pos, run, s.width, s.height)
	if len(placed) == 0 {
		return false
	}

	var sb strings.Builder
	sb.WriteString(ansi.CursorPosition(placed[0].x+1, pos.Y+1))
	sb.WriteString(styleTransition(s.cur, run.Style()))
	for _, p := range placed {
		sb.WriteString(p.cluster)
	}
	s.cur = run.Style()
	s.write(sb.String())
	return true
}

// Clear blanks the display and resets the style.
func (s *Stream) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = core.DefaultStyle()
	s.write(ansi.ResetStyle + ansi.EraseEntireScreen)
}

// Show flushes buffered output.
func (s *Stream) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		s.setErr(ErrNotInitialized)
		return
	}
	_ = s.flush() // reported by Err
}

// Reset forgets the last written style, so the next draw restates its
// style in full. Use it after something else has written to the device.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(ansi.ResetStyle)
	s.cur = core.DefaultStyle()
}

// Err returns the first write error.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

func (s *Stream) write(str string) {
	if s.err != nil {
		return
	}
	if _, err := s.out.WriteString(str); err != nil {
		s.setErr(fmt.Errorf("write: %w", err))
	}
}

func (s *Stream) flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.out.Flush(); err != nil {
		s.setErr(fmt.Errorf("flush: %w", err))
	}
	return s.err
}

func (s *Stream) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// styleTransition returns the SGR sequence that changes the terminal from
// style from to style to. Removing an attribute resets and restates the
// whole style; otherwise only the differences are written.
func styleTransition(from, to core.Style) string {
	if from.Equals(to) {
		return ""
	}

	var seq ansi.Style
	if from.Attributes&^to.Attributes != 0 {
		seq = seq.Reset()
		from = core.DefaultStyle()
	}

	added := to.Attributes &^ from.Attributes
	if added.Has(core.AttrBold) {
		seq = seq.Bold()
	}
	if added.Has(core.AttrDim) {
		seq = seq.Faint()
	}
	if added.Has(core.AttrItalic) {
		seq = seq.Italic()
	}
	if added.Has(core.AttrUnderline) {
		seq = seq.Underline()
	}
	if added.Has(core.AttrReverse) {
		seq = seq.Reverse()
	}
	if added.Has(core.AttrStrikethrough) {
		seq = seq.Strikethrough()
	}

	if !from.Foreground.Equals(to.Foreground) {
		if to.Foreground.IsDefault() {
			seq = seq.DefaultForegroundColor()
		} else {
			seq = seq.ForegroundColor(ansiColor(to.Foreground))
		}
	}
	if !from.Background.Equals(to.Background) {
		if to.Background.IsDefault() {
			seq = seq.DefaultBackgroundColor()
		} else {
			seq = seq.BackgroundColor(ansiColor(to.Background))
		}
	}

	if len(seq) == 0 {
		return ""
	}
	return seq.String()
}

func ansiColor(c core.Color) ansi.Color {
	if c.Indexed {
		return ansi.ExtendedColor(c.R)
	}
	return ansi.TrueColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}
