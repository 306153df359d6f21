package grid

import (
	"strings"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/text"
)

// Sink is a paint target: a terminal, an off-screen buffer, or another Grid.
type Sink interface {
	// Size returns the target dimensions in cells.
	Size() (width, height int)

	// DrawTextAt paints run with its left edge at pos.
	// Returns true if the visible state changed.
	DrawTextAt(pos core.Pos, run text.Run) bool
}

// DrawStrAt paints s in style at pos. Empty strings draw nothing.
func DrawStrAt(s Sink, pos core.Pos, style core.Style, str string) bool {
	run := text.New(style, str)
	if run.IsEmpty() {
		return false
	}
	return s.DrawTextAt(pos, run)
}

// ClearLine blanks the sink from pos to the end of its line.
func ClearLine(s Sink, pos core.Pos, style core.Style) bool {
	width, _ := s.Size()
	n := width - pos.X
	if n <= 0 {
		return false
	}
	return DrawStrAt(s, pos, style, strings.Repeat(" ", n))
}
