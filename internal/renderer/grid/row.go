package grid

import (
	"slices"
	"strings"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/dirty"
	"github.com/dshills/termrect/internal/renderer/text"
)

// Row is one line of a grid: runs laid end to end with no gaps, whose
// widths always sum to the row width.
type Row struct {
	runs  []text.Run
	width int
	dirty dirty.Delta
}

// NewRow returns a blank row of the given width.
func NewRow(width int) *Row {
	return newRow(width, text.Blank(core.DefaultStyle(), 1))
}

// newRow fills the row with repetitions of fill, which must be one cell wide.
func newRow(width int, fill text.Run) *Row {
	r := &Row{width: max(width, 0)}
	if r.width > 0 {
		r.runs = []text.Run{text.New(fill.Style(), strings.Repeat(fill.Text(), r.width))}
	}
	return r
}

// Overwrite writes run starting at column x and reports whether the row
// changed.
//
// Writes never grow the row: a run crossing the right edge is truncated and
// a write starting at or past the edge is ignored. A negative x drops the
// run's leading cells. Wide characters split by the write are blanked.
//
// Overwrite panics if run is zero-width.
func (r *Row) Overwrite(x int, run text.Run) bool {
	if run.IsEmpty() {
		panic("grid: zero-width run written to row")
	}
	if x < 0 {
		if x+run.Width() <= 0 {
			return false
		}
		run = run.Cut(-x, run.Width())
		x = 0
	}
	if x >= r.width {
		return false
	}
	if x+run.Width() > r.width {
		run = run.Cut(0, r.width-x)
	}
	end := x + run.Width()

	startIdx, endIdx := -1, -1
	startCol, endCol := 0, 0
	col := 0
	for i, t := range r.runs {
		tEnd := col + t.Width()
		if startIdx < 0 && tEnd > x {
			startIdx, startCol = i, col
		}
		if startIdx >= 0 && tEnd >= end {
			endIdx, endCol = i, col
			break
		}
		col = tEnd
	}

	pieces := make([]text.Run, 0, 3)
	changedStart, changedEnd := x, end
	if startCol < x {
		left := r.runs[startIdx]
		pieces = append(pieces, left.Cut(0, x-startCol))
		changedStart = startCol + left.SnapLeft(x-startCol)
	}
	pieces = append(pieces, run)
	if right := r.runs[endIdx]; end < endCol+right.Width() {
		pieces = append(pieces, right.Cut(end-endCol, right.Width()))
		changedEnd = endCol + right.SnapRight(end-endCol)
	}

	r.runs = slices.Replace(r.runs, startIdx, endIdx+1, pieces...)
	r.dirty.Splice(changedStart, changedEnd, changedEnd-changedStart)
	return true
}

// Size returns the row's dimensions.
func (r *Row) Size() (int, int) {
	return r.width, 1
}

// Width returns the row width in cells.
func (r *Row) Width() int {
	return r.width
}

// Runs returns a copy of the row's runs.
func (r *Row) Runs() []text.Run {
	return slices.Clone(r.runs)
}

// Dirty returns the columns changed since the last delta paint.
func (r *Row) Dirty() dirty.Delta {
	return r.dirty
}

// String returns the row's text without styling.
func (r *Row) String() string {
	var sb strings.Builder
	for _, t := range r.runs {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// DrawFull paints every run.
func (r *Row) DrawFull(s Sink, pos core.Pos) {
	col := 0
	for _, t := range r.runs {
		s.DrawTextAt(pos.Add(col, 0), t)
		col += t.Width()
	}
}

// DrawDelta paints the runs touching changed columns and clears the
// change record.
func (r *Row) DrawDelta(s Sink, pos core.Pos) {
	if r.dirty.IsEmpty() {
		return
	}
	col := 0
	for _, t := range r.runs {
		if r.dirty.Overlaps(col, col+t.Width()) {
			s.DrawTextAt(pos.Add(col, 0), t)
		}
		col += t.Width()
	}
	r.dirty.Reset()
}

// MarkAllChanged marks every column changed.
func (r *Row) MarkAllChanged() {
	r.dirty = dirty.Full(r.width)
}

// MarkNoneChanged forgets all recorded changes.
func (r *Row) MarkNoneChanged() {
	r.dirty.Reset()
}
