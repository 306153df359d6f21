package grid

import (
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/dirty"
	"github.com/dshills/termrect/internal/renderer/text"
)

// Grid is a rectangle of rows with row-level change tracking.
// Grid implements Sink, so grids can be painted into other grids.
type Grid struct {
	width, height int
	rows          []*Row
	dirty         dirty.Delta
}

// Option configures a Grid.
type Option func(*options)

type options struct {
	fill text.Run
}

// WithFill sets the cell used for blank rows. Fills that are not exactly
// one cell wide are ignored.
func WithFill(fill string, style core.Style) Option {
	return func(o *options) {
		if run := text.New(style, fill); run.Width() == 1 {
			o.fill = run
		}
	}
}

// New returns a grid of blank rows. Negative dimensions are treated as zero.
func New(width, height int, opts ...Option) *Grid {
	o := options{fill: text.Blank(core.DefaultStyle(), 1)}
	for _, opt := range opts {
		opt(&o)
	}

	width, height = max(width, 0), max(height, 0)
	g := &Grid{
		width:  width,
		height: height,
		rows:   make([]*Row, height),
	}
	for y := range g.rows {
		g.rows[y] = newRow(width, o.fill)
	}
	return g
}

// SetText writes run at column x of row y and reports whether the grid
// changed. Rows outside the grid are ignored. See Row.Overwrite for the
// column rules.
func (g *Grid) SetText(x, y int, run text.Run) bool {
	if y < 0 || y >= g.height {
		return false
	}
	if !g.rows[y].Overwrite(x, run) {
		return false
	}
	g.dirty.Add(y)
	return true
}

// DrawTextAt implements Sink.
func (g *Grid) DrawTextAt(pos core.Pos, run text.Run) bool {
	return g.SetText(pos.X, pos.Y, run)
}

// Size returns the grid dimensions.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Surface returns g, so a Grid is its own Owner.
func (g *Grid) Surface() *Grid {
	return g
}

// Clear blanks every row with style.
func (g *Grid) Clear(style core.Style) {
	for y := range g.rows {
		ClearLine(g, core.Pos{Y: y}, style)
	}
}

// Runs returns a copy of row y's runs, or nil if y is out of range.
func (g *Grid) Runs(y int) []text.Run {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.rows[y].Runs()
}

// Line returns the unstyled text of row y.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	return g.rows[y].String()
}

// Dirty returns the rows changed since the last delta paint.
func (g *Grid) Dirty() dirty.Delta {
	return g.dirty
}

// RowDirty returns the columns of row y changed since the last delta paint.
func (g *Grid) RowDirty(y int) dirty.Delta {
	if y < 0 || y >= g.height {
		return dirty.Delta{}
	}
	return g.rows[y].Dirty()
}

// DrawFull paints every row.
func (g *Grid) DrawFull(s Sink, pos core.Pos) {
	for y, row := range g.rows {
		row.DrawFull(s, pos.Add(0, y))
	}
}

// DrawDelta paints the changed runs of the changed rows, then clears the
// change records of the grid and of every painted row.
func (g *Grid) DrawDelta(s Sink, pos core.Pos) {
	start, end := g.dirty.Range()
	for y := start; y < end; y++ {
		g.rows[y].DrawDelta(s, pos.Add(0, y))
	}
	g.dirty.Reset()
}

// MarkAllChanged makes the next DrawDelta repaint the whole grid.
func (g *Grid) MarkAllChanged() {
	g.dirty = dirty.Full(g.height)
	for _, row := range g.rows {
		row.MarkAllChanged()
	}
}

// MarkNoneChanged makes the next DrawDelta paint nothing.
func (g *Grid) MarkNoneChanged() {
	g.dirty.Reset()
	for _, row := range g.rows {
		row.MarkNoneChanged()
	}
}
