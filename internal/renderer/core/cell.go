package core

import "github.com/mattn/go-runewidth"

// cellWidths matches the widths text runs are measured with.
var cellWidths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Pos is a cell position: X is the column, Y the row. Both are 0-based.
type Pos struct {
	X, Y int
}

// Add returns the position offset by dx columns and dy rows.
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Cell represents a single terminal cell.
type Cell struct {
	// Text is the grapheme cluster displayed in the cell.
	// Empty for the continuation cell of a wide cluster.
	Text string

	// Width is the display width: 0 for continuation cells, 1 or 2 otherwise.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell for a grapheme cluster.
func NewStyledCell(cluster string, style Style) Cell {
	return Cell{Text: cluster, Width: cellWidths.StringWidth(cluster), Style: style}
}

// ContinuationCell returns the placeholder occupying the second column of a
// wide cluster.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// IsContinuation returns true if this is the second cell of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Text == other.Text &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}
