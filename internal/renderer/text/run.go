// Package text provides styled text runs: immutable spans of same-styled
// text whose display width is measured once, at construction.
//
// Widths are counted in terminal cells per grapheme cluster. Wide East Asian
// characters cost two cells and combining marks cost none.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/termrect/internal/renderer/core"
)

// widths ignores RUNEWIDTH_EASTASIAN and the locale, so ambiguous-width
// characters always take one cell.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Run is a span of text drawn with a single style.
//
// Runs are values. Copying one shares the underlying string, so duplicating
// a run into a splice result costs O(1).
type Run struct {
	style core.Style
	text  string
	width int
}

// New creates a run and measures its display width.
// An empty string yields a zero-width run, which rows reject.
func New(style core.Style, s string) Run {
	return Run{style: style, text: s, width: DisplayWidth(s)}
}

// Blank returns a run of n spaces.
func Blank(style core.Style, n int) Run {
	if n <= 0 {
		return Run{style: style}
	}
	return Run{style: style, text: strings.Repeat(" ", n), width: n}
}

// DisplayWidth returns the number of cells s occupies.
func DisplayWidth(s string) int {
	w := 0
	eachCluster(s, func(c cluster) bool {
		w += c.width
		return true
	})
	return w
}

// ClusterWidth returns the display width of a single grapheme cluster.
func ClusterWidth(cluster string) int {
	return widths.StringWidth(cluster)
}

// Style returns the run's style.
func (r Run) Style() core.Style { return r.style }

// Text returns the run's text.
func (r Run) Text() string { return r.text }

// Width returns the display width in cells.
func (r Run) Width() int { return r.width }

// IsEmpty returns true for a zero-width run.
func (r Run) IsEmpty() bool { return r.width == 0 }

// String returns the run's text.
func (r Run) String() string { return r.text }

// WithStyle returns the same text drawn with another style.
func (r Run) WithStyle(style core.Style) Run {
	r.style = style
	return r
}

// Equals returns true if both runs have the same style and text.
func (r Run) Equals(other Run) bool {
	return r.text == other.text && r.style.Equals(other.style)
}

// Slice returns the sub-run covering columns [a, b).
//
// Every grapheme cluster that overlaps [a, b) is kept. When a boundary
// bisects a wide cluster the whole cluster is included, so the result can be
// one cell wider than b-a at each bisected edge. Zero-width clusters are kept
// when their column lies in [a, b). Bounds are clamped to the run.
func (r Run) Slice(a, b int) Run {
	a, b = r.clamp(a, b)
	if a >= b {
		return Run{style: r.style}
	}

	start, end, width := -1, -1, 0
	eachCluster(r.text, func(c cluster) bool {
		if c.col >= b {
			return false
		}
		if c.overlaps(a, b) {
			if start < 0 {
				start = c.start
			}
			end = c.end
			width += c.width
		}
		return true
	})
	if start < 0 {
		return Run{style: r.style}
	}
	return Run{style: r.style, text: r.text[start:end], width: width}
}

// Cut returns exactly the columns [a, b) of the run, clamped to its width.
//
// Unlike Slice, a wide cluster bisected by a boundary is replaced by spaces
// for the cells that fall inside [a, b), so the result is always
// min(b, Width()) - a cells wide.
func (r Run) Cut(a, b int) Run {
	a, b = r.clamp(a, b)
	if a >= b {
		return Run{style: r.style}
	}

	var sb strings.Builder
	start, end := -1, -1
	padded := false
	eachCluster(r.text, func(c cluster) bool {
		if c.col >= b {
			return false
		}
		if !c.overlaps(a, b) {
			return true
		}
		if c.col < a || c.col+c.width > b {
			if !padded {
				padded = true
				if start >= 0 {
					sb.WriteString(r.text[start:end])
				}
			}
			sb.WriteString(strings.Repeat(" ", min(c.col+c.width, b)-max(c.col, a)))
			return true
		}
		if padded {
			sb.WriteString(r.text[c.start:c.end])
			return true
		}
		if start < 0 {
			start = c.start
		}
		end = c.end
		return true
	})

	if padded {
		return Run{style: r.style, text: sb.String(), width: b - a}
	}
	if start < 0 {
		return Run{style: r.style}
	}
	return Run{style: r.style, text: r.text[start:end], width: b - a}
}

// SnapLeft returns the first column of the cluster covering col.
// Columns outside the run are clamped to [0, Width()].
func (r Run) SnapLeft(col int) int {
	if col <= 0 {
		return 0
	}
	if col >= r.width {
		return r.width
	}
	snapped := col
	eachCluster(r.text, func(c cluster) bool {
		if c.col+c.width > col {
			snapped = c.col
			return false
		}
		return true
	})
	return snapped
}

// SnapRight returns the first cluster boundary at or after col.
// Columns outside the run are clamped to [0, Width()].
func (r Run) SnapRight(col int) int {
	if col <= 0 {
		return 0
	}
	if col >= r.width {
		return r.width
	}
	snapped := col
	eachCluster(r.text, func(c cluster) bool {
		if c.col+c.width >= col {
			snapped = c.col + c.width
			return false
		}
		return true
	})
	return snapped
}

// EachCluster calls fn with every grapheme cluster of the run, the column
// it starts at and its display width, until fn returns false.
func (r Run) EachCluster(fn func(col int, cluster string, width int) bool) {
	eachCluster(r.text, func(c cluster) bool {
		return fn(c.col, r.text[c.start:c.end], c.width)
	})
}

func (r Run) clamp(a, b int) (int, int) {
	if a < 0 {
		a = 0
	}
	if b > r.width {
		b = r.width
	}
	return a, b
}

// cluster is one grapheme cluster of a run: its byte range in the text and
// the columns it occupies.
type cluster struct {
	start, end int
	col, width int
}

func (c cluster) overlaps(a, b int) bool {
	if c.width == 0 {
		return a <= c.col && c.col < b
	}
	return c.col < b && c.col+c.width > a
}

// eachCluster calls fn for every grapheme cluster of s in order until fn
// returns false.
func eachCluster(s string, fn func(c cluster) bool) {
	g := uniseg.NewGraphemes(s)
	col := 0
	for g.Next() {
		start, end := g.Positions()
		w := ClusterWidth(s[start:end])
		if !fn(cluster{start: start, end: end, col: col, width: w}) {
			return
		}
		col += w
	}
}
