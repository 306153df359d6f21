// Package dirty provides change tracking for incremental rendering.
// A Delta records the smallest contiguous index interval that changed since
// the owner last repainted. Rows use it over columns and grids over row
// indices.
package dirty

import "fmt"

// Delta is the smallest half-open interval [start, end) covering every index
// changed since the last Reset. The zero value is the empty delta.
//
// Bounds are unexported so a non-empty Delta always satisfies start < end.
type Delta struct {
	start, end int
	changed    bool
}

// Span returns the delta covering [start, end).
// An empty or inverted interval yields the empty delta.
func Span(start, end int) Delta {
	if start >= end {
		return Delta{}
	}
	return Delta{start: start, end: end, changed: true}
}

// Full returns a delta covering [0, n).
func Full(n int) Delta {
	return Span(0, n)
}

// IsEmpty returns true if nothing changed.
func (d Delta) IsEmpty() bool {
	return !d.changed
}

// Add extends the delta to include index i.
func (d *Delta) Add(i int) {
	d.AddRange(i, i+1)
}

// AddRange extends the delta to include [start, end).
// Empty ranges are ignored.
func (d *Delta) AddRange(start, end int) {
	if start >= end {
		return
	}
	if !d.changed {
		*d = Span(start, end)
		return
	}
	if start < d.start {
		d.start = start
	}
	if end > d.end {
		d.end = end
	}
}

// Contains returns true if index i is inside the delta.
func (d Delta) Contains(i int) bool {
	return d.changed && d.start <= i && i < d.end
}

// Overlaps returns true if [start, end) intersects the delta.
func (d Delta) Overlaps(start, end int) bool {
	return d.changed && start < end && start < d.end && d.start < end
}

// Range returns the covered interval. The empty delta yields [0, 0).
func (d Delta) Range() (start, end int) {
	if !d.changed {
		return 0, 0
	}
	return d.start, d.end
}

// Len returns the number of indices covered.
func (d Delta) Len() int {
	return d.end - d.start
}

// Reset empties the delta.
func (d *Delta) Reset() {
	*d = Delta{}
}

// Translate moves the delta's bounds to follow a splice that replaced
// [rs, re) of the underlying sequence with newLen elements.
//
// A bound at or before rs stays put. A bound at or after re moves by the
// length difference. A bound strictly inside the replaced window collapses
// to the near edge of the new window: rs for the start, rs+newLen for the
// end. If both bounds collapse onto the same index the delta becomes empty.
func (d *Delta) Translate(rs, re, newLen int) {
	if !d.changed {
		return
	}
	shift := newLen - (re - rs)
	start := translateBound(d.start, rs, re, shift, rs)
	end := translateBound(d.end, rs, re, shift, rs+newLen)
	*d = Span(start, end)
}

// Splice records a splice of [rs, re) into newLen elements: the existing
// bounds are translated and the new window [rs, rs+newLen) is added, since
// the replacement is itself a change.
func (d *Delta) Splice(rs, re, newLen int) {
	d.Translate(rs, re, newLen)
	d.AddRange(rs, rs+newLen)
}

func translateBound(p, rs, re, shift, inside int) int {
	switch {
	case p <= rs:
		return p
	case p < re:
		return inside
	default:
		return p + shift
	}
}

// String returns a compact representation for debugging and test output.
func (d Delta) String() string {
	if !d.changed {
		return "unchanged"
	}
	return fmt.Sprintf("[%d,%d)", d.start, d.end)
}
