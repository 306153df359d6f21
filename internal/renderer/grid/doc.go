// Package grid provides an in-memory model of a rectangle of styled terminal
// cells with incremental redraw.
//
// A Grid is a stack of Rows. Each Row is a gap-free list of text runs that
// exactly spans its width. Writes splice the run list and record which
// columns changed; the Grid records which rows changed. DrawDelta repaints
// only the changed runs of the changed rows into a Sink and then forgets
// the changes.
//
// Grids are owned by a single render loop. They do no locking; producers on
// other goroutines must serialize writes before calling SetText or DrawDelta.
//
// Usage:
//
//	g := grid.New(80, 24)
//	grid.DrawStrAt(g, core.Pos{X: 2, Y: 1}, style, "hello")
//	g.DrawDelta(sink, core.Pos{})
package grid
