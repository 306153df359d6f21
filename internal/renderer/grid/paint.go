package grid

import "github.com/dshills/termrect/internal/renderer/core"

// Painter is anything that can paint itself into a Sink.
type Painter interface {
	Size() (width, height int)
	DrawFull(s Sink, pos core.Pos)
}

// DeltaPainter is a Painter that can repaint only what changed since its
// last delta paint.
type DeltaPainter interface {
	Painter
	DrawDelta(s Sink, pos core.Pos)
}

// ChangeMarker is implemented by painters that track their own changes.
type ChangeMarker interface {
	// MarkAllChanged makes the next DrawDelta repaint everything.
	MarkAllChanged()

	// MarkNoneChanged makes the next DrawDelta paint nothing, for callers
	// that already synchronized the target by other means.
	MarkNoneChanged()
}

// Paintable is the full paint capability of a Row, a Grid, or a widget
// that owns a Grid.
type Paintable interface {
	DeltaPainter
	ChangeMarker
}

// DrawDelta repaints what changed in p. Painters without an incremental
// path are painted in full.
func DrawDelta(p Painter, s Sink, pos core.Pos) {
	if d, ok := p.(DeltaPainter); ok {
		d.DrawDelta(s, pos)
		return
	}
	p.DrawFull(s, pos)
}

// MarkAllChanged forwards to p if it tracks changes.
func MarkAllChanged(p Painter) {
	if m, ok := p.(ChangeMarker); ok {
		m.MarkAllChanged()
	}
}

// MarkNoneChanged forwards to p if it tracks changes.
func MarkNoneChanged(p Painter) {
	if m, ok := p.(ChangeMarker); ok {
		m.MarkNoneChanged()
	}
}

// Owner is implemented by widgets built on top of a Grid.
type Owner interface {
	Surface() *Grid
}

// Forward returns a Paintable that delegates to o's grid, so a widget
// only has to expose its surface to be painted incrementally.
func Forward(o Owner) Paintable {
	return forwarder{owner: o}
}

type forwarder struct {
	owner Owner
}

func (f forwarder) Size() (int, int) {
	return f.owner.Surface().Size()
}

func (f forwarder) DrawFull(s Sink, pos core.Pos) {
	f.owner.Surface().DrawFull(s, pos)
}

func (f forwarder) DrawDelta(s Sink, pos core.Pos) {
	f.owner.Surface().DrawDelta(s, pos)
}

func (f forwarder) MarkAllChanged() {
	f.owner.Surface().MarkAllChanged()
}

func (f forwarder) MarkNoneChanged() {
	f.owner.Surface().MarkNoneChanged()
}
