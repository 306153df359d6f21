package grid

import (
	"slices"
	"testing"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/dirty"
)

func TestNewGrid(t *testing.T) {
	g := New(4, 3)
	if w, h := g.Size(); w != 4 || h != 3 {
		t.Errorf("Size() = (%d, %d), want (4, 3)", w, h)
	}
	for y := 0; y < 3; y++ {
		if got := g.Line(y); got != "    " {
			t.Errorf("Line(%d) = %q, want blank", y, got)
		}
	}
	if !g.Dirty().IsEmpty() {
		t.Errorf("Dirty() = %v, want unchanged", g.Dirty())
	}

	if w, h := New(-1, -2).Size(); w != 0 || h != 0 {
		t.Errorf("New(-1, -2).Size() = (%d, %d), want (0, 0)", w, h)
	}
}

func TestNewGridWithFill(t *testing.T) {
	g := New(3, 1, WithFill(".", plain))
	if got := g.Line(0); got != "..." {
		t.Errorf("Line(0) = %q, want %q", got, "...")
	}

	g = New(3, 1, WithFill("世", plain))
	if got := g.Line(0); got != "   " {
		t.Errorf("wide fill should be ignored, Line(0) = %q", got)
	}
}

func TestGridSetText(t *testing.T) {
	g := New(10, 3)

	if !g.SetText(2, 1, run("hi")) {
		t.Fatal("SetText(2, 1) = false, want true")
	}
	if g.Dirty() != dirty.Span(1, 2) {
		t.Errorf("Dirty() = %v, want [1,2)", g.Dirty())
	}
	if g.RowDirty(1) != dirty.Span(2, 4) {
		t.Errorf("RowDirty(1) = %v, want [2,4)", g.RowDirty(1))
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"row below", 0, 3},
		{"row above", 0, -1},
		{"column past end", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if g.SetText(tt.x, tt.y, run("z")) {
				t.Errorf("SetText(%d, %d) = true, want false", tt.x, tt.y)
			}
			if g.Dirty() != dirty.Span(1, 2) {
				t.Errorf("Dirty() = %v, want [1,2)", g.Dirty())
			}
		})
	}
}

func TestGridEndToEnd(t *testing.T) {
	g := New(10, 1)
	sink := newRecordSink(10, 1)

	if !g.SetText(1, 0, run("a")) {
		t.Fatal("SetText(1, 0, \"a\") = false")
	}
	if g.Dirty() != dirty.Span(0, 1) {
		t.Errorf("Dirty() = %v, want {0}", g.Dirty())
	}

	g.DrawDelta(sink, core.Pos{})
	want := []call{{core.Pos{X: 1}, "a"}}
	if !slices.Equal(sink.calls, want) {
		t.Errorf("first DrawDelta = %v, want %v", sink.calls, want)
	}

	sink.reset()
	g.DrawDelta(sink, core.Pos{})
	if len(sink.calls) != 0 {
		t.Errorf("DrawDelta with no writes = %v, want nothing", sink.calls)
	}

	g.SetText(0, 0, run("xxx"))
	if got := runTexts(g.Runs(0)); !slices.Equal(got, []string{"xxx", "       "}) {
		t.Errorf("Runs(0) = %q, want [xxx, 7 spaces]", got)
	}

	sink.reset()
	g.DrawDelta(sink, core.Pos{})
	want = []call{{core.Pos{}, "xxx"}}
	if !slices.Equal(sink.calls, want) {
		t.Errorf("DrawDelta after overwrite = %v, want %v", sink.calls, want)
	}
	if !g.Dirty().IsEmpty() || !g.RowDirty(0).IsEmpty() {
		t.Error("DrawDelta should clear grid and row changes")
	}
}

func TestGridDrawFull(t *testing.T) {
	g := New(3, 2)
	g.SetText(1, 1, run("q"))

	sink := newRecordSink(3, 2)
	g.DrawFull(sink, core.Pos{X: 5, Y: 5})
	want := []call{
		{core.Pos{X: 5, Y: 5}, "   "},
		{core.Pos{X: 5, Y: 6}, " "},
		{core.Pos{X: 6, Y: 6}, "q"},
		{core.Pos{X: 7, Y: 6}, " "},
	}
	if !slices.Equal(sink.calls, want) {
		t.Errorf("DrawFull = %v, want %v", sink.calls, want)
	}
}

func TestGridDrawDeltaOffset(t *testing.T) {
	g := New(5, 4)
	g.SetText(0, 1, run("a"))
	g.SetText(4, 3, run("b"))

	sink := newRecordSink(20, 20)
	g.DrawDelta(sink, core.Pos{X: 10, Y: 2})
	want := []call{
		{core.Pos{X: 10, Y: 3}, "a"},
		{core.Pos{X: 14, Y: 5}, "b"},
	}
	if !slices.Equal(sink.calls, want) {
		t.Errorf("DrawDelta = %v, want %v", sink.calls, want)
	}
}

func TestGridMarkAllChanged(t *testing.T) {
	g := New(4, 2)
	g.SetText(0, 0, run("ab"))
	sink := newRecordSink(4, 2)
	g.DrawDelta(sink, core.Pos{})

	g.MarkAllChanged()
	if g.Dirty() != dirty.Full(2) {
		t.Errorf("Dirty() = %v, want [0,2)", g.Dirty())
	}

	full := newRecordSink(4, 2)
	g.DrawFull(full, core.Pos{})
	sink.reset()
	g.DrawDelta(sink, core.Pos{})
	if !slices.Equal(sink.calls, full.calls) {
		t.Errorf("DrawDelta after MarkAllChanged = %v, want %v", sink.calls, full.calls)
	}
}

func TestGridMarkNoneChanged(t *testing.T) {
	g := New(4, 2)
	g.SetText(0, 0, run("ab"))
	g.SetText(1, 1, run("c"))
	g.MarkNoneChanged()

	sink := newRecordSink(4, 2)
	g.DrawDelta(sink, core.Pos{})
	if len(sink.calls) != 0 {
		t.Errorf("DrawDelta after MarkNoneChanged = %v, want nothing", sink.calls)
	}

	g.SetText(3, 1, run("d"))
	g.DrawDelta(sink, core.Pos{})
	want := []call{{core.Pos{X: 3, Y: 1}, "d"}}
	if !slices.Equal(sink.calls, want) {
		t.Errorf("DrawDelta = %v, want %v", sink.calls, want)
	}
}

func TestGridAsSink(t *testing.T) {
	inner := New(3, 2)
	inner.SetText(0, 0, run("abc"))
	inner.SetText(1, 1, run("d"))

	outer := New(6, 3)
	inner.DrawDelta(outer, core.Pos{X: 2, Y: 1})

	if got := outer.Line(1); got != "  abc " {
		t.Errorf("outer.Line(1) = %q, want %q", got, "  abc ")
	}
	if got := outer.Line(2); got != "   d  " {
		t.Errorf("outer.Line(2) = %q, want %q", got, "   d  ")
	}
	if outer.Dirty() != dirty.Span(1, 3) {
		t.Errorf("outer.Dirty() = %v, want [1,3)", outer.Dirty())
	}

	// Painting past the outer edge clips.
	inner.MarkAllChanged()
	inner.DrawDelta(outer, core.Pos{X: 4, Y: 2})
	if got := outer.Line(2); got != "   dab" {
		t.Errorf("outer.Line(2) = %q, want %q", got, "   dab")
	}
}

func TestDrawStrAtAndClearLine(t *testing.T) {
	g := New(6, 2)
	if DrawStrAt(g, core.Pos{X: 1}, plain, "") {
		t.Error("DrawStrAt with empty string = true, want false")
	}
	if !DrawStrAt(g, core.Pos{X: 1}, plain, "hello") {
		t.Fatal("DrawStrAt = false, want true")
	}
	if got := g.Line(0); got != " hello" {
		t.Errorf("Line(0) = %q, want %q", got, " hello")
	}

	bold := plain.Bold()
	if !ClearLine(g, core.Pos{X: 3}, bold) {
		t.Fatal("ClearLine = false, want true")
	}
	if got := g.Line(0); got != " he   " {
		t.Errorf("Line(0) = %q, want %q", got, " he   ")
	}
	runs := g.Runs(0)
	if last := runs[len(runs)-1]; last.Style() != bold || last.Width() != 3 {
		t.Errorf("last run = %q %+v, want 3 bold spaces", last.Text(), last.Style())
	}

	if ClearLine(g, core.Pos{X: 6}, bold) {
		t.Error("ClearLine past the edge = true, want false")
	}
}

func TestGridClear(t *testing.T) {
	g := New(3, 2)
	g.SetText(0, 0, run("abc"))
	g.SetText(0, 1, run("de"))
	g.MarkNoneChanged()

	g.Clear(plain)
	for y := 0; y < 2; y++ {
		if got := g.Line(y); got != "   " {
			t.Errorf("Line(%d) = %q, want blank", y, got)
		}
	}
	if g.Dirty() != dirty.Full(2) {
		t.Errorf("Dirty() = %v, want [0,2)", g.Dirty())
	}
}

func TestGridAccessorsOutOfRange(t *testing.T) {
	g := New(2, 2)
	if g.Runs(5) != nil {
		t.Error("Runs(5) should be nil")
	}
	if g.Line(-1) != "" {
		t.Error("Line(-1) should be empty")
	}
	if !g.RowDirty(9).IsEmpty() {
		t.Error("RowDirty(9) should be empty")
	}
}
