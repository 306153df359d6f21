package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/grid"
)

// demoScene is the scene shown when no script is configured: a title bar,
// a frame counter and a line of wide and combining characters.
type demoScene struct {
	styles func(name string) (core.Style, bool)
}

func (d demoScene) style(name string) core.Style {
	if style, ok := d.styles(name); ok {
		return style
	}
	return core.DefaultStyle()
}

func (d demoScene) Frame(g *grid.Grid, n int) error {
	width, height := g.Size()
	if n == 0 {
		title := d.style("title").Reverse()
		grid.ClearLine(g, core.Pos{}, title)
		grid.DrawStrAt(g, core.Pos{X: 1}, title, "termrect")
		if height > 2 {
			grid.DrawStrAt(g, core.Pos{X: 1, Y: 2}, d.style("normal"), "wide: 世界 combining: e\u0301")
		}
	}

	counter := fmt.Sprintf("frame %d", n)
	grid.DrawStrAt(g, core.Pos{X: width - len(counter) - 1}, d.style("title").Reverse(), counter)
	if height > 1 {
		spinner := `|/-\`
		grid.DrawStrAt(g, core.Pos{X: 1, Y: 1}, d.style("muted"), string(spinner[n%len(spinner)]))
	}
	return nil
}

// printGrid writes the text of g without trailing blanks.
func printGrid(w io.Writer, g *grid.Grid) {
	_, height := g.Size()
	lines := make([]string, height)
	last := -1
	for y := range lines {
		lines[y] = strings.TrimRight(g.Line(y), " ")
		if lines[y] != "" {
			last = y
		}
	}
	for _, line := range lines[:last+1] {
		fmt.Fprintln(w, line)
	}
}
