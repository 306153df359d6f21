package backend

import (
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/text"
)

// placement is one cluster of a run positioned on a device.
type placement struct {
	x       int
	cluster string
	width   int
}

// place returns the clusters of run that fit entirely on a width x height
// device when the run starts at pos. Zero-width clusters are dropped.
func place(pos core.Pos, run text.Run, width, height int) []placement {
	if pos.Y < 0 || pos.Y >= height {
		return nil
	}
	var out []placement
	run.EachCluster(func(col int, cluster string, w int) bool {
		x := pos.X + col
		if x >= width {
			return false
		}
		if w == 0 || x < 0 || x+w > width {
			return true
		}
		out = append(out, placement{x: x, cluster: cluster, width: w})
		return true
	})
	return out
}
