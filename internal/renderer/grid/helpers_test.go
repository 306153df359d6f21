package grid

import (
	"github.com/dshills/termrect/internal/renderer/core"
	"github.com/dshills/termrect/internal/renderer/text"
)

// call is one DrawTextAt received by a recordSink.
type call struct {
	pos  core.Pos
	text string
}

// recordSink logs every paint call.
type recordSink struct {
	width, height int
	calls         []call
}

func newRecordSink(width, height int) *recordSink {
	return &recordSink{width: width, height: height}
}

func (s *recordSink) Size() (int, int) { return s.width, s.height }

func (s *recordSink) DrawTextAt(pos core.Pos, run text.Run) bool {
	s.calls = append(s.calls, call{pos: pos, text: run.Text()})
	return true
}

func (s *recordSink) reset() { s.calls = nil }

func runTexts(runs []text.Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.Text()
	}
	return out
}

func sumWidths(runs []text.Run) int {
	w := 0
	for _, r := range runs {
		w += r.Width()
	}
	return w
}
