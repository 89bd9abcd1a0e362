package platter

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// frameStats holds counters reported in debug mode.
type frameStats struct {
	frames uint64
	drawn  int
}

// debugReportEvery is how many frames pass between debug summaries.
const debugReportEvery = 120

// SetDebugMode enables or disables debug mode. When enabled the logger drops
// to debug level, drag invariants are checked every frame and a summary is
// logged periodically.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
		s.root.Walk(func(e *Element) bool {
			s.debugCheckTreeDepth(e)
			return true
		})
	} else {
		s.logger.SetLevel(log.WarnLevel)
	}
}

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// debugReport logs a frame summary every debugReportEvery frames.
func (s *Scene) debugReport() {
	if !s.debug || s.stats.frames%debugReportEvery != 0 {
		return
	}
	s.logger.Debug("frame",
		"n", s.stats.frames,
		"drawn", s.stats.drawn,
		"scrollY", fmt.Sprintf("%.1f", s.viewport.ScrollY),
		"dragging", s.drag.ActiveCount(),
		"settling", s.drag.Settling(),
		"callbacks", s.frames.Pending(),
		"z", s.arbiter.Highest(),
	)
}

// debugCheckTreeDepth warns when an element sits deeper than is plausible for
// a page layout.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.logger.Warn("tree depth", "element", e.Name, "depth", depth, "max", debugMaxTreeDepth)
	}
}
