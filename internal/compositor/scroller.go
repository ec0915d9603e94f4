package compositor

import "input-selector/internal/nav"

// ScrollDelay is the number of ticks between one pixel row scroll steps.
const ScrollDelay uint16 = 4000

// Scroller tracks the vertical scroll offset of the uptime window.
type Scroller struct {
	Line  int
	Row   int
	lines int
	last  uint16
}

// NewScroller returns a scroller over text with the given number of lines.
func NewScroller(lines int) *Scroller {
	if lines < 1 {
		lines = 1
	}
	return &Scroller{lines: lines}
}

// Reset rewinds to the top of the text and restarts the delay at now.
func (s *Scroller) Reset(now uint16) {
	s.Line, s.Row = 0, 0
	s.last = now
}

// Advance scrolls one pixel row if ScrollDelay ticks have passed and
// reports whether it did.
func (s *Scroller) Advance(now uint16) bool {
	if nav.Elapsed(now, s.last) < ScrollDelay {
		return false
	}
	s.last = now
	s.Row++
	if s.Row >= 8 {
		s.Row = 0
		s.Line++
	}
	if s.Line >= s.lines {
		s.Line = 0
	}
	return true
}
