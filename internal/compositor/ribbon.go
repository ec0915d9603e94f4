package compositor

import "input-selector/internal/ribbon"

// Span is the ribbon column range [Begin, End) of the selected input.
// A zero Span selects nothing.
type Span struct {
	Begin, End int
	Valid      bool
}

// SpanOf returns the span covered by in.
func SpanOf(in ribbon.Input) Span {
	return Span{Begin: in.Begin, End: in.End, Valid: true}
}

func (s Span) contains(x int) bool {
	return s.Valid && x >= s.Begin && x < s.End
}

// BlitRibbon draws the ribbon window centered on position. The selected
// span keeps its original polarity with rounded corners; the rest of the
// ribbon is drawn inverted, or left dark when blank is set.
func BlitRibbon(fb *FrameBuffer, r *ribbon.Ribbon, position int, span Span, blank bool) {
	for px := 0; px < Width; px++ {
		rx := r.Ring.Wrap(position - Center + px)
		src := r.Column(rx)
		dst := fb.Column(px)

		switch {
		case span.contains(rx):
			copy(dst, src)
			if !blank && (rx == span.Begin || rx == span.End-1) {
				dst[0] |= 0x80
				dst[ColumnBytes-1] |= 0x01
			}
		case blank:
			for i := range dst {
				dst[i] = 0
			}
		default:
			for i := range dst {
				dst[i] = ^src[i]
			}
		}
	}
}
