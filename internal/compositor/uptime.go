package compositor

import (
	"fmt"

	"input-selector/internal/font"
	"input-selector/internal/ribbon"
)

const (
	// LineBytes is the width of one uptime text line in columns.
	LineBytes = 40
	// WindowLines is how many text lines the uptime window shows.
	WindowLines = ColumnBytes
	// padLines blank lines lead the text so the scroll starts empty.
	padLines = 2
	maxChars = LineBytes / font.Width
)

// UptimeText is the pre-rendered uptime raster: two blank lines, then an
// abbreviation line and a time line per input. Each line is 8 pixels tall
// and LineBytes columns wide.
type UptimeText struct {
	pix   []byte
	lines int
}

// Lines is the number of text lines, padding included.
func (t *UptimeText) Lines() int {
	return t.lines
}

// Line returns text line i, wrapping around the end.
func (t *UptimeText) Line(i int) []byte {
	i %= t.lines
	if i < 0 {
		i += t.lines
	}
	return t.pix[i*LineBytes : (i+1)*LineBytes]
}

// FormatUptime renders a duration in seconds as hours and minutes, or as
// days and hours once it reaches 100 hours.
func FormatUptime(seconds uint32) string {
	minutes := seconds / 60
	hours := minutes / 60
	if hours >= 100 {
		return fmt.Sprintf("%2dd%2dh", hours/24, hours%24)
	}
	return fmt.Sprintf("%2dh%2dm", hours, minutes%60)
}

// RenderUptime builds the uptime raster for inputs from the seconds table.
// Inputs whose ID is outside the table show zero.
func RenderUptime(inputs []ribbon.Input, table []uint32) *UptimeText {
	t := &UptimeText{lines: 2*len(inputs) + padLines}
	t.pix = make([]byte, t.lines*LineBytes)
	for i, in := range inputs {
		var secs uint32
		if in.ID >= 0 && in.ID < len(table) {
			secs = table[in.ID]
		}
		font.RenderLine(t.Line(padLines+2*i), in.Abbrev, maxChars)
		font.RenderLine(t.Line(padLines+2*i+1), FormatUptime(secs), maxChars)
	}
	return t
}

// BlitUptime copies a WindowLines tall window of text into the frame,
// starting row pixels into text line line. The window's left edge sits two
// columns right of the selected logo's first column. The window's top and
// bottom pixel rows are left dark as margins.
func BlitUptime(fb *FrameBuffer, text *UptimeText, position, edge0, line, row int) {
	x0 := edge0 - position + Center + 2
	for r := 0; r < WindowLines; r++ {
		cur := text.Line(line + r)
		next := text.Line(line + r + 1)
		for px := 0; px < LineBytes; px++ {
			dst := fb.Column(x0 + px)
			if dst == nil {
				continue
			}
			b := cur[px]
			if row != 0 {
				b = cur[px]<<uint(row) | next[px]>>uint(8-row)
			}
			switch r {
			case 0:
				b &= 0x7f
			case WindowLines - 1:
				b &= 0xfe
			}
			dst[r] = b
		}
	}
}
