// Package compositor draws the 140x32 display frame: the visible window of
// the ribbon and, while the info input is shown, the scrolling uptime text.
//
// All buffers use the display's bitmap format: column-major, 4 bytes per
// column, MSB at the top.
package compositor

import "input-selector/internal/ribbon"

// Frame geometry.
const (
	Width       = 140
	Height      = ribbon.Height
	ColumnBytes = ribbon.ColumnBytes
	// Center is the frame column the ribbon position is drawn at.
	Center = Width / 2
)

// FrameBuffer is one display frame.
type FrameBuffer struct {
	buf [Width * ColumnBytes]byte
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear turns every pixel off.
func (f *FrameBuffer) Clear() {
	f.buf = [Width * ColumnBytes]byte{}
}

// Bytes returns the frame in wire order. The slice aliases the buffer.
func (f *FrameBuffer) Bytes() []byte {
	return f.buf[:]
}

// Column returns the bytes of frame column x, or nil when x is off screen.
func (f *FrameBuffer) Column(x int) []byte {
	if x < 0 || x >= Width {
		return nil
	}
	return f.buf[x*ColumnBytes : (x+1)*ColumnBytes]
}

// Pixel reports whether the pixel at (x, y) is lit.
func (f *FrameBuffer) Pixel(x, y int) bool {
	col := f.Column(x)
	if col == nil || y < 0 || y >= Height {
		return false
	}
	return col[y/8]&(1<<(7-uint(y%8))) != 0
}
