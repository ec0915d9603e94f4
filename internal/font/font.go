// Package font holds the 5 column glyphs used by the uptime view. Each column
// is one byte of 8 vertical pixels, MSB at the top, matching the display's
// bitmap format.
package font

import "math/bits"

// Width of a glyph in columns.
const Width = 5

// Glyph order: 0-9, A-Z, then d, h, m.
var glyphs = func() [39][Width]byte {
	// Drawn LSB-top; flipped once at startup.
	src := [39][Width]byte{
		{0x3e, 0x51, 0x49, 0x45, 0x3e}, // 0
		{0x00, 0x42, 0x7f, 0x40, 0x00}, // 1
		{0x42, 0x61, 0x51, 0x49, 0x46}, // 2
		{0x21, 0x41, 0x45, 0x4b, 0x31}, // 3
		{0x18, 0x14, 0x12, 0x7f, 0x10}, // 4
		{0x27, 0x45, 0x45, 0x45, 0x39}, // 5
		{0x3c, 0x4a, 0x49, 0x49, 0x30}, // 6
		{0x01, 0x71, 0x09, 0x05, 0x03}, // 7
		{0x36, 0x49, 0x49, 0x49, 0x36}, // 8
		{0x06, 0x49, 0x49, 0x29, 0x1e}, // 9
		{0x7e, 0x11, 0x11, 0x11, 0x7e}, // A
		{0x7f, 0x49, 0x49, 0x49, 0x36}, // B
		{0x3e, 0x41, 0x41, 0x41, 0x22}, // C
		{0x7f, 0x41, 0x41, 0x22, 0x1c}, // D
		{0x7f, 0x49, 0x49, 0x49, 0x41}, // E
		{0x7f, 0x09, 0x09, 0x01, 0x01}, // F
		{0x3e, 0x41, 0x41, 0x51, 0x32}, // G
		{0x7f, 0x08, 0x08, 0x08, 0x7f}, // H
		{0x00, 0x41, 0x7f, 0x41, 0x00}, // I
		{0x20, 0x40, 0x41, 0x3f, 0x01}, // J
		{0x7f, 0x08, 0x14, 0x22, 0x41}, // K
		{0x7f, 0x40, 0x40, 0x40, 0x40}, // L
		{0x7f, 0x02, 0x04, 0x02, 0x7f}, // M
		{0x7f, 0x04, 0x08, 0x10, 0x7f}, // N
		{0x3e, 0x41, 0x41, 0x41, 0x3e}, // O
		{0x7f, 0x09, 0x09, 0x09, 0x06}, // P
		{0x3e, 0x41, 0x51, 0x21, 0x5e}, // Q
		{0x7f, 0x09, 0x19, 0x29, 0x46}, // R
		{0x46, 0x49, 0x49, 0x49, 0x31}, // S
		{0x01, 0x01, 0x7f, 0x01, 0x01}, // T
		{0x3f, 0x40, 0x40, 0x40, 0x3f}, // U
		{0x1f, 0x20, 0x40, 0x20, 0x1f}, // V
		{0x7f, 0x20, 0x18, 0x20, 0x7f}, // W
		{0x63, 0x14, 0x08, 0x14, 0x63}, // X
		{0x03, 0x04, 0x78, 0x04, 0x03}, // Y
		{0x61, 0x51, 0x49, 0x45, 0x43}, // Z
		{0x38, 0x44, 0x44, 0x48, 0x7f}, // d
		{0x7f, 0x08, 0x04, 0x04, 0x78}, // h
		{0x7c, 0x04, 0x18, 0x04, 0x78}, // m
	}
	for i := range src {
		for j := range src[i] {
			src[i][j] = bits.Reverse8(src[i][j])
		}
	}
	return src
}()

// Glyph returns the columns for r. Characters outside 0-9, A-Z, d, h and m
// have no glyph and render blank.
func Glyph(r byte) ([Width]byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return glyphs[r-'0'], true
	case r >= 'A' && r <= 'Z':
		return glyphs[r-'A'+10], true
	case r == 'd':
		return glyphs[36], true
	case r == 'h':
		return glyphs[37], true
	case r == 'm':
		return glyphs[38], true
	}
	return [Width]byte{}, false
}

// RenderLine draws up to maxChars characters of s into dst, Width columns
// per character. Columns for characters without a glyph are left untouched.
func RenderLine(dst []byte, s string, maxChars int) {
	for c := 0; c < len(s) && c < maxChars; c++ {
		g, ok := Glyph(s[c])
		if !ok {
			continue
		}
		off := c * Width
		if off+Width > len(dst) {
			return
		}
		copy(dst[off:off+Width], g[:])
	}
}
