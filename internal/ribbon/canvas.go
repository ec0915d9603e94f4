package ribbon

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Canvas)(nil)

// Canvas is a monochrome drawing surface used to produce logos. It can be
// drawn on by tinygo display code and read back as an image.
type Canvas struct {
	w, h int
	pix  []bool
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{w: w, h: h, pix: make([]bool, w*h)}
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.w), int16(c.h)
}

// SetPixel lights the pixel for any color with a non-zero red channel.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || int(x) >= c.w || int(y) >= c.h {
		return
	}
	c.pix[int(y)*c.w+int(x)] = col.R != 0
}

func (c *Canvas) Display() error {
	return nil
}

func (c *Canvas) ColorModel() color.Model {
	return color.GrayModel
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

func (c *Canvas) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || !c.pix[y*c.w+x] {
		return color.Gray{}
	}
	return color.Gray{Y: 0xff}
}

// Frame draws a one pixel rectangle around the canvas edge.
func (c *Canvas) Frame(col color.RGBA) {
	for x := 0; x < c.w; x++ {
		c.SetPixel(int16(x), 0, col)
		c.SetPixel(int16(x), int16(c.h-1), col)
	}
	for y := 0; y < c.h; y++ {
		c.SetPixel(0, int16(y), col)
		c.SetPixel(int16(c.w-1), int16(y), col)
	}
}
