package ribbon

import (
	"input-selector/internal/ring"
	"input-selector/internal/types"
)

// Height of the ribbon in pixels and in packed bytes per column.
const (
	Height      = 32
	ColumnBytes = Height / 8
)

// Input describes one logo on the ribbon. Begin, End and Center are ribbon
// columns; End is the first column after the logo's margin.
type Input struct {
	ID      int
	Address uint8
	Abbrev  string
	Begin   int
	End     int
	Center  int
}

// IsInfo reports whether the input is the uptime pseudo-input.
func (in Input) IsInfo() bool {
	return in.Address == types.AddressInfo
}

// Physical reports whether the input selects a real device on the bus.
func (in Input) Physical() bool {
	return in.Address != types.AddressEmpty && !in.IsInfo()
}

// Ribbon is the circular strip of logos. Pixels holds ColumnBytes bytes per
// column, column-major, MSB at the top.
type Ribbon struct {
	Ring   ring.Ring
	Pixels []byte
	Inputs []Input
}

func (r *Ribbon) Width() int {
	return r.Ring.Width
}

// Column returns the packed pixel bytes of ribbon column x (wrapped).
func (r *Ribbon) Column(x int) []byte {
	x = r.Ring.Wrap(x)
	return r.Pixels[x*ColumnBytes : (x+1)*ColumnBytes]
}

// Nearest returns the index of the first input with a bus address whose
// [Begin, End] range contains pos.
func (r *Ribbon) Nearest(pos int) (int, bool) {
	for i, in := range r.Inputs {
		if in.Address == types.AddressEmpty {
			continue
		}
		if r.Ring.Contains(pos, in.Begin, in.End) {
			return i, true
		}
	}
	return -1, false
}

// TableSize is the number of uptime counters needed to index every input ID.
func (r *Ribbon) TableSize() int {
	n := 0
	for _, in := range r.Inputs {
		if in.ID+1 > n {
			n = in.ID + 1
		}
	}
	return n
}

// Info returns the index of the info pseudo-input.
func (r *Ribbon) Info() (int, bool) {
	for i, in := range r.Inputs {
		if in.IsInfo() {
			return i, true
		}
	}
	return -1, false
}
