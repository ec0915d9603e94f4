package ribbon

import (
	"fmt"
	"image"

	"input-selector/internal/ring"
	"input-selector/internal/types"
)

// Margin is the number of blank columns on each side of a logo.
const Margin = 2

// MaxAbbrev is the longest label the uptime view can show: eight 5-column
// glyphs fill its 40-column line.
const MaxAbbrev = 8

// Entry is one slot of the build-time input catalog. Slots without a logo
// are wired on the bus but have no place on the ribbon.
type Entry struct {
	Logo    image.Image
	Address uint8
	Label   string
	Key     int
}

// Stitch lays the catalog's logos out left to right and packs the result
// into ribbon columns. A pixel is lit when its red channel is saturated.
func Stitch(entries []Entry) (*Ribbon, error) {
	var inputs []Input
	seen := make(map[int]bool)
	total := 0
	for i, e := range entries {
		if e.Logo == nil {
			continue
		}
		b := e.Logo.Bounds()
		if b.Dy() != Height {
			return nil, fmt.Errorf("entry %d (%s): logo is %d px tall, want %d", i, e.Label, b.Dy(), Height)
		}
		if len(e.Label) > MaxAbbrev {
			return nil, fmt.Errorf("entry %d: label %q longer than %d characters", i, e.Label, MaxAbbrev)
		}
		if e.Address == types.AddressEmpty {
			return nil, fmt.Errorf("entry %d (%s): address 0 is reserved for empty slots", i, e.Label)
		}
		if e.Key < 0 || seen[e.Key] {
			return nil, fmt.Errorf("entry %d (%s): key %d is negative or already used", i, e.Label, e.Key)
		}
		seen[e.Key] = true

		w := b.Dx()
		in := Input{
			ID:      e.Key,
			Address: e.Address,
			Abbrev:  e.Label,
			Begin:   total,
			Center:  total + w/2,
		}
		total += w + 2*Margin
		in.End = total
		inputs = append(inputs, in)
	}
	if total == 0 {
		return nil, fmt.Errorf("catalog has no logos")
	}

	pixels := make([]byte, total*ColumnBytes)
	x0 := 0
	for _, e := range entries {
		if e.Logo == nil {
			continue
		}
		b := e.Logo.Bounds()
		x0 += Margin
		for x := 0; x < b.Dx(); x++ {
			col := pixels[(x0+x)*ColumnBytes:]
			for y := 0; y < Height; y++ {
				r, _, _, _ := e.Logo.At(b.Min.X+x, b.Min.Y+y).RGBA()
				if r>>8 == 0xff {
					col[y/8] |= 1 << (7 - uint(y%8))
				}
			}
		}
		x0 += b.Dx() + Margin
	}

	return &Ribbon{
		Ring:   ring.New(total),
		Pixels: pixels,
		Inputs: inputs,
	}, nil
}
