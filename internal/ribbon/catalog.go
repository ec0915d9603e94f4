package ribbon

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"input-selector/internal/types"
)

var white = color.RGBA{255, 255, 255, 255}

// Slot is a build-time input definition. Name is the logo text; an empty
// Name marks a bus address with nothing plugged in.
type Slot struct {
	Name    string
	Address uint8
	Label   string
	Key     int
}

// Inputs wired to the selector. Keys index the uptime table and must never
// change once data has been persisted.
var Inputs = []Slot{
	{"INFO", types.AddressInfo, "UPTIME", 0},
	{"GENESIS", 0x15, "GENESIS", 1},
	{"SFC", 0x14, "SFC", 2},
	{"3DO", 0x13, "3DO", 3},
	{"SATURN", 0x12, "SATURN", 4},
	{"PSX", 0x11, "PSX", 5},
	{"DC", 0x10, "DC", 6},
	{"PS2", 0x0d, "PS2", 7},
	{"GAMECUBE", 0x0c, "GAMECUBE", 8},
	{"", 0x08, "", -1},
	{"", 0x09, "", -1},
	{"VHS", 0x0a, "VHS", 9},
	{"AUX", 0x0b, "AUX", 10},
}

// LabelLogo renders text into a framed logo of ribbon height.
func LabelLogo(text string) image.Image {
	font := &freemono.Regular9pt7b
	_, outbox := tinyfont.LineWidth(font, text)
	c := NewCanvas(int(outbox)+8, Height)
	c.Frame(white)
	tinyfont.WriteLine(c, font, 4, 21, text, white)
	return c
}

// Entries turns slots into stitchable catalog entries using label logos.
func Entries(slots []Slot) []Entry {
	entries := make([]Entry, 0, len(slots))
	for _, s := range slots {
		e := Entry{Address: s.Address, Label: s.Label, Key: s.Key}
		if s.Name != "" {
			e.Logo = LabelLogo(s.Name)
		}
		entries = append(entries, e)
	}
	return entries
}

// Default builds the ribbon for the built-in input list.
func Default() (*Ribbon, error) {
	return Stitch(Entries(Inputs))
}
