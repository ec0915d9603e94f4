package core

import "input-selector/internal/types"

// Display is the graphic panel the frames are written to.
type Display interface {
	WriteBitmap(left, top, w, h int, data []byte) error
	SetBrightness(level uint8) error
}

// SelectorBus drives the video multiplexer's address lines.
type SelectorBus interface {
	Latch(addr uint8) error
}

// Clock is the free running 16 bit tick counter.
type Clock interface {
	Ticks() uint16
}

// Store persists the ribbon position and the uptime table.
type Store interface {
	SaveUptime(table []uint32) error
	LoadUptime() ([]uint32, error)
	SavePosition(pos int) error
	LoadPosition(width int) (pos int, corrupt bool, err error)
}

// StatusPublisher mirrors the selector state to other processes. It must
// not block.
type StatusPublisher interface {
	PublishStatus(s types.Status)
	PublishUptime(u []types.Uptime)
}
