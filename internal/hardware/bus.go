package hardware

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"input-selector/internal/logger"
	"input-selector/internal/types"
)

// lineWriter is the part of a gpiocdev line request the bus uses.
type lineWriter interface {
	SetValues(values []int) error
	Close() error
}

// SelectorBus drives the video multiplexer's address lines.
type SelectorBus struct {
	mu      sync.Mutex
	lines   lineWriter
	width   int
	current uint8
	logger  *logger.Logger
}

// OpenSelectorBus requests offsets on chip as outputs, least significant
// address bit first, and parks the bus on the unused address.
func OpenSelectorBus(chip string, offsets []int, l *logger.Logger) (*SelectorBus, error) {
	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(addressBits(types.AddressUnused, len(offsets))...),
		gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("request bus lines %v on %s: %w", offsets, chip, err)
	}
	l.Infof("Configured selector bus: chip=%s lines=%v", chip, offsets)
	return newSelectorBus(lines, len(offsets), l), nil
}

func newSelectorBus(lines lineWriter, width int, l *logger.Logger) *SelectorBus {
	return &SelectorBus{
		lines:   lines,
		width:   width,
		current: types.AddressUnused,
		logger:  l,
	}
}

// Latch puts addr on the bus. Repeating the current address is a no-op.
func (b *SelectorBus) Latch(addr uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if addr == b.current {
		return nil
	}
	if err := b.lines.SetValues(addressBits(addr, b.width)); err != nil {
		return fmt.Errorf("latch address %#02x: %w", addr, err)
	}
	b.logger.Debugf("Latched address %#02x", addr)
	b.current = addr
	return nil
}

func (b *SelectorBus) Close() error {
	return b.lines.Close()
}

// addressBits splits addr into width line values, LSB first.
func addressBits(addr uint8, width int) []int {
	v := make([]int, width)
	for i := range v {
		v[i] = int(addr>>uint(i)) & 1
	}
	return v
}
