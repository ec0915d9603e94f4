package hardware

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"input-selector/internal/encoder"
	"input-selector/internal/logger"
)

const consumer = "input-selector"

// Rotator receives decoded encoder detents.
type Rotator interface {
	Rotate(dir encoder.Direction)
}

// Encoder watches the two quadrature lines of the rotary encoder.
type Encoder struct {
	mu      sync.Mutex
	dec     *encoder.Decoder
	state   uint8
	offsetA int
	offsetB int
	target  Rotator
	lines   *gpiocdev.Lines
	logger  *logger.Logger
}

// OpenEncoder requests lines a and b on chip with pull-ups and edge
// detection on both edges. Decoded detents go to target from the gpiocdev
// event goroutine.
func OpenEncoder(chip string, a, b int, target Rotator, l *logger.Logger) (*Encoder, error) {
	e := newEncoder(a, b, target, l)
	lines, err := gpiocdev.RequestLines(chip, []int{a, b},
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(e.handleEvent),
		gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("request encoder lines %d,%d on %s: %w", a, b, chip, err)
	}
	e.lines = lines

	vals := make([]int, 2)
	if err := lines.Values(vals); err != nil {
		lines.Close()
		return nil, fmt.Errorf("read encoder lines: %w", err)
	}
	e.mu.Lock()
	e.state = uint8(vals[0]&1) | uint8(vals[1]&1)<<1
	e.dec.Rearm(e.state)
	e.mu.Unlock()

	l.Infof("Configured encoder: chip=%s a=%d b=%d state=%02b", chip, a, b, e.state)
	return e, nil
}

func newEncoder(a, b int, target Rotator, l *logger.Logger) *Encoder {
	return &Encoder{
		dec:     encoder.NewDecoder(0),
		offsetA: a,
		offsetB: b,
		target:  target,
		logger:  l,
	}
}

func (e *Encoder) handleEvent(evt gpiocdev.LineEvent) {
	var line encoder.Line
	switch evt.Offset {
	case e.offsetA:
		line = encoder.LineA
	case e.offsetB:
		line = encoder.LineB
	default:
		return
	}
	edge := encoder.Falling
	if evt.Type == gpiocdev.LineEventRisingEdge {
		edge = encoder.Rising
	}
	e.edge(line, edge)
}

// edge tracks the line state from the edge itself and feeds the decoder.
func (e *Encoder) edge(line encoder.Line, edge encoder.Edge) {
	mask := uint8(1) << uint(line)
	e.mu.Lock()
	if edge == encoder.Rising {
		e.state |= mask
	} else {
		e.state &^= mask
	}
	dir := e.dec.Edge(line, edge, e.state)
	e.mu.Unlock()

	if dir != encoder.None {
		e.logger.Debugf("Detent %d", dir)
		e.target.Rotate(dir)
	}
}

func (e *Encoder) Close() error {
	if e.lines == nil {
		return nil
	}
	return e.lines.Close()
}
