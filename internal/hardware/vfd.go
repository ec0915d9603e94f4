package hardware

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"input-selector/internal/logger"
)

// VFD command bytes.
var (
	vfdInit       = []byte{0x1b, 0x40}
	vfdBitImage   = []byte{0x1f, 0x28, 0x64, 0x21}
	vfdBrightness = []byte{0x1f, 0x58}
)

// vfdRealTime is the fixed "display information" byte of a bit image write.
const vfdRealTime = 0x01

// VFD drives a graphic vacuum fluorescent display over a serial link.
type VFD struct {
	mu     sync.Mutex
	port   io.WriteCloser
	logger *logger.Logger
}

// OpenVFD opens the display's serial port.
func OpenVFD(port string, baud int, l *logger.Logger) (*VFD, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open display port %s: %w", port, err)
	}
	l.Infof("Opened display on %s at %d baud", port, baud)
	return NewVFD(p, l), nil
}

// NewVFD drives a display attached to w.
func NewVFD(w io.WriteCloser, l *logger.Logger) *VFD {
	return &VFD{port: w, logger: l}
}

// Init resets the display to its power-on settings.
func (v *VFD) Init() error {
	return v.write(vfdInit)
}

// WriteBitmap sends a column-major bit image of w x h pixels to (left, top).
// h must be a multiple of 8.
func (v *VFD) WriteBitmap(left, top, w, h int, data []byte) error {
	if h%8 != 0 {
		return fmt.Errorf("bitmap height %d is not a multiple of 8", h)
	}
	if n := w * h / 8; len(data) != n {
		return fmt.Errorf("bitmap is %d bytes, want %d for %dx%d", len(data), n, w, h)
	}
	var b bytes.Buffer
	b.Grow(len(vfdBitImage) + 9 + len(data))
	b.Write(vfdBitImage)
	for _, n := range []int{left, top, w, h} {
		b.WriteByte(byte(n))
		b.WriteByte(byte(n >> 8))
	}
	b.WriteByte(vfdRealTime)
	b.Write(data)
	return v.write(b.Bytes())
}

// SetBrightness sets the luminance level.
func (v *VFD) SetBrightness(level uint8) error {
	return v.write(append(append([]byte(nil), vfdBrightness...), level))
}

func (v *VFD) write(p []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := v.port.Write(p); err != nil {
		return fmt.Errorf("display write: %w", err)
	}
	return nil
}

func (v *VFD) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.port.Close()
}
