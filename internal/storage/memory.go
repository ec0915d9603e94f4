package storage

import (
	"fmt"
	"io"
	"sync"
)

// Memory is a volatile Device. Fresh memory reads as 0xff like an erased
// EEPROM.
type Memory struct {
	mu  sync.Mutex
	buf []byte
}

func NewMemory(size int64) *Memory {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0xff
	}
	return &Memory{buf: buf}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, fmt.Errorf("write of %d bytes at %#x beyond %d byte memory", len(p), off, len(m.buf))
	}
	return copy(m.buf[off:], p), nil
}
