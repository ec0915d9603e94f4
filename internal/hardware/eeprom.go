package hardware

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// EEPROM is a byte-addressed persistent memory exposed as a file, such as
// an nvmem sysfs node. Every write is flushed before it returns.
type EEPROM struct {
	fd   int
	path string
}

func OpenEEPROM(path string) (*EEPROM, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open eeprom %s: %w", path, err)
	}
	return &EEPROM{fd: fd, path: path}, nil
}

func (e *EEPROM) ReadAt(p []byte, off int64) (int, error) {
	n := 0
	for n < len(p) {
		m, err := unix.Pread(e.fd, p[n:], off+int64(n))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return n, fmt.Errorf("read %s at %#x: %w", e.path, off+int64(n), err)
		}
		if m == 0 {
			return n, io.EOF
		}
		n += m
	}
	return n, nil
}

func (e *EEPROM) WriteAt(p []byte, off int64) (int, error) {
	n := 0
	for n < len(p) {
		m, err := unix.Pwrite(e.fd, p[n:], off+int64(n))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return n, fmt.Errorf("write %s at %#x: %w", e.path, off+int64(n), err)
		}
		if m == 0 {
			return n, io.ErrShortWrite
		}
		n += m
	}
	if err := unix.Fdatasync(e.fd); err != nil {
		return n, fmt.Errorf("sync %s: %w", e.path, err)
	}
	return n, nil
}

func (e *EEPROM) Close() error {
	return unix.Close(e.fd)
}
