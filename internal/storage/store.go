package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrNoData is returned by LoadUptime when neither bank holds a complete
// record. It means "no history", not a failure.
var ErrNoData = errors.New("storage: no valid uptime bank")

// Fixed layout of the persistent memory.
const (
	PositionAddr  int64 = 0x000
	Bank0FlagAddr int64 = 0x002
	Bank1FlagAddr int64 = 0x003
	Bank0DataAddr int64 = 0x100
	Bank1DataAddr int64 = 0x200
	BankSize            = 0x100

	// Size is the smallest device that holds the whole layout.
	Size = Bank1DataAddr + BankSize
)

const (
	flagInvalid byte = 0
	flagValid   byte = 1
)

// Device is the raw byte-addressed persistent memory.
type Device interface {
	io.ReaderAt
	io.WriterAt
}

type bank struct {
	name string
	flag int64
	data int64
}

var banks = [2]bank{
	{"bank0", Bank0FlagAddr, Bank0DataAddr},
	{"bank1", Bank1FlagAddr, Bank1DataAddr},
}

// Record is the content of one bank: either Valid with a table or Invalid.
type Record struct {
	Valid bool
	Table []uint32
}

func Valid(table []uint32) Record { return Record{Valid: true, Table: table} }
func Invalid() Record             { return Record{} }

// Store persists the ribbon position and two redundant copies of the uptime
// table. Each copy is written flag-clear, data, flag-set so an interrupted
// write leaves that copy invalid and the other one intact.
type Store struct {
	dev     Device
	entries int
	guard   sync.Locker
}

type Option func(*Store)

// WithGuard makes uptime saves and loads hold l for their whole duration.
func WithGuard(l sync.Locker) Option {
	return func(s *Store) {
		s.guard = l
	}
}

func New(dev Device, entries int, opts ...Option) (*Store, error) {
	if entries <= 0 || entries*4 > BankSize {
		return nil, fmt.Errorf("storage: %d uptime entries do not fit a %d byte bank", entries, BankSize)
	}
	s := &Store{dev: dev, entries: entries, guard: noGuard{}}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Entries is the number of counters in the uptime table.
func (s *Store) Entries() int {
	return s.entries
}

// SaveUptime writes both banks.
func (s *Store) SaveUptime(table []uint32) error {
	if len(table) != s.entries {
		return fmt.Errorf("storage: table has %d entries, want %d", len(table), s.entries)
	}
	s.guard.Lock()
	defer s.guard.Unlock()

	for _, b := range banks {
		if err := s.writeBank(b, table); err != nil {
			return err
		}
	}
	return nil
}

// LoadUptime returns the first valid bank and repairs the other one if it is
// invalid. ErrNoData means both banks are invalid.
func (s *Store) LoadUptime() ([]uint32, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	var recs [2]Record
	for i, b := range banks {
		rec, err := s.readBank(b)
		if err != nil {
			return nil, err
		}
		recs[i] = rec
	}

	var table []uint32
	switch {
	case recs[0].Valid:
		table = recs[0].Table
	case recs[1].Valid:
		table = recs[1].Table
	default:
		return nil, ErrNoData
	}

	for i, b := range banks {
		if recs[i].Valid {
			continue
		}
		if err := s.writeBank(b, table); err != nil {
			return table, fmt.Errorf("repair %s: %w", b.name, err)
		}
	}
	return table, nil
}

// ReadBank returns the record stored in bank i (0 or 1).
func (s *Store) ReadBank(i int) (Record, error) {
	if i < 0 || i >= len(banks) {
		return Invalid(), fmt.Errorf("storage: no bank %d", i)
	}
	return s.readBank(banks[i])
}

func (s *Store) readBank(b bank) (Record, error) {
	flag := make([]byte, 1)
	if _, err := s.dev.ReadAt(flag, b.flag); err != nil {
		return Invalid(), fmt.Errorf("read %s flag: %w", b.name, err)
	}
	if flag[0] != flagValid {
		return Invalid(), nil
	}
	buf := make([]byte, s.entries*4)
	if _, err := s.dev.ReadAt(buf, b.data); err != nil {
		return Invalid(), fmt.Errorf("read %s data: %w", b.name, err)
	}
	table := make([]uint32, s.entries)
	for i := range table {
		table[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return Valid(table), nil
}

func (s *Store) writeBank(b bank, table []uint32) error {
	buf := make([]byte, len(table)*4)
	for i, v := range table {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	if err := s.update(b.flag, []byte{flagInvalid}); err != nil {
		return fmt.Errorf("clear %s flag: %w", b.name, err)
	}
	if err := s.update(b.data, buf); err != nil {
		return fmt.Errorf("write %s data: %w", b.name, err)
	}
	if err := s.update(b.flag, []byte{flagValid}); err != nil {
		return fmt.Errorf("set %s flag: %w", b.name, err)
	}
	return nil
}

// SavePosition stores the last centered ribbon position.
func (s *Store) SavePosition(pos int) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(int16(pos)))
	if err := s.update(PositionAddr, buf); err != nil {
		return fmt.Errorf("write position: %w", err)
	}
	return nil
}

// LoadPosition returns the stored position. A value outside [0, width) is
// reported as corrupt and replaced by 0.
func (s *Store) LoadPosition(width int) (pos int, corrupt bool, err error) {
	buf := make([]byte, 2)
	if _, err := s.dev.ReadAt(buf, PositionAddr); err != nil {
		return 0, false, fmt.Errorf("read position: %w", err)
	}
	pos = int(int16(binary.LittleEndian.Uint16(buf)))
	if pos < 0 || pos >= width {
		return 0, true, nil
	}
	return pos, false, nil
}

// update writes only the runs of data that differ from what is stored.
func (s *Store) update(addr int64, data []byte) error {
	cur := make([]byte, len(data))
	if _, err := s.dev.ReadAt(cur, addr); err != nil {
		return err
	}
	if bytes.Equal(cur, data) {
		return nil
	}
	for i := 0; i < len(data); {
		if cur[i] == data[i] {
			i++
			continue
		}
		j := i
		for j < len(data) && cur[j] != data[j] {
			j++
		}
		if _, err := s.dev.WriteAt(data[i:j], addr+int64(i)); err != nil {
			return err
		}
		i = j
	}
	return nil
}

type noGuard struct{}

func (noGuard) Lock()   {}
func (noGuard) Unlock() {}
