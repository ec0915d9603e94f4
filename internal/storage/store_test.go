package storage

import (
	"errors"
	"reflect"
	"testing"
)

// flakyDevice loses power after a number of writes: later writes fail until
// it is rebooted.
type flakyDevice struct {
	*Memory
	budget int
	writes int
	off    bool
}

var errPowerLoss = errors.New("power lost")

func (d *flakyDevice) WriteAt(p []byte, off int64) (int, error) {
	if d.off {
		return 0, errPowerLoss
	}
	if d.budget > 0 && d.writes >= d.budget {
		d.off = true
		return 0, errPowerLoss
	}
	d.writes++
	return d.Memory.WriteAt(p, off)
}

func (d *flakyDevice) reboot() {
	d.off = false
	d.budget = 0
}

// countingLocker records how often it was taken.
type countingLocker struct {
	locks, unlocks int
	held           bool
}

func (l *countingLocker) Lock()   { l.locks++; l.held = true }
func (l *countingLocker) Unlock() { l.unlocks++; l.held = false }

func newStore(t *testing.T, dev Device, opts ...Option) *Store {
	t.Helper()
	s, err := New(dev, 4, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNewRejectsOversizedTable(t *testing.T) {
	if _, err := New(NewMemory(Size), BankSize/4+1); err == nil {
		t.Error("expected error for a table larger than a bank")
	}
	if _, err := New(NewMemory(Size), 0); err == nil {
		t.Error("expected error for an empty table")
	}
}

func TestLoadUptimeFreshDevice(t *testing.T) {
	s := newStore(t, NewMemory(Size))
	table, err := s.LoadUptime()
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("LoadUptime on erased memory: table=%v err=%v, want ErrNoData", table, err)
	}
}

func TestSaveThenLoadUptime(t *testing.T) {
	s := newStore(t, NewMemory(Size))
	want := []uint32{3661, 60, 0, 1 << 30}
	if err := s.SaveUptime(want); err != nil {
		t.Fatalf("SaveUptime failed: %v", err)
	}
	got, err := s.LoadUptime()
	if err != nil {
		t.Fatalf("LoadUptime failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadUptime = %v, want %v", got, want)
	}
	for i := 0; i < 2; i++ {
		rec, err := s.ReadBank(i)
		if err != nil || !rec.Valid || !reflect.DeepEqual(rec.Table, want) {
			t.Errorf("bank %d = %+v, %v", i, rec, err)
		}
	}
}

func TestSaveUptimeWrongSize(t *testing.T) {
	s := newStore(t, NewMemory(Size))
	if err := s.SaveUptime([]uint32{1, 2}); err == nil {
		t.Error("expected error for short table")
	}
}

func TestInterruptedBank0WriteKeepsBank1(t *testing.T) {
	dev := &flakyDevice{Memory: NewMemory(Size)}
	s := newStore(t, dev)
	old := []uint32{100, 200, 300, 400}
	if err := s.SaveUptime(old); err != nil {
		t.Fatalf("SaveUptime failed: %v", err)
	}

	// Power fails after bank 0's flag is cleared and part of its data written.
	dev.writes = 0
	dev.budget = 2
	if err := s.SaveUptime([]uint32{101, 201, 301, 401}); !errors.Is(err, errPowerLoss) {
		t.Fatalf("SaveUptime err = %v, want power loss", err)
	}
	dev.reboot()

	if rec, _ := s.ReadBank(0); rec.Valid {
		t.Fatal("bank 0 is valid after an interrupted write")
	}
	got, err := s.LoadUptime()
	if err != nil {
		t.Fatalf("LoadUptime failed: %v", err)
	}
	if !reflect.DeepEqual(got, old) {
		t.Errorf("LoadUptime = %v, want bank 1 contents %v", got, old)
	}

	// Bank 0 was repaired from bank 1.
	rec, err := s.ReadBank(0)
	if err != nil || !rec.Valid || !reflect.DeepEqual(rec.Table, old) {
		t.Errorf("bank 0 after repair = %+v, %v", rec, err)
	}
}

func TestInterruptedBank1WriteKeepsBank0(t *testing.T) {
	dev := &flakyDevice{Memory: NewMemory(Size)}
	s := newStore(t, dev)
	if err := s.SaveUptime([]uint32{1, 1, 1, 1}); err != nil {
		t.Fatalf("SaveUptime failed: %v", err)
	}

	// Enough budget to finish bank 0 (flag, four single byte data runs,
	// flag) and clear bank 1's flag.
	dev.writes = 0
	dev.budget = 7
	newer := []uint32{2, 2, 2, 2}
	if err := s.SaveUptime(newer); !errors.Is(err, errPowerLoss) {
		t.Fatalf("SaveUptime err = %v, want power loss", err)
	}
	dev.reboot()

	got, err := s.LoadUptime()
	if err != nil {
		t.Fatalf("LoadUptime failed: %v", err)
	}
	if !reflect.DeepEqual(got, newer) {
		t.Errorf("LoadUptime = %v, want %v", got, newer)
	}
	rec, _ := s.ReadBank(1)
	if !rec.Valid || !reflect.DeepEqual(rec.Table, newer) {
		t.Errorf("bank 1 not repaired: %+v", rec)
	}
}

func TestLoadUptimeFallsBackToBank1(t *testing.T) {
	mem := NewMemory(Size)
	s := newStore(t, mem)
	want := []uint32{9, 8, 7, 6}
	if err := s.SaveUptime(want); err != nil {
		t.Fatalf("SaveUptime failed: %v", err)
	}
	// Corrupt bank 0's flag directly.
	if _, err := mem.WriteAt([]byte{0}, Bank0FlagAddr); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadUptime()
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Errorf("LoadUptime = %v, %v; want %v", got, err, want)
	}
}

func TestGuardHeldDuringUptimeAccess(t *testing.T) {
	l := &countingLocker{}
	s := newStore(t, NewMemory(Size), WithGuard(l))
	if err := s.SaveUptime([]uint32{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadUptime(); err != nil {
		t.Fatal(err)
	}
	if l.locks != 2 || l.unlocks != 2 || l.held {
		t.Errorf("locks=%d unlocks=%d held=%v, want 2/2/false", l.locks, l.unlocks, l.held)
	}
}

func TestSaveUptimeOnlyWritesChanges(t *testing.T) {
	dev := &flakyDevice{Memory: NewMemory(Size)}
	s := newStore(t, dev)
	table := []uint32{1, 2, 3, 4}
	if err := s.SaveUptime(table); err != nil {
		t.Fatal(err)
	}
	dev.writes = 0
	if err := s.SaveUptime(table); err != nil {
		t.Fatal(err)
	}
	// Each bank still toggles its flag: clear and set.
	if dev.writes != 4 {
		t.Errorf("rewriting identical table took %d writes, want 4", dev.writes)
	}
}

func TestPosition(t *testing.T) {
	s := newStore(t, NewMemory(Size))

	pos, corrupt, err := s.LoadPosition(5200)
	if err != nil || pos != 0 || !corrupt {
		t.Errorf("erased position = %d, %v, %v; want 0, corrupt", pos, corrupt, err)
	}

	if err := s.SavePosition(5000); err != nil {
		t.Fatal(err)
	}
	pos, corrupt, err = s.LoadPosition(5200)
	if err != nil || pos != 5000 || corrupt {
		t.Errorf("LoadPosition = %d, %v, %v; want 5000", pos, corrupt, err)
	}

	// Ribbon shrank since the value was stored.
	pos, corrupt, err = s.LoadPosition(4000)
	if err != nil || pos != 0 || !corrupt {
		t.Errorf("out of range position = %d, %v, %v; want 0, corrupt", pos, corrupt, err)
	}
}

func TestReadBankOutOfRange(t *testing.T) {
	s := newStore(t, NewMemory(Size))
	if _, err := s.ReadBank(2); err == nil {
		t.Error("expected error for bank 2")
	}
}

func TestMemoryBounds(t *testing.T) {
	m := NewMemory(4)
	if _, err := m.WriteAt([]byte{1, 2}, 3); err == nil {
		t.Error("expected error writing past the end")
	}
	buf := make([]byte, 2)
	if n, err := m.ReadAt(buf, 3); n != 1 || err == nil {
		t.Errorf("short read = %d, %v", n, err)
	}
}
