// Package shared owns the state that crosses between the event sources
// (encoder edges, the one second timer) and the main loop. Every access goes
// through one guard; holding it is the equivalent of masking interrupts.
package shared

import (
	"sync"

	"input-selector/internal/encoder"
	"input-selector/internal/nav"
	"input-selector/internal/ribbon"
	"input-selector/internal/types"
)

const secondsPerMinute = 60

// State is everything the event handlers and the main loop share.
type State struct {
	Nav       nav.State
	UI        types.UIState
	LastTicks uint16 // tick of the last UI transition

	// Current is the ribbon input nearest to the position, -1 for none.
	Current int

	// Uptimes holds accumulated seconds per input ID; index 0 is the total.
	Uptimes []uint32
	// DwellMinutes counts minutes spent centered on the same input.
	DwellMinutes int
	Dirty        bool
}

// Core is the shared timing and input state.
type Core struct {
	mu      sync.Mutex
	ribbon  *ribbon.Ribbon
	st      State
	seconds int
}

func New(r *ribbon.Ribbon) *Core {
	return &Core{
		ribbon: r,
		st: State{
			UI:      types.StateMenu,
			Current: -1,
			Uptimes: make([]uint32, r.TableSize()),
			Dirty:   true,
		},
	}
}

// Suppress holds off the event handlers until the returned release func is
// called.
func (c *Core) Suppress() (release func()) {
	c.mu.Lock()
	return c.mu.Unlock
}

// Locker exposes the guard to collaborators that must exclude the event
// handlers for a whole operation.
func (c *Core) Locker() sync.Locker {
	return &c.mu
}

// Snapshot returns a consistent copy of the shared state.
func (c *Core) Snapshot() State {
	release := c.Suppress()
	defer release()
	return c.st.copy()
}

// Update runs fn with exclusive access to the shared state.
func (c *Core) Update(fn func(*State)) {
	release := c.Suppress()
	defer release()
	fn(&c.st)
}

// Rotate handles one decoded encoder detent.
func (c *Core) Rotate(dir encoder.Direction) {
	if dir == encoder.None {
		return
	}
	release := c.Suppress()
	defer release()

	c.st.UI = types.StateMenu
	nav.Nudge(&c.st.Nav, c.ribbon.Ring, int(dir))
}

// Second is called once per second by the timer.
func (c *Core) Second() {
	release := c.Suppress()
	defer release()

	c.seconds++
	if c.seconds < secondsPerMinute {
		return
	}
	c.seconds = 0

	addSeconds(c.st.Uptimes, 0, secondsPerMinute)
	if c.st.UI == types.StateCentered && c.st.Current >= 0 {
		in := c.ribbon.Inputs[c.st.Current]
		if in.Physical() {
			c.st.DwellMinutes++
			addSeconds(c.st.Uptimes, in.ID, secondsPerMinute)
		}
	}
	c.st.Dirty = true
}

// TakeDirty clears the dirty flag and returns a copy of the uptime table if
// it was set.
func (c *Core) TakeDirty() ([]uint32, bool) {
	release := c.Suppress()
	defer release()
	if !c.st.Dirty {
		return nil, false
	}
	c.st.Dirty = false
	return append([]uint32(nil), c.st.Uptimes...), true
}

// Restore loads persisted values at boot. Positions outside the ribbon are
// ignored.
func (c *Core) Restore(position int, uptimes []uint32) {
	release := c.Suppress()
	defer release()
	if position >= 0 && position < c.ribbon.Width() {
		c.st.Nav.Position = position
	}
	if uptimes != nil {
		copy(c.st.Uptimes, uptimes)
	}
	c.st.Dirty = true
}

func (s State) copy() State {
	s.Uptimes = append([]uint32(nil), s.Uptimes...)
	return s
}

// addSeconds increments a counter, saturating instead of wrapping.
func addSeconds(table []uint32, id int, n uint32) {
	if id < 0 || id >= len(table) {
		return
	}
	if table[id] > ^uint32(0)-n {
		table[id] = ^uint32(0)
		return
	}
	table[id] += n
}
