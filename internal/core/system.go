package core

import (
	"context"
	"errors"
	"time"

	"input-selector/internal/compositor"
	"input-selector/internal/fsm"
	"input-selector/internal/logger"
	"input-selector/internal/nav"
	"input-selector/internal/ribbon"
	"input-selector/internal/shared"
	"input-selector/internal/storage"
	"input-selector/internal/types"
)

// Deps are the collaborators of a Selector. Status may be nil.
type Deps struct {
	Core    *shared.Core
	Ribbon  *ribbon.Ribbon
	Display Display
	Bus     SelectorBus
	Clock   Clock
	Store   Store
	Status  StatusPublisher
	Logger  *logger.Logger
}

// Selector is the main loop of the input selector: it moves the ribbon,
// runs the UI state machine, drives the bus and paints the display.
type Selector struct {
	Deps

	frame    *compositor.FrameBuffer
	text     *compositor.UptimeText
	scroller *compositor.Scroller

	brightness uint8 // last level sent, 0 before the first
	address    uint8 // last address latched
	lastInput  int   // input the dwell counter belongs to
	displayErr bool  // suppresses repeated display errors

	lastStatus types.Status
	statusSent bool
}

func NewSelector(d Deps) *Selector {
	return &Selector{
		Deps:      d,
		frame:     compositor.NewFrameBuffer(),
		text:      compositor.RenderUptime(d.Ribbon.Inputs, make([]uint32, d.Ribbon.TableSize())),
		scroller:  compositor.NewScroller(2*len(d.Ribbon.Inputs) + 2),
		address:   types.AddressUnused,
		lastInput: -1,
	}
}

// Boot brings the display to normal brightness, parks the bus and restores
// the persisted position and uptimes. Only a display that cannot be written
// is an error; missing or corrupt history is logged and replaced.
func (s *Selector) Boot() error {
	if err := s.Display.SetBrightness(types.BrightnessNormal); err != nil {
		return err
	}
	s.brightness = types.BrightnessNormal

	if err := s.Bus.Latch(types.AddressUnused); err != nil {
		s.Logger.Warnf("Failed to park selector bus: %v", err)
	}

	pos, corrupt, err := s.Store.LoadPosition(s.Ribbon.Width())
	switch {
	case err != nil:
		s.Logger.Warnf("Failed to read ribbon position: %v", err)
	case corrupt:
		s.Logger.Warnf("Stored ribbon position is out of range, starting at 0")
	default:
		s.Logger.Infof("Restored ribbon position %d", pos)
	}

	table, err := s.Store.LoadUptime()
	switch {
	case errors.Is(err, storage.ErrNoData):
		s.Logger.Infof("No uptime history, starting from zero")
		table = nil
	case err != nil && table == nil:
		s.Logger.Warnf("Failed to read uptime history: %v", err)
	case err != nil:
		s.Logger.Warnf("Uptime history restored but not repaired: %v", err)
	}

	s.Core.Restore(pos, table)
	now := s.Clock.Ticks()
	s.Core.Update(func(st *shared.State) {
		st.LastTicks = now
		st.Nav.PosTicks = now
		st.Nav.VelocityTicks = now
	})
	return nil
}

// Run calls Step until ctx is done, at most once per period. A zero period
// runs as fast as the display accepts frames.
func (s *Selector) Run(ctx context.Context, period time.Duration) error {
	var tick <-chan time.Time
	if period > 0 {
		t := time.NewTicker(period)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Step()
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}

// effects are the outcomes of one state machine evaluation that need I/O.
type effects struct {
	from, to types.UIState
	action   fsm.Action
	nearest  int
	position int
	dwell    int
}

// Step runs one main loop iteration.
func (s *Selector) Step() {
	if table, dirty := s.Core.TakeDirty(); dirty {
		s.uptimeChanged(table)
	}

	now := s.Clock.Ticks()
	var fx effects
	s.Core.Update(func(st *shared.State) {
		fx = s.advance(st, now)
	})

	s.apply(fx, now)
	s.paint(fx)
	s.publishStatus(fx)
}

// advance evaluates the state machine and applies its effects on the shared
// state. It runs with the event handlers held off.
func (s *Selector) advance(st *shared.State, now uint16) effects {
	if st.UI == types.StateMenu {
		nav.Integrate(&st.Nav, s.Ribbon.Ring, now)
	}

	idx, ok := s.Ribbon.Nearest(st.Nav.Position)
	st.Current = idx
	in := fsm.Inputs{
		Velocity: st.Nav.Velocity,
		Elapsed:  nav.Elapsed(now, st.LastTicks),
	}
	var target ribbon.Input
	if ok {
		target = s.Ribbon.Inputs[idx]
		in.Nearest = fsm.Target{
			Present:  true,
			Info:     target.IsInfo(),
			Centered: nav.Centered(st.Nav.Position, target.Center),
		}
	}

	tr := fsm.Next(st.UI, in)
	switch tr.Action {
	case fsm.ActionResetTimer:
		st.LastTicks = now
	case fsm.ActionSnap:
		st.Nav.Position = target.Center
		st.LastTicks = now
	case fsm.ActionApproach:
		st.Nav.Position = nav.Approach(st.Nav.Position, target.Center, s.Ribbon.Ring)
		st.LastTicks = now
	case fsm.ActionHold:
		if idx != s.lastInput {
			st.DwellMinutes = 0
			s.lastInput = idx
		}
	}

	fx := effects{
		from:     st.UI,
		to:       tr.Next,
		action:   tr.Action,
		nearest:  idx,
		position: st.Nav.Position,
		dwell:    st.DwellMinutes,
	}
	st.UI = tr.Next
	return fx
}

func (s *Selector) apply(fx effects, now uint16) {
	if fx.from != fx.to {
		s.Logger.Debugf("State %s -> %s", fx.from, fx.to)
	}

	switch fx.action {
	case fsm.ActionSnap:
		if err := s.Store.SavePosition(fx.position); err != nil {
			s.Logger.Warnf("Failed to persist ribbon position: %v", err)
		}
	case fsm.ActionHold:
		addr := types.AddressUnused
		if fx.nearest >= 0 && s.Ribbon.Inputs[fx.nearest].Physical() {
			addr = s.Ribbon.Inputs[fx.nearest].Address
		}
		s.latch(addr, fx.nearest)
		if fx.dwell >= fsm.DimAfterMinutes {
			s.setBrightness(types.BrightnessDim)
		}
	}

	// Detents can cancel out between two steps, so Menu may last for only the
	// step that leaves it.
	if fx.from == types.StateMenu || fx.to == types.StateMenu {
		s.setBrightness(types.BrightnessNormal)
	}

	if fx.to == types.StateInfoScroll {
		if fx.from != types.StateInfoScroll {
			s.scroller.Reset(now)
		} else {
			s.scroller.Advance(now)
		}
	}
}

func (s *Selector) paint(fx effects) {
	var span compositor.Span
	if fx.nearest >= 0 {
		span = compositor.SpanOf(s.Ribbon.Inputs[fx.nearest])
	}

	s.frame.Clear()
	compositor.BlitRibbon(s.frame, s.Ribbon, fx.position, span, fx.to.Blank())
	if fx.to == types.StateInfoScroll && span.Valid {
		compositor.BlitUptime(s.frame, s.text, fx.position, span.Begin, s.scroller.Line, s.scroller.Row)
	}

	err := s.Display.WriteBitmap(0, 0, compositor.Width, compositor.Height, s.frame.Bytes())
	switch {
	case err != nil && !s.displayErr:
		s.Logger.Errorf("Failed to write frame: %v", err)
		s.displayErr = true
	case err == nil && s.displayErr:
		s.Logger.Infof("Display recovered")
		s.displayErr = false
	}
}

func (s *Selector) latch(addr uint8, nearest int) {
	if err := s.Bus.Latch(addr); err != nil {
		s.Logger.Warnf("Failed to latch address %#02x: %v", addr, err)
		return
	}
	if addr != s.address {
		label := "none"
		if nearest >= 0 {
			label = s.Ribbon.Inputs[nearest].Abbrev
		}
		s.Logger.Infof("Selected %s (address %#02x)", label, addr)
		s.address = addr
	}
}

func (s *Selector) setBrightness(level uint8) {
	if level == s.brightness {
		return
	}
	if err := s.Display.SetBrightness(level); err != nil {
		s.Logger.Warnf("Failed to set brightness %#02x: %v", level, err)
		return
	}
	s.brightness = level
}

// uptimeChanged re-renders, persists and publishes a new uptime table.
func (s *Selector) uptimeChanged(table []uint32) {
	s.text = compositor.RenderUptime(s.Ribbon.Inputs, table)
	if err := s.Store.SaveUptime(table); err != nil {
		s.Logger.Warnf("Failed to persist uptime: %v", err)
	}
	if s.Status == nil {
		return
	}
	u := make([]types.Uptime, 0, len(s.Ribbon.Inputs))
	for _, in := range s.Ribbon.Inputs {
		if in.ID < len(table) {
			u = append(u, types.Uptime{Label: in.Abbrev, Seconds: table[in.ID]})
		}
	}
	s.Status.PublishUptime(u)
}

func (s *Selector) publishStatus(fx effects) {
	if s.Status == nil {
		return
	}
	st := types.Status{
		State:    fx.to,
		Address:  s.address,
		Position: fx.position,
	}
	if fx.nearest >= 0 {
		st.Input = s.Ribbon.Inputs[fx.nearest].Abbrev
	}
	if s.statusSent && st == s.lastStatus {
		return
	}
	s.Status.PublishStatus(st)
	s.lastStatus = st
	s.statusSent = true
}
