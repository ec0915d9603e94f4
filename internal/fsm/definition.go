package fsm

import (
	"input-selector/internal/nav"
	"input-selector/internal/types"
)

// Timing constants, in ticks.
const (
	// StateDelay is the pause before Stopped becomes Selected and before
	// the uptime scroll starts.
	StateDelay uint16 = 32000
	// DimAfterMinutes is how long one input stays centered before the
	// display is dimmed.
	DimAfterMinutes = 2
)

// Target describes the ribbon input nearest to the current position.
type Target struct {
	Present  bool
	Info     bool
	Centered bool // position within one column of the input's center
}

// Inputs is what the transition function looks at.
type Inputs struct {
	Velocity int
	// Elapsed is the number of ticks since the last transition.
	Elapsed uint16
	Nearest Target
}

// Transition is the outcome of one evaluation.
type Transition struct {
	Next   types.UIState
	Action Action
}

func stay(s types.UIState) Transition {
	return Transition{Next: s, Action: ActionNone}
}

// Next evaluates the state machine once. Rotation is not handled here: the
// encoder forces StateMenu directly.
func Next(s types.UIState, in Inputs) Transition {
	switch s {
	case types.StateMenu:
		if in.Velocity == 0 {
			return Transition{Next: types.StateStopped, Action: ActionResetTimer}
		}

	case types.StateStopped:
		if in.Elapsed >= StateDelay {
			return Transition{Next: types.StateSelected, Action: ActionResetTimer}
		}

	case types.StateSelected:
		switch {
		case !in.Nearest.Present:
			// Nothing to center on; wait for the next rotation.
		case in.Nearest.Centered:
			return Transition{Next: types.StateCentered, Action: ActionSnap}
		case in.Elapsed >= nav.CenterInterval:
			return Transition{Next: types.StateSelected, Action: ActionApproach}
		}

	case types.StateCentered:
		if in.Nearest.Present && in.Nearest.Info {
			return Transition{Next: types.StateWaitInfoScroll, Action: ActionResetTimer}
		}
		return Transition{Next: types.StateCentered, Action: ActionHold}

	case types.StateWaitInfoScroll:
		if in.Elapsed >= StateDelay {
			return Transition{Next: types.StateInfoScroll, Action: ActionResetTimer}
		}
	}
	return stay(s)
}
