package fsm

// Action is the side effect the caller performs together with a transition.
type Action uint8

const (
	// ActionNone leaves everything as is.
	ActionNone Action = iota
	// ActionResetTimer restarts the state timer.
	ActionResetTimer
	// ActionSnap moves the position onto the nearest input's center,
	// persists it and restarts the state timer.
	ActionSnap
	// ActionApproach moves one auto-centering step toward the nearest
	// input's center and restarts the state timer.
	ActionApproach
	// ActionHold runs the idle duties of a centered input: latch the bus
	// address, track dwell time, dim the display.
	ActionHold
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionResetTimer:
		return "reset-timer"
	case ActionSnap:
		return "snap"
	case ActionApproach:
		return "approach"
	case ActionHold:
		return "hold"
	default:
		return "unknown"
	}
}
