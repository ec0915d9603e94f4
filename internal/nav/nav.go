package nav

import (
	"input-selector/internal/ring"
)

// Tick intervals for the kinematics.
const (
	PosInterval      uint16 = 500  // apply velocity to position
	VelocityInterval uint16 = 4000 // decay velocity by one
	CenterInterval   uint16 = 40   // auto-centering step
)

const (
	// MaxVelocity bounds |velocity|; the open interval (-20, 20).
	MaxVelocity = 19
	// VelocityStep is the velocity change per encoder detent.
	VelocityStep = 3
	// WrapZone is the distance from either ribbon end inside which
	// auto-centering goes around the wrap instead of across the ribbon.
	WrapZone = 100
)

// State is the position/velocity state of the ribbon.
type State struct {
	Position      int
	Velocity      int
	PosTicks      uint16
	VelocityTicks uint16
}

// Elapsed is the wrap-tolerant tick difference now - since.
func Elapsed(now, since uint16) uint16 {
	return now - since
}

// Nudge applies one encoder detent in direction dir (-1 or +1). A ribbon at
// rest moves one column immediately; every detent adds momentum.
func Nudge(s *State, r ring.Ring, dir int) {
	if s.Velocity == 0 {
		s.Position = r.Add(s.Position, dir)
	}
	s.Velocity = clampVelocity(s.Velocity + dir*VelocityStep)
}

func clampVelocity(v int) int {
	if v > MaxVelocity {
		return MaxVelocity
	}
	if v < -MaxVelocity {
		return -MaxVelocity
	}
	return v
}

// Integrate advances position by velocity and decays velocity, each on its
// own tick interval.
func Integrate(s *State, r ring.Ring, now uint16) {
	if Elapsed(now, s.PosTicks) >= PosInterval {
		s.Position = r.Add(s.Position, s.Velocity)
		s.PosTicks = now
	}
	if Elapsed(now, s.VelocityTicks) >= VelocityInterval {
		switch {
		case s.Velocity < 0:
			s.Velocity++
		case s.Velocity > 0:
			s.Velocity--
		}
		s.VelocityTicks = now
	}
}

// Centered reports whether pos is within one column of center.
func Centered(pos, center int) bool {
	return pos >= center-1 && pos <= center+1
}

// Approach returns the next auto-centering position moving pos toward
// center. Near the start of the ribbon with a target near its end, the move
// goes backwards through the wrap point.
func Approach(pos, center int, r ring.Ring) int {
	if pos < WrapZone && center >= r.Width-WrapZone {
		return r.Add(pos, -step(r.Distance(pos, center)))
	}
	d := pos - center
	if d < 0 {
		return r.Add(pos, step(-d))
	}
	return r.Add(pos, -step(d))
}

func step(distance int) int {
	return distance/3 + 1
}
