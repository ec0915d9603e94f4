package nav

import (
	"math/rand"
	"testing"

	"input-selector/internal/ring"
)

func TestNudgeFromRest(t *testing.T) {
	r := ring.New(100)
	s := State{Position: 0}
	Nudge(&s, r, -1)
	if s.Position != 99 {
		t.Errorf("position = %d, want 99", s.Position)
	}
	if s.Velocity != -VelocityStep {
		t.Errorf("velocity = %d, want %d", s.Velocity, -VelocityStep)
	}

	// Moving ribbon: only velocity changes.
	Nudge(&s, r, -1)
	if s.Position != 99 {
		t.Errorf("position moved to %d while velocity was non-zero", s.Position)
	}
	if s.Velocity != -2*VelocityStep {
		t.Errorf("velocity = %d, want %d", s.Velocity, -2*VelocityStep)
	}
}

func TestNudgeClamps(t *testing.T) {
	r := ring.New(100)
	s := State{}
	for i := 0; i < 20; i++ {
		Nudge(&s, r, 1)
		if s.Velocity >= 20 {
			t.Fatalf("velocity %d reached the bound", s.Velocity)
		}
	}
	if s.Velocity != MaxVelocity {
		t.Errorf("velocity = %d, want %d", s.Velocity, MaxVelocity)
	}
	for i := 0; i < 40; i++ {
		Nudge(&s, r, -1)
		if s.Velocity <= -20 {
			t.Fatalf("velocity %d reached the bound", s.Velocity)
		}
	}
	if s.Velocity != -MaxVelocity {
		t.Errorf("velocity = %d, want %d", s.Velocity, -MaxVelocity)
	}
}

func TestRandomRotationKeepsInvariants(t *testing.T) {
	r := ring.New(173)
	rng := rand.New(rand.NewSource(1))
	s := State{}
	now := uint16(0)
	for i := 0; i < 10000; i++ {
		if rng.Intn(2) == 0 {
			Nudge(&s, r, 1)
		} else {
			Nudge(&s, r, -1)
		}
		now += uint16(rng.Intn(3000))
		Integrate(&s, r, now)
		if s.Position < 0 || s.Position >= r.Width {
			t.Fatalf("position %d out of [0, %d)", s.Position, r.Width)
		}
		if s.Velocity <= -20 || s.Velocity >= 20 {
			t.Fatalf("velocity %d out of bounds", s.Velocity)
		}
	}
}

func TestIntegrateIntervals(t *testing.T) {
	r := ring.New(1000)
	s := State{Position: 10, Velocity: 5}

	Integrate(&s, r, PosInterval-1)
	if s.Position != 10 {
		t.Fatalf("position moved before the interval: %d", s.Position)
	}
	Integrate(&s, r, PosInterval)
	if s.Position != 15 || s.PosTicks != PosInterval {
		t.Fatalf("position = %d ticks = %d, want 15 and %d", s.Position, s.PosTicks, PosInterval)
	}
	if s.Velocity != 5 {
		t.Fatalf("velocity decayed early: %d", s.Velocity)
	}
	Integrate(&s, r, VelocityInterval)
	if s.Velocity != 4 {
		t.Fatalf("velocity = %d, want 4", s.Velocity)
	}
}

func TestIntegrateWrapsTicks(t *testing.T) {
	r := ring.New(1000)
	s := State{Position: 0, Velocity: -2, PosTicks: 65400, VelocityTicks: 65400}
	// 65400 + 500 wraps to 364.
	Integrate(&s, r, 364)
	if s.Position != 998 {
		t.Errorf("position = %d, want 998", s.Position)
	}
	if s.Velocity != -2 {
		t.Errorf("velocity = %d, want -2", s.Velocity)
	}
	// 4000 ticks after 65400.
	Integrate(&s, r, 3864)
	if s.Velocity != -1 {
		t.Errorf("velocity = %d, want -1", s.Velocity)
	}
}

func TestCentered(t *testing.T) {
	for _, pos := range []int{99, 100, 101} {
		if !Centered(pos, 100) {
			t.Errorf("Centered(%d, 100) = false", pos)
		}
	}
	for _, pos := range []int{97, 98, 102} {
		if Centered(pos, 100) {
			t.Errorf("Centered(%d, 100) = true", pos)
		}
	}
}

func TestApproachDirect(t *testing.T) {
	r := ring.New(5200)
	pos := 1000
	for i := 0; i < 100 && !Centered(pos, 2500); i++ {
		next := Approach(pos, 2500, r)
		if next <= pos {
			t.Fatalf("step %d moved away from target: %d -> %d", i, pos, next)
		}
		pos = next
	}
	if !Centered(pos, 2500) {
		t.Fatalf("did not reach center, pos = %d", pos)
	}

	pos = 4000
	for i := 0; i < 100 && !Centered(pos, 2500); i++ {
		pos = Approach(pos, 2500, r)
	}
	if !Centered(pos, 2500) {
		t.Fatalf("did not reach center from above, pos = %d", pos)
	}
}

func TestApproachTakesWrapPath(t *testing.T) {
	r := ring.New(5200)
	pos := 50
	first := Approach(pos, 5000, r)
	if first >= pos && first < 5000 {
		t.Fatalf("first step went %d -> %d, want backwards through the wrap", pos, first)
	}
	pos = first
	for i := 0; i < 100 && !Centered(pos, 5000); i++ {
		next := Approach(pos, 5000, r)
		if next < 5000-1 {
			t.Fatalf("step %d overshot the target: %d -> %d", i, pos, next)
		}
		pos = next
	}
	if !Centered(pos, 5000) {
		t.Fatalf("did not reach center, pos = %d", pos)
	}
}

func TestApproachMinimumStep(t *testing.T) {
	r := ring.New(5200)
	if got := Approach(302, 300, r); got != 301 {
		t.Errorf("Approach(302, 300) = %d, want 301", got)
	}
	if got := Approach(298, 300, r); got != 299 {
		t.Errorf("Approach(298, 300) = %d, want 299", got)
	}
	// A third of the distance plus one.
	if got := Approach(310, 300, r); got != 306 {
		t.Errorf("Approach(310, 300) = %d, want 306", got)
	}
	if got := Approach(291, 300, r); got != 295 {
		t.Errorf("Approach(291, 300) = %d, want 295", got)
	}
}

func TestElapsedWraps(t *testing.T) {
	if got := Elapsed(10, 65530); got != 16 {
		t.Errorf("Elapsed(10, 65530) = %d, want 16", got)
	}
}
