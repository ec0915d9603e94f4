package hardware

import (
	"context"
	"time"
)

// TickPeriod is the resolution of the free running tick counter.
const TickPeriod = 32 * time.Microsecond

// Clock is a 16 bit free running counter advancing every TickPeriod. It
// wraps about every two seconds; callers compare ticks by subtraction.
type Clock struct {
	start time.Time
	now   func() time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now(), now: time.Now}
}

func (c *Clock) Ticks() uint16 {
	return uint16(c.now().Sub(c.start) / TickPeriod)
}

// RunSecondTimer calls fn once per second until ctx is done.
func RunSecondTimer(ctx context.Context, fn func()) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}
