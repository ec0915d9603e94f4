package ring

// Ring is a circular column space of fixed width. Positions on the ribbon and
// ribbon columns addressed by the compositor all live on one Ring.
type Ring struct {
	Width int
}

func New(width int) Ring {
	if width <= 0 {
		panic("ring: width must be positive")
	}
	return Ring{Width: width}
}

// Wrap normalizes x into [0, Width).
func (r Ring) Wrap(x int) int {
	x %= r.Width
	if x < 0 {
		x += r.Width
	}
	return x
}

// Add returns x+d wrapped into [0, Width).
func (r Ring) Add(x, d int) int {
	return r.Wrap(x + d)
}

// Diff returns the signed shortest distance from a to b, in (-Width/2, Width/2].
func (r Ring) Diff(a, b int) int {
	d := r.Wrap(b - a)
	if d > r.Width/2 {
		d -= r.Width
	}
	return d
}

// Distance is the unsigned shortest distance between a and b.
func (r Ring) Distance(a, b int) int {
	d := r.Diff(a, b)
	if d < 0 {
		return -d
	}
	return d
}

// Contains reports whether x lies in the linear, inclusive range [lo, hi].
// No wrapping is applied to the bounds.
func (r Ring) Contains(x, lo, hi int) bool {
	x = r.Wrap(x)
	return x >= lo && x <= hi
}
