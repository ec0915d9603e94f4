package encoder

// Direction of a single detent of the rotary encoder.
type Direction int

const (
	None  Direction = 0
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Edge is a transition on one encoder line.
type Edge int

const (
	Rising Edge = iota
	Falling
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// Line identifies one of the two encoder lines. Line A is bit 0 of the
// 2-bit state, line B is bit 1.
type Line int

const (
	LineA Line = iota
	LineB
)

func (l Line) String() string {
	if l == LineA {
		return "A"
	}
	return "B"
}

// Trigger is the edge armed on one line and what it means when it fires.
type Trigger struct {
	Edge      Edge
	Direction Direction
}

// Arming is the per-line trigger configuration for one encoder state.
type Arming struct {
	A Trigger
	B Trigger
}

// The lines cycle 00 -> 01 -> 11 -> 10 -> 00 when turning right.
var armingTable = [4]Arming{
	0b00: {A: Trigger{Rising, Right}, B: Trigger{Rising, Left}},
	0b01: {A: Trigger{Falling, Left}, B: Trigger{Rising, Right}},
	0b11: {A: Trigger{Falling, Right}, B: Trigger{Falling, Left}},
	0b10: {A: Trigger{Rising, Left}, B: Trigger{Falling, Right}},
}

// ArmingFor returns the trigger configuration for a 2-bit line state.
func ArmingFor(state uint8) Arming {
	return armingTable[state&0b11]
}

// Decoder turns line edges into rotation directions. It is re-armed from the
// current line state after every event, so a missed or spurious edge costs at
// most one detent.
type Decoder struct {
	state  uint8
	arming Arming
}

func NewDecoder(state uint8) *Decoder {
	d := &Decoder{}
	d.Rearm(state)
	return d
}

// Rearm reprograms the armed edges from the current 2-bit line state.
func (d *Decoder) Rearm(state uint8) {
	d.state = state & 0b11
	d.arming = ArmingFor(d.state)
}

// Arming returns the edges currently armed.
func (d *Decoder) Arming() Arming {
	return d.arming
}

// State returns the line state the decoder was last armed with.
func (d *Decoder) State() uint8 {
	return d.state
}

// Edge handles an edge on one line. state is the line state sampled after the
// edge. The returned direction is None when the edge was not the armed one.
func (d *Decoder) Edge(line Line, edge Edge, state uint8) Direction {
	trig := d.arming.A
	if line == LineB {
		trig = d.arming.B
	}
	dir := None
	if trig.Edge == edge {
		dir = trig.Direction
	}
	d.Rearm(state)
	return dir
}
