package types

// Status is the externally visible selector state.
type Status struct {
	State    UIState
	Input    string // label of the nearest input, empty for none
	Address  uint8  // address latched on the selector bus
	Position int
}

// Uptime is one labelled counter of the uptime table, in seconds.
type Uptime struct {
	Label   string
	Seconds uint32
}
