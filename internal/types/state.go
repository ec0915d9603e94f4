package types

// UIState is the state of the selector user interface.
type UIState uint8

const (
	StateCentered UIState = iota
	StateMenu
	StateStopped
	StateSelected
	StateWaitInfoScroll
	StateInfoScroll
)

func (s UIState) String() string {
	switch s {
	case StateCentered:
		return "centered"
	case StateMenu:
		return "menu"
	case StateStopped:
		return "stopped"
	case StateSelected:
		return "selected"
	case StateWaitInfoScroll:
		return "wait-info-scroll"
	case StateInfoScroll:
		return "info-scroll"
	default:
		return "unknown"
	}
}

// Blank reports whether only the selected logo is drawn in this state.
func (s UIState) Blank() bool {
	switch s {
	case StateSelected, StateCentered, StateWaitInfoScroll, StateInfoScroll:
		return true
	}
	return false
}

// Display brightness levels.
const (
	BrightnessDim    uint8 = 0x01
	BrightnessNormal uint8 = 0x08
)

// Selector bus addresses with special meaning.
const (
	AddressEmpty  uint8 = 0x00 // no input in this slot
	AddressUnused uint8 = 0x17 // no physical device is wired here
	AddressInfo   uint8 = 0xff // show uptimes instead of selecting
)
