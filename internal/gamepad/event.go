package gamepad

import "fmt"

// Axis identifies an analog control.
type Axis uint8

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
)

func (a Axis) String() string {
	switch a {
	case AxisLeftX:
		return "left_x"
	case AxisLeftY:
		return "left_y"
	case AxisRightX:
		return "right_x"
	case AxisRightY:
		return "right_y"
	case AxisLeftTrigger:
		return "lt"
	case AxisRightTrigger:
		return "rt"
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// Event is one input event in arrival order. The set of variants is closed;
// sources that see something they cannot translate emit Unknown.
type Event interface {
	event()
}

// Connect reports that a device was opened and is now the active one.
type Connect struct {
	Index int
	Name  string
	// Layout is the controller family from the VID/PID table.
	Layout string
}

type Disconnect struct{}

type ButtonDown struct {
	Button Button
}

type ButtonUp struct {
	Button Button
}

// AuxButtonDown is a raw button index from the joystick channel, which
// carries buttons the gamepad channel does not expose on some hardware.
type AuxButtonDown struct {
	Index int
}

type AuxButtonUp struct {
	Index int
}

type AxisMotion struct {
	Axis  Axis
	Value int16
}

// HatMotion carries the absolute hat position.
type HatMotion struct {
	Mask Hat
}

type Quit struct{}

// Unknown wraps an event kind the source does not translate.
type Unknown struct {
	Code uint32
}

func (Connect) event()       {}
func (Disconnect) event()    {}
func (ButtonDown) event()    {}
func (ButtonUp) event()      {}
func (AuxButtonDown) event() {}
func (AuxButtonUp) event()   {}
func (AxisMotion) event()    {}
func (HatMotion) event()     {}
func (Quit) event()          {}
func (Unknown) event()       {}
