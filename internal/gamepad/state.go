package gamepad

import "math"

// Button identifies one of the digital buttons tracked by State.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder

	// ButtonCount is the number of recognized buttons.
	ButtonCount
)

var buttonNames = [ButtonCount]string{
	"a", "b", "x", "y", "back", "guide", "start", "l3", "r3", "lb", "rb",
}

// Valid reports whether b is one of the recognized buttons.
func (b Button) Valid() bool {
	return b < ButtonCount
}

func (b Button) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return buttonNames[b]
}

// Hat is a directional pad bitmask.
type Hat uint8

const (
	HatCentered Hat = 0x00
	HatUp       Hat = 0x01
	HatRight    Hat = 0x02
	HatDown     Hat = 0x04
	HatLeft     Hat = 0x08
)

// Has reports whether every bit of d is set in h.
func (h Hat) Has(d Hat) bool {
	return d != 0 && h&d == d
}

// Stick is a two-axis analog position, each axis in [-1, 1].
type Stick struct {
	X float64
	Y float64
}

// State is the current snapshot of the active controller. Only Apply
// mutates it; everything else reads through the accessors.
type State struct {
	leftStick    Stick
	rightStick   Stick
	leftTrigger  float64
	rightTrigger float64
	buttons      [ButtonCount]bool
	dpad         Hat
	connected    bool
}

func (s *State) LeftStick() Stick      { return s.leftStick }
func (s *State) RightStick() Stick     { return s.rightStick }
func (s *State) LeftTrigger() float64  { return s.leftTrigger }
func (s *State) RightTrigger() float64 { return s.rightTrigger }
func (s *State) Dpad() Hat             { return s.dpad }
func (s *State) Connected() bool       { return s.connected }

// Pressed reports the flag for b. Unknown buttons are never pressed.
func (s *State) Pressed(b Button) bool {
	if !b.Valid() {
		return false
	}
	return s.buttons[b]
}

// Snapshot returns a serializable copy of the state. Name and
// ControllerType are left empty; they belong to the device, not the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Connected: s.connected,
		Buttons: ButtonState{
			A:      s.buttons[ButtonA],
			B:      s.buttons[ButtonB],
			X:      s.buttons[ButtonX],
			Y:      s.buttons[ButtonY],
			LB:     s.buttons[ButtonLeftShoulder],
			RB:     s.buttons[ButtonRightShoulder],
			Select: s.buttons[ButtonBack],
			Start:  s.buttons[ButtonStart],
			Home:   s.buttons[ButtonGuide],
		},
		Dpad: DpadState{
			Up:    s.dpad&HatUp != 0,
			Down:  s.dpad&HatDown != 0,
			Left:  s.dpad&HatLeft != 0,
			Right: s.dpad&HatRight != 0,
		},
		Sticks: SticksState{
			Left: StickState{
				Position: Vector{X: s.leftStick.X, Y: s.leftStick.Y},
				Pressed:  s.buttons[ButtonLeftStick],
			},
			Right: StickState{
				Position: Vector{X: s.rightStick.X, Y: s.rightStick.Y},
				Pressed:  s.buttons[ButtonRightStick],
			},
		},
		Triggers: TriggersState{
			LT: TriggerState{Value: s.leftTrigger},
			RT: TriggerState{Value: s.rightTrigger},
		},
	}
}

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StickState struct {
	Position Vector `json:"position"`
	Pressed  bool   `json:"pressed"`
}

type TriggerState struct {
	Value float64 `json:"value"`
}

type ButtonState struct {
	A      bool `json:"a"`
	B      bool `json:"b"`
	X      bool `json:"x"`
	Y      bool `json:"y"`
	LB     bool `json:"lb"`
	RB     bool `json:"rb"`
	Select bool `json:"select"`
	Start  bool `json:"start"`
	Home   bool `json:"home"`
}

type DpadState struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

type SticksState struct {
	Left  StickState `json:"left"`
	Right StickState `json:"right"`
}

type TriggersState struct {
	LT TriggerState `json:"lt"`
	RT TriggerState `json:"rt"`
}

// Snapshot is the wire form of State published to mirror clients.
type Snapshot struct {
	Connected      bool          `json:"connected"`
	ControllerType string        `json:"controllerType"`
	Name           string        `json:"name"`
	Buttons        ButtonState   `json:"buttons"`
	Dpad           DpadState     `json:"dpad"`
	Sticks         SticksState   `json:"sticks"`
	Triggers       TriggersState `json:"triggers"`
}

type DeltaChanges struct {
	Connected      *bool          `json:"connected,omitempty"`
	ControllerType *string        `json:"controllerType,omitempty"`
	Name           *string        `json:"name,omitempty"`
	Buttons        *ButtonState   `json:"buttons,omitempty"`
	Dpad           *DpadState     `json:"dpad,omitempty"`
	Sticks         *SticksState   `json:"sticks,omitempty"`
	Triggers       *TriggersState `json:"triggers,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.ControllerType == nil &&
		d.Name == nil &&
		d.Buttons == nil &&
		d.Dpad == nil &&
		d.Sticks == nil &&
		d.Triggers == nil
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// ComputeDelta returns the groups that differ between old and new_.
// Analog movement below analogThreshold is not reported.
func ComputeDelta(old, new_ Snapshot) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.ControllerType != new_.ControllerType {
		d.ControllerType = &new_.ControllerType
	}
	if old.Name != new_.Name {
		d.Name = &new_.Name
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}
	if old.Dpad != new_.Dpad {
		d.Dpad = &new_.Dpad
	}

	if !floatEqual(old.Sticks.Left.Position.X, new_.Sticks.Left.Position.X) ||
		!floatEqual(old.Sticks.Left.Position.Y, new_.Sticks.Left.Position.Y) ||
		old.Sticks.Left.Pressed != new_.Sticks.Left.Pressed ||
		!floatEqual(old.Sticks.Right.Position.X, new_.Sticks.Right.Position.X) ||
		!floatEqual(old.Sticks.Right.Position.Y, new_.Sticks.Right.Position.Y) ||
		old.Sticks.Right.Pressed != new_.Sticks.Right.Pressed {
		d.Sticks = &new_.Sticks
	}

	if !floatEqual(old.Triggers.LT.Value, new_.Triggers.LT.Value) ||
		!floatEqual(old.Triggers.RT.Value, new_.Triggers.RT.Value) {
		d.Triggers = &new_.Triggers
	}

	return d
}
