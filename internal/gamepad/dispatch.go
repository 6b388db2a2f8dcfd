package gamepad

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnrecognizedEvent is returned for events that leave the state
	// untouched because they carry nothing Apply understands.
	ErrUnrecognizedEvent = errors.New("unrecognized event")
	ErrUnknownButton     = fmt.Errorf("%w: unknown button", ErrUnrecognizedEvent)
	ErrUnknownAxis       = fmt.Errorf("%w: unknown axis", ErrUnrecognizedEvent)
)

// auxGuideIndex is the joystick button index that carries the guide
// button on pads that do not report it through the gamepad channel.
const auxGuideIndex = 8

// Feedback is a haptic pulse request for the active device.
type Feedback struct {
	Low      uint16
	High     uint16
	Duration time.Duration
}

// buttonPulse is sent on every recognized button press.
var buttonPulse = Feedback{Low: 0, High: 0xffff / 2, Duration: 200 * time.Millisecond}

// Result carries the side effects of applying one event.
type Result struct {
	Feedback *Feedback
	Quit     bool
}

// Apply folds ev into s. The returned error is diagnostic only: s is left
// unchanged whenever it is non-nil, and the caller keeps going.
func Apply(s *State, ev Event) (Result, error) {
	switch e := ev.(type) {
	case Connect:
		s.connected = true
	case Disconnect:
		s.connected = false
	case ButtonDown:
		if !e.Button.Valid() {
			return Result{}, fmt.Errorf("%w: %d", ErrUnknownButton, e.Button)
		}
		s.buttons[e.Button] = true
		fb := buttonPulse
		return Result{Feedback: &fb}, nil
	case ButtonUp:
		if !e.Button.Valid() {
			return Result{}, fmt.Errorf("%w: %d", ErrUnknownButton, e.Button)
		}
		s.buttons[e.Button] = false
	case AuxButtonDown:
		if e.Index == auxGuideIndex {
			s.buttons[ButtonGuide] = true
		}
	case AuxButtonUp:
		if e.Index == auxGuideIndex {
			s.buttons[ButtonGuide] = false
		}
	case AxisMotion:
		return Result{}, s.applyAxis(e)
	case HatMotion:
		s.dpad = e.Mask
	case Quit:
		return Result{Quit: true}, nil
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnrecognizedEvent, ev)
	}
	return Result{}, nil
}

func (s *State) applyAxis(e AxisMotion) error {
	switch e.Axis {
	case AxisLeftX:
		s.leftStick.X = NormalizeAxis(e.Value)
	case AxisLeftY:
		s.leftStick.Y = NormalizeAxis(e.Value)
	case AxisRightX:
		s.rightStick.X = NormalizeAxis(e.Value)
	case AxisRightY:
		s.rightStick.Y = NormalizeAxis(e.Value)
	case AxisLeftTrigger:
		s.leftTrigger = NormalizeTrigger(e.Value)
	case AxisRightTrigger:
		s.rightTrigger = NormalizeTrigger(e.Value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAxis, e.Axis)
	}
	return nil
}
