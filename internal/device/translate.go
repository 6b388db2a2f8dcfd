package device

import (
	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/GamepadTest/internal/gamepad"
)

// buttonFromSDL maps SDL's positional gamepad buttons onto the tracked set.
// Buttons outside it map to gamepad.ButtonCount, which Apply ignores.
func buttonFromSDL(b sdl.GamepadButton) gamepad.Button {
	switch b {
	case sdl.GamepadButtonSouth:
		return gamepad.ButtonA
	case sdl.GamepadButtonEast:
		return gamepad.ButtonB
	case sdl.GamepadButtonWest:
		return gamepad.ButtonX
	case sdl.GamepadButtonNorth:
		return gamepad.ButtonY
	case sdl.GamepadButtonBack:
		return gamepad.ButtonBack
	case sdl.GamepadButtonGuide:
		return gamepad.ButtonGuide
	case sdl.GamepadButtonStart:
		return gamepad.ButtonStart
	case sdl.GamepadButtonLeftStick:
		return gamepad.ButtonLeftStick
	case sdl.GamepadButtonRightStick:
		return gamepad.ButtonRightStick
	case sdl.GamepadButtonLeftShoulder:
		return gamepad.ButtonLeftShoulder
	case sdl.GamepadButtonRightShoulder:
		return gamepad.ButtonRightShoulder
	}
	return gamepad.ButtonCount
}

func axisFromSDL(a sdl.GamepadAxis) (gamepad.Axis, bool) {
	switch a {
	case sdl.GamepadAxisLeftX:
		return gamepad.AxisLeftX, true
	case sdl.GamepadAxisLeftY:
		return gamepad.AxisLeftY, true
	case sdl.GamepadAxisRightX:
		return gamepad.AxisRightX, true
	case sdl.GamepadAxisRightY:
		return gamepad.AxisRightY, true
	case sdl.GamepadAxisLeftTrigger:
		return gamepad.AxisLeftTrigger, true
	case sdl.GamepadAxisRightTrigger:
		return gamepad.AxisRightTrigger, true
	}
	return 0, false
}
