package device

import (
	"fmt"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/GamepadTest/internal/gamepad"
)

// handle owns one opened SDL gamepad. Close releases it exactly once.
type handle struct {
	pad     *sdl.Gamepad
	joy     *sdl.Joystick
	id      sdl.JoystickID
	name    string
	vendor  uint16
	product uint16
	layout  string
	rumble  bool

	once sync.Once
}

func openHandle(id sdl.JoystickID) (*handle, error) {
	pad := sdl.OpenGamepad(id)
	if pad == nil {
		return nil, fmt.Errorf("%w: gamepad %d: %s", ErrDeviceUnavailable, id, sdl.GetError())
	}
	// Opening the gamepad opens its joystick too; the pointer stays valid
	// until the gamepad is closed.
	joy := sdl.GetJoystickFromID(id)
	if joy == nil {
		err := fmt.Errorf("%w: joystick %d: %s", ErrDeviceUnavailable, id, sdl.GetError())
		sdl.CloseGamepad(pad)
		return nil, err
	}
	h := &handle{
		pad:     pad,
		joy:     joy,
		id:      id,
		vendor:  sdl.GetJoystickVendor(joy),
		product: sdl.GetJoystickProduct(joy),
	}
	h.layout = gamepad.LayoutFor(h.vendor, h.product)
	h.rumble = sdl.GetBooleanProperty(sdl.GetJoystickProperties(joy), sdl.PropJoystickCapRumbleBoolean, false)
	return h, nil
}

func (h *handle) path() string {
	return sdl.GetJoystickPath(h.joy)
}

func (h *handle) Close() {
	h.once.Do(func() {
		sdl.CloseGamepad(h.pad)
		h.pad, h.joy = nil, nil
	})
}
