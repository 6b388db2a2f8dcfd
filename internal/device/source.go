// Package device reads the active gamepad through SDL3 and translates SDL
// events into gamepad events. It also delivers rumble requests back to the
// device.
//
// SDL must be driven from a single OS thread; callers lock the thread
// before Open and keep using the Source from it.
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/GamepadTest/internal/device/track"
	"github.com/soar/GamepadTest/internal/gamepad"
	"github.com/soar/GamepadTest/internal/mapping"
)

// ErrDeviceUnavailable is logged when a gamepad cannot be opened.
var ErrDeviceUnavailable = errors.New("device unavailable")

// ErrInit is returned when the SDL subsystems cannot be initialized.
var ErrInit = errors.New("sdl init failed")

// AnyDevice accepts whichever gamepad shows up first.
const AnyDevice = track.AnyDevice

type Options struct {
	// Device selects the gamepad by enumeration position, or AnyDevice.
	Device int
	DB     *mapping.DB
	Logger *slog.Logger
}

// Source is the SDL event source for a single active gamepad.
type Source struct {
	opts   Options
	logger *slog.Logger
	track  track.Tracker
	// active is nil while no gamepad is open, including while a removed
	// one is still draining.
	active *handle
}

// Open feeds the mapping database to SDL and initializes the SDL gamepad
// and video subsystems. Call Close when done.
func Open(opts Options) (*Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// SDL reads the mapping hint while the gamepad subsystem starts up.
	entries := opts.DB.ForPlatform(runtime.GOOS)
	if len(entries) > 0 {
		if sdl.SetHint(sdl.HintGamecontrollerConfig, mapping.Join(entries)) {
			logger.Info("gamepad mappings loaded", "entries", len(entries), "platform", mapping.PlatformName(runtime.GOOS))
		} else {
			logger.Warn("gamepad mappings rejected", "error", sdl.GetError())
		}
	}

	if !sdl.Init(sdl.InitVideo | sdl.InitGamepad) {
		return nil, fmt.Errorf("%w: %s", ErrInit, sdl.GetError())
	}
	logger.Info("SDL3 gamepad subsystem initialized")

	return &Source{
		opts:   opts,
		logger: logger,
		track:  track.Tracker{Device: opts.Device},
	}, nil
}

// Close releases the active gamepad, if any, and shuts SDL down.
func (s *Source) Close() {
	if s.active != nil {
		s.active.Close()
		s.active = nil
	}
	sdl.Quit()
}

// Poll returns the next translated event. Events for gamepads other than
// the active one are consumed and skipped. A removed gamepad's events that
// were queued before the removal are still returned.
func (s *Source) Poll() (gamepad.Event, bool) {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		if ev, ok := s.translate(&event); ok {
			return ev, true
		}
	}
	s.track.Drained()
	return nil, false
}

func (s *Source) translate(event *sdl.Event) (gamepad.Event, bool) {
	switch event.Type() {
	case sdl.EventQuit:
		return gamepad.Quit{}, true

	case sdl.EventGamepadAdded:
		return s.open(event.GDevice().Which)

	case sdl.EventGamepadRemoved:
		id := event.GDevice().Which
		if !s.track.Remove(track.ID(id)) {
			return nil, false
		}
		s.logger.Info("Controller removed", "name", s.active.name)
		s.active.Close()
		s.active = nil
		return gamepad.Disconnect{}, true

	case sdl.EventGamepadButtonDown:
		be := event.GButton()
		if !s.accepts(be.Which) {
			return nil, false
		}
		return gamepad.ButtonDown{Button: buttonFromSDL(sdl.GamepadButton(be.Button))}, true

	case sdl.EventGamepadButtonUp:
		be := event.GButton()
		if !s.accepts(be.Which) {
			return nil, false
		}
		return gamepad.ButtonUp{Button: buttonFromSDL(sdl.GamepadButton(be.Button))}, true

	case sdl.EventGamepadAxisMotion:
		ae := event.GAxis()
		if !s.accepts(ae.Which) {
			return nil, false
		}
		axis, ok := axisFromSDL(sdl.GamepadAxis(ae.Axis))
		if !ok {
			return gamepad.Unknown{Code: uint32(event.Type())}, true
		}
		return gamepad.AxisMotion{Axis: axis, Value: ae.Value}, true

	case sdl.EventJoystickButtonDown:
		je := event.JButton()
		if !s.accepts(je.Which) {
			return nil, false
		}
		return gamepad.AuxButtonDown{Index: int(je.Button)}, true

	case sdl.EventJoystickButtonUp:
		je := event.JButton()
		if !s.accepts(je.Which) {
			return nil, false
		}
		return gamepad.AuxButtonUp{Index: int(je.Button)}, true

	case sdl.EventJoystickHatMotion:
		he := event.JHat()
		if !s.accepts(he.Which) {
			return nil, false
		}
		return gamepad.HatMotion{Mask: gamepad.Hat(he.Value)}, true

	case sdl.EventJoystickAxisMotion, sdl.EventJoystickAdded, sdl.EventJoystickRemoved:
		// Covered by the gamepad channel.
		return nil, false
	}
	return gamepad.Unknown{Code: uint32(event.Type())}, true
}

func (s *Source) accepts(id sdl.JoystickID) bool {
	return s.track.Accepts(track.ID(id))
}

// open takes id as the active gamepad when the selection allows it.
func (s *Source) open(id sdl.JoystickID) (gamepad.Event, bool) {
	index := slices.Index(sdl.GetGamepads(), id)
	if !s.track.Wants(track.ID(id), index) {
		if s.active != nil {
			if s.active.id != id {
				s.logger.Info("Ignoring additional controller", "id", id, "active", s.active.name)
			}
		} else {
			s.logger.Debug("Skipping controller outside selection", "id", id, "index", index, "want", s.opts.Device)
		}
		return nil, false
	}

	h, err := openHandle(id)
	if err != nil {
		s.logger.Warn("Failed to open controller", "id", id, "error", err)
		return nil, false
	}
	h.name = s.resolveName(h)
	s.track.Activate(track.ID(id))
	s.active = h

	s.logger.Info("Controller added",
		"name", h.name,
		"path", orNA(h.path()),
		"vid_pid", fmt.Sprintf("%04x:%04x", h.vendor, h.product),
		"layout", h.layout,
		"rumble", h.rumble,
	)
	return gamepad.Connect{Index: index, Name: h.name, Layout: h.layout}, true
}

// resolveName prefers SDL's name, then the mapping database.
func (s *Source) resolveName(h *handle) string {
	if n := sdl.GetGamepadName(h.pad); n != "" {
		return n
	}
	if e, ok := s.opts.DB.ByDevice(runtime.GOOS, h.vendor, h.product); ok {
		return e.Name
	}
	return "Unknown"
}

// Rumble sends fb to the active gamepad. Without one it does nothing.
func (s *Source) Rumble(fb gamepad.Feedback) {
	if s.active == nil || !s.active.rumble {
		return
	}
	if !sdl.RumbleJoystick(s.active.joy, fb.Low, fb.High, uint32(fb.Duration.Milliseconds())) {
		s.logger.Debug("rumble failed", "error", sdl.GetError())
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
