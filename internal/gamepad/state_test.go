package gamepad_test

import (
	"encoding/json"
	"testing"

	"github.com/soar/GamepadTest/internal/gamepad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroStateIsEmpty(t *testing.T) {
	var s gamepad.State
	assert.False(t, s.Connected())
	assert.Equal(t, gamepad.Stick{}, s.LeftStick())
	assert.Equal(t, gamepad.Stick{}, s.RightStick())
	assert.Zero(t, s.LeftTrigger())
	assert.Zero(t, s.RightTrigger())
	assert.Equal(t, gamepad.HatCentered, s.Dpad())
	for b := gamepad.Button(0); b < gamepad.ButtonCount; b++ {
		assert.False(t, s.Pressed(b), b.String())
	}
}

func TestButtonNames(t *testing.T) {
	assert.Equal(t, "a", gamepad.ButtonA.String())
	assert.Equal(t, "guide", gamepad.ButtonGuide.String())
	assert.Equal(t, "rb", gamepad.ButtonRightShoulder.String())
	assert.Equal(t, "unknown", gamepad.ButtonCount.String())
	assert.Equal(t, 11, int(gamepad.ButtonCount))
}

func TestHatHas(t *testing.T) {
	h := gamepad.HatUp | gamepad.HatRight
	assert.True(t, h.Has(gamepad.HatUp))
	assert.True(t, h.Has(gamepad.HatRight))
	assert.True(t, h.Has(gamepad.HatUp|gamepad.HatRight))
	assert.False(t, h.Has(gamepad.HatDown))
	assert.False(t, h.Has(gamepad.HatCentered))
}

func TestSnapshotMapsFields(t *testing.T) {
	var s gamepad.State
	apply(t, &s,
		gamepad.Connect{},
		gamepad.ButtonDown{Button: gamepad.ButtonBack},
		gamepad.ButtonDown{Button: gamepad.ButtonLeftStick},
		gamepad.HatMotion{Mask: gamepad.HatDown | gamepad.HatLeft},
		gamepad.AxisMotion{Axis: gamepad.AxisRightTrigger, Value: 32767},
	)

	snap := s.Snapshot()
	assert.True(t, snap.Connected)
	assert.True(t, snap.Buttons.Select)
	assert.False(t, snap.Buttons.Start)
	assert.True(t, snap.Sticks.Left.Pressed)
	assert.Equal(t, gamepad.DpadState{Down: true, Left: true}, snap.Dpad)
	assert.Equal(t, 1.0, snap.Triggers.RT.Value)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"select":true`)
	assert.Contains(t, string(data), `"rt":{"value":1}`)
}

func TestComputeDelta(t *testing.T) {
	base := gamepad.Snapshot{Connected: true, Name: "pad"}

	t.Run("identical", func(t *testing.T) {
		assert.True(t, gamepad.ComputeDelta(base, base).IsEmpty())
	})

	t.Run("analog jitter ignored", func(t *testing.T) {
		next := base
		next.Sticks.Left.Position.X = 0.005
		next.Triggers.LT.Value = 0.009
		assert.True(t, gamepad.ComputeDelta(base, next).IsEmpty())
	})

	t.Run("stick movement", func(t *testing.T) {
		next := base
		next.Sticks.Right.Position.Y = -0.5
		d := gamepad.ComputeDelta(base, next)
		require.NotNil(t, d.Sticks)
		assert.Equal(t, -0.5, d.Sticks.Right.Position.Y)
		assert.Nil(t, d.Buttons)
		assert.Nil(t, d.Triggers)
	})

	t.Run("connection and buttons", func(t *testing.T) {
		next := base
		next.Connected = false
		next.Buttons.A = true
		d := gamepad.ComputeDelta(base, next)
		require.NotNil(t, d.Connected)
		assert.False(t, *d.Connected)
		require.NotNil(t, d.Buttons)
		assert.True(t, d.Buttons.A)
		assert.Nil(t, d.Name)
	})
}

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, gamepad.LayoutXbox, gamepad.LayoutFor(0x045E, 0x0B13))
	assert.Equal(t, gamepad.LayoutPlayStation, gamepad.LayoutFor(0x054C, 0x0CE6))
	assert.Equal(t, gamepad.LayoutSwitchPro, gamepad.LayoutFor(0x057E, 0x2009))
	assert.Equal(t, gamepad.LayoutGeneric, gamepad.LayoutFor(0x1234, 0x5678))
}

func TestNormalizeTriggerRange(t *testing.T) {
	assert.Equal(t, 0.0, gamepad.NormalizeTrigger(-32768))
	assert.Equal(t, 1.0, gamepad.NormalizeTrigger(32767))
	assert.Equal(t, -1.0, gamepad.NormalizeAxis(-32768))
}
