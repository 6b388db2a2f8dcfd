package overlay_test

import (
	"encoding/json"
	"testing"

	"github.com/soar/GamepadTest/internal/gamepad"
	"github.com/soar/GamepadTest/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateOf(t *testing.T, events ...gamepad.Event) *gamepad.State {
	t.Helper()
	s := &gamepad.State{}
	for _, ev := range events {
		_, err := gamepad.Apply(s, ev)
		require.NoError(t, err)
	}
	return s
}

func kinds(ds []overlay.Directive) []overlay.Kind {
	out := make([]overlay.Kind, len(ds))
	for i, d := range ds {
		out[i] = d.Kind
	}
	return out
}

// find returns the directives drawn at p with the given kind.
func find(ds []overlay.Directive, k overlay.Kind, p overlay.Point) []overlay.Directive {
	var out []overlay.Directive
	for _, d := range ds {
		if d.Kind == k && len(d.Points) > 0 && d.Points[0] == p {
			out = append(out, d)
		}
	}
	return out
}

func TestRenderDisconnected(t *testing.T) {
	s := stateOf(t, gamepad.ButtonDown{Button: gamepad.ButtonA})
	ds := overlay.Render(s, "pad")
	require.Len(t, ds, 1)
	assert.Equal(t, overlay.Text, ds[0].Kind)
	assert.Equal(t, "NO CONTROLLER DETECTED", ds[0].Text)
	assert.Equal(t, overlay.Point{X: 462, Y: 396}, ds[0].Points[0])
}

func TestRenderIdleOrder(t *testing.T) {
	s := stateOf(t, gamepad.Connect{})
	ds := overlay.Render(s, "")

	want := []overlay.Kind{
		overlay.Text,
		overlay.OutlineCircle, overlay.OutlineCircle,
		overlay.OutlineCircle, overlay.OutlineCircle,
		overlay.OutlineCircle, overlay.OutlineCircle, overlay.OutlineCircle, overlay.OutlineCircle,
		overlay.OutlineTriangle, overlay.OutlineTriangle, overlay.OutlineTriangle, overlay.OutlineTriangle,
		overlay.OutlineRectangle, overlay.OutlineRectangle,
		overlay.OutlineRectangle, overlay.FilledRectangle,
		overlay.OutlineRectangle, overlay.FilledRectangle,
		overlay.OutlineCircle, overlay.OutlineCircle, overlay.OutlineCircle,
	}
	assert.Equal(t, want, kinds(ds))
	assert.Equal(t, "Unknown", ds[0].Text)
	assert.Equal(t, overlay.Point{X: 10, Y: 10}, ds[0].Points[0])

	// empty trigger bars
	assert.Zero(t, ds[16].Size.H)
	assert.Zero(t, ds[18].Size.H)
}

func TestRenderIsDeterministic(t *testing.T) {
	s := stateOf(t,
		gamepad.Connect{},
		gamepad.AxisMotion{Axis: gamepad.AxisLeftX, Value: 12000},
		gamepad.AxisMotion{Axis: gamepad.AxisRightTrigger, Value: 20000},
		gamepad.ButtonDown{Button: gamepad.ButtonY},
		gamepad.HatMotion{Mask: gamepad.HatUp | gamepad.HatLeft},
	)
	a, err := json.Marshal(overlay.Render(s, "Xbox Controller"))
	require.NoError(t, err)
	b, err := json.Marshal(overlay.Render(s, "Xbox Controller"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderStickOffsetAndClick(t *testing.T) {
	s := stateOf(t,
		gamepad.Connect{},
		gamepad.AxisMotion{Axis: gamepad.AxisLeftX, Value: 32767},
		gamepad.AxisMotion{Axis: gamepad.AxisLeftY, Value: -32768},
		gamepad.ButtonDown{Button: gamepad.ButtonLeftStick},
	)
	ds := overlay.Render(s, "pad")

	knob := overlay.Point{X: 330, Y: 270}
	assert.Len(t, find(ds, overlay.OutlineCircle, knob), 1)
	filled := find(ds, overlay.FilledCircle, knob)
	require.Len(t, filled, 1)
	assert.Equal(t, 30.0, filled[0].Radius)

	ring := find(ds, overlay.OutlineCircle, overlay.Point{X: 300, Y: 300})
	require.Len(t, ring, 1)
	assert.Equal(t, 60.0, ring[0].Radius)

	// right stick untouched
	assert.Len(t, find(ds, overlay.FilledCircle, overlay.Point{X: 800, Y: 500}), 0)
}

func TestRenderFaceButtons(t *testing.T) {
	cases := []struct {
		button gamepad.Button
		at     overlay.Point
		color  overlay.Color
	}{
		{gamepad.ButtonY, overlay.Point{X: 800, Y: 260}, overlay.Yellow},
		{gamepad.ButtonX, overlay.Point{X: 760, Y: 300}, overlay.Blue},
		{gamepad.ButtonB, overlay.Point{X: 840, Y: 300}, overlay.Red},
		{gamepad.ButtonA, overlay.Point{X: 800, Y: 340}, overlay.Green},
	}
	for _, tc := range cases {
		t.Run(tc.button.String(), func(t *testing.T) {
			idle := overlay.Render(stateOf(t, gamepad.Connect{}), "pad")
			assert.Len(t, find(idle, overlay.OutlineCircle, tc.at), 1)
			assert.Empty(t, find(idle, overlay.FilledCircle, tc.at))

			ds := overlay.Render(stateOf(t, gamepad.Connect{}, gamepad.ButtonDown{Button: tc.button}), "pad")
			filled := find(ds, overlay.FilledCircle, tc.at)
			require.Len(t, filled, 1)
			assert.Equal(t, tc.color, filled[0].Color)
		})
	}
}

func TestRenderDpadDiagonal(t *testing.T) {
	s := stateOf(t, gamepad.Connect{}, gamepad.HatMotion{Mask: gamepad.HatUp | gamepad.HatRight})
	ds := overlay.Render(s, "pad")

	up := overlay.Point{X: 300, Y: 440}
	right := overlay.Point{X: 360, Y: 500}
	down := overlay.Point{X: 300, Y: 560}
	assert.Len(t, find(ds, overlay.FilledTriangle, up), 1)
	assert.Len(t, find(ds, overlay.FilledTriangle, right), 1)
	assert.Empty(t, find(ds, overlay.FilledTriangle, down))
}

func TestRenderDpadInconsistentMaskAccepted(t *testing.T) {
	s := stateOf(t, gamepad.Connect{}, gamepad.HatMotion{Mask: gamepad.HatUp | gamepad.HatDown})
	ds := overlay.Render(s, "pad")

	assert.Len(t, find(ds, overlay.FilledTriangle, overlay.Point{X: 300, Y: 440}), 1)
	assert.Len(t, find(ds, overlay.FilledTriangle, overlay.Point{X: 300, Y: 560}), 1)
}

func TestRenderShouldersAndMenuButtons(t *testing.T) {
	s := stateOf(t,
		gamepad.Connect{},
		gamepad.ButtonDown{Button: gamepad.ButtonRightShoulder},
		gamepad.ButtonDown{Button: gamepad.ButtonStart},
		gamepad.AuxButtonDown{Index: 8},
	)
	ds := overlay.Render(s, "pad")

	rb := find(ds, overlay.FilledRectangle, overlay.Point{X: 750, Y: 130})
	require.Len(t, rb, 1)
	assert.Equal(t, overlay.Size{W: 100, H: 40}, rb[0].Size)
	assert.Empty(t, find(ds, overlay.FilledRectangle, overlay.Point{X: 250, Y: 130}))

	assert.Len(t, find(ds, overlay.FilledCircle, overlay.Point{X: 590, Y: 400}), 1)
	assert.Empty(t, find(ds, overlay.FilledCircle, overlay.Point{X: 510, Y: 400}))
	guide := find(ds, overlay.FilledCircle, overlay.Point{X: 550, Y: 340})
	require.Len(t, guide, 1)
	assert.Equal(t, 30.0, guide[0].Radius)
}

func TestRenderTriggerGauge(t *testing.T) {
	s := stateOf(t,
		gamepad.Connect{},
		gamepad.AxisMotion{Axis: gamepad.AxisLeftTrigger, Value: 32767},
		gamepad.AxisMotion{Axis: gamepad.AxisRightTrigger, Value: 16384},
	)
	ds := overlay.Render(s, "pad")

	lt := find(ds, overlay.FilledRectangle, overlay.Point{X: 170, Y: 130})
	require.Len(t, lt, 1)
	assert.InDelta(t, 120, lt[0].Size.H, 1e-9)
	assert.Equal(t, 40.0, lt[0].Size.W)

	rt := find(ds, overlay.FilledRectangle, overlay.Point{X: 890, Y: 130})
	require.Len(t, rt, 1)
	assert.InDelta(t, 60, rt[0].Size.H, 0.01)

	frame := find(ds, overlay.OutlineRectangle, overlay.Point{X: 890, Y: 130})
	require.Len(t, frame, 1)
	assert.Equal(t, overlay.Size{W: 40, H: 120}, frame[0].Size)
}

func TestKindMarshal(t *testing.T) {
	data, err := json.Marshal(overlay.Directive{Kind: overlay.FilledTriangle})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"filled_triangle"`)
	assert.True(t, overlay.FilledCircle.Filled())
	assert.False(t, overlay.Text.Filled())
}

func TestKindUnmarshalText(t *testing.T) {
	var d overlay.Directive
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"outline_rect","points":[{"x":1,"y":2}]}`), &d))
	assert.Equal(t, overlay.OutlineRectangle, d.Kind)

	var k overlay.Kind
	assert.Error(t, k.UnmarshalText([]byte("hexagon")))
}
