package overlay

import "github.com/soar/GamepadTest/internal/gamepad"

// Canvas size the layout is designed for.
const (
	Width  = 1100
	Height = 800
)

const (
	noControllerText = "NO CONTROLLER DETECTED"
	unknownName      = "Unknown"
	glyphSize        = 8

	stickRing      = 60
	stickKnob      = 30
	stickTravel    = 30
	faceRadius     = 20
	faceSpread     = 40
	smallButton    = 20
	guideRadius    = 30
	triggerHeight  = 120
	triggerWidth   = 40
	shoulderWidth  = 100
	shoulderHeight = 40
)

var (
	leftStickCenter  = Point{300, 300}
	rightStickCenter = Point{Width - 300, Height - 300}
	faceCenter       = Point{Width - 300, 300}
	dpadCenter       = Point{300, Height - 300}
	menuCenter       = Point{Width / 2, Height / 2}
)

type faceButton struct {
	button gamepad.Button
	offset Point
	color  Color
}

// Drawn top, left, right, bottom.
var faceButtons = [4]faceButton{
	{gamepad.ButtonY, Point{0, -faceSpread}, Yellow},
	{gamepad.ButtonX, Point{-faceSpread, 0}, Blue},
	{gamepad.ButtonB, Point{faceSpread, 0}, Red},
	{gamepad.ButtonA, Point{0, faceSpread}, Green},
}

type dpadArrow struct {
	dir     gamepad.Hat
	corners [3]Point
}

// Triangle corners relative to dpadCenter; the tip comes first.
var dpadArrows = [4]dpadArrow{
	{gamepad.HatUp, [3]Point{{0, -60}, {-20, -20}, {20, -20}}},
	{gamepad.HatDown, [3]Point{{0, 60}, {-20, 20}, {20, 20}}},
	{gamepad.HatLeft, [3]Point{{-60, 0}, {-20, -20}, {-20, 20}}},
	{gamepad.HatRight, [3]Point{{60, 0}, {20, -20}, {20, 20}}},
}

// Render returns the directives for one frame of s. name labels the device
// and falls back to "Unknown". The result depends only on its arguments.
func Render(s *gamepad.State, name string) []Directive {
	if !s.Connected() {
		at := Point{
			X: Width/2 - float64(len(noControllerText)*glyphSize)/2,
			Y: Height/2 - glyphSize/2,
		}
		return []Directive{label(at, noControllerText, White)}
	}

	if name == "" {
		name = unknownName
	}

	out := make([]Directive, 0, 40)
	out = append(out, label(Point{10, 10}, name, White))

	out = appendStick(out, leftStickCenter, s.LeftStick(), s.Pressed(gamepad.ButtonLeftStick))
	out = appendStick(out, rightStickCenter, s.RightStick(), s.Pressed(gamepad.ButtonRightStick))

	for _, fb := range faceButtons {
		c := offset(faceCenter, fb.offset)
		out = appendToggle(out, OutlineCircle, FilledCircle, s.Pressed(fb.button), func(k Kind) Directive {
			return circle(k, c, faceRadius, fb.color)
		})
	}

	dpad := s.Dpad()
	for _, a := range dpadArrows {
		p0, p1, p2 := offset(dpadCenter, a.corners[0]), offset(dpadCenter, a.corners[1]), offset(dpadCenter, a.corners[2])
		out = appendToggle(out, OutlineTriangle, FilledTriangle, dpad.Has(a.dir), func(k Kind) Directive {
			return triangle(k, p0, p1, p2, White)
		})
	}

	shoulderSize := Size{shoulderWidth, shoulderHeight}
	for _, sh := range []struct {
		button gamepad.Button
		center Point
	}{
		{gamepad.ButtonLeftShoulder, leftStickCenter},
		{gamepad.ButtonRightShoulder, faceCenter},
	} {
		origin := Point{sh.center.X - shoulderWidth/2, sh.center.Y - 150 - shoulderHeight/2}
		out = appendToggle(out, OutlineRectangle, FilledRectangle, s.Pressed(sh.button), func(k Kind) Directive {
			return rect(k, origin, shoulderSize, White)
		})
	}

	out = appendTrigger(out, Point{leftStickCenter.X - shoulderWidth/2 - 80, 130}, s.LeftTrigger())
	out = appendTrigger(out, Point{faceCenter.X + shoulderWidth/2 + 40, 130}, s.RightTrigger())

	for _, mb := range []struct {
		button gamepad.Button
		center Point
		radius float64
	}{
		{gamepad.ButtonBack, offset(menuCenter, Point{-40, 0}), smallButton},
		{gamepad.ButtonStart, offset(menuCenter, Point{40, 0}), smallButton},
		{gamepad.ButtonGuide, offset(menuCenter, Point{0, -60}), guideRadius},
	} {
		out = appendToggle(out, OutlineCircle, FilledCircle, s.Pressed(mb.button), func(k Kind) Directive {
			return circle(k, mb.center, mb.radius, White)
		})
	}

	return out
}

func offset(p, d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// appendToggle always appends the outline and adds the filled variant on top
// when on is set.
func appendToggle(out []Directive, outline, filled Kind, on bool, mk func(Kind) Directive) []Directive {
	out = append(out, mk(outline))
	if on {
		out = append(out, mk(filled))
	}
	return out
}

func appendStick(out []Directive, center Point, st gamepad.Stick, clicked bool) []Directive {
	out = append(out, circle(OutlineCircle, center, stickRing, White))
	knob := Point{center.X + st.X*stickTravel, center.Y + st.Y*stickTravel}
	return appendToggle(out, OutlineCircle, FilledCircle, clicked, func(k Kind) Directive {
		return circle(k, knob, stickKnob, White)
	})
}

// appendTrigger draws the gauge frame and a bar whose height follows v. The
// bar is emitted even when empty so every connected frame has the same
// trigger section.
func appendTrigger(out []Directive, origin Point, v float64) []Directive {
	out = append(out, rect(OutlineRectangle, origin, Size{triggerWidth, triggerHeight}, White))
	return append(out, rect(FilledRectangle, origin, Size{triggerWidth, triggerHeight * v}, White))
}
