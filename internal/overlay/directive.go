// Package overlay turns a controller state into the ordered list of draw
// directives that make up one frame.
package overlay

import "fmt"

// Kind is the shape a directive draws.
type Kind uint8

const (
	OutlineCircle Kind = iota
	FilledCircle
	OutlineTriangle
	FilledTriangle
	OutlineRectangle
	FilledRectangle
	Text
)

var kindNames = [...]string{
	OutlineCircle:    "outline_circle",
	FilledCircle:     "filled_circle",
	OutlineTriangle:  "outline_triangle",
	FilledTriangle:   "filled_triangle",
	OutlineRectangle: "outline_rect",
	FilledRectangle:  "filled_rect",
	Text:             "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText lets frames go over the wire with readable kinds.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown directive kind %q", b)
}

// Filled reports whether the shape is drawn solid.
func (k Kind) Filled() bool {
	return k == FilledCircle || k == FilledTriangle || k == FilledRectangle
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	White  = Color{255, 255, 255, 255}
	Yellow = Color{255, 255, 0, 255}
	Blue   = Color{100, 100, 255, 255}
	Red    = Color{255, 0, 0, 255}
	Green  = Color{0, 255, 0, 255}

	// Background is the clear color sinks paint before the first directive.
	Background = Color{40, 40, 40, 255}
)

// Directive is one draw instruction.
//
// Circles use Points[0] as center plus Radius. Triangles use three Points.
// Rectangles and text use Points[0] as the top-left corner; rectangles
// also carry Size.
type Directive struct {
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
	Radius float64 `json:"radius,omitempty"`
	Size   Size    `json:"size,omitzero"`
	Text   string  `json:"text,omitempty"`
	Color  Color   `json:"color"`
}

func circle(kind Kind, c Point, r float64, col Color) Directive {
	return Directive{Kind: kind, Points: []Point{c}, Radius: r, Color: col}
}

func triangle(kind Kind, a, b, c Point, col Color) Directive {
	return Directive{Kind: kind, Points: []Point{a, b, c}, Color: col}
}

func rect(kind Kind, origin Point, sz Size, col Color) Directive {
	return Directive{Kind: kind, Points: []Point{origin}, Size: sz, Color: col}
}

func label(at Point, s string, col Color) Directive {
	return Directive{Kind: Text, Points: []Point{at}, Text: s, Color: col}
}
