package overlay

import "math"

// Span is one horizontal run of pixels at row Y from X0 to X1 inclusive.
type Span struct {
	Y  float64
	X0 float64
	X1 float64
}

// CirclePoints returns a closed polyline approximating the circle outline:
// segments+1 points, the last equal to the first.
func CirclePoints(c Point, r float64, segments int) []Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments+1)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	pts[segments] = pts[0]
	return pts
}

// SegmentsFor picks a segment count that keeps outline chords short.
func SegmentsFor(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 4))
	return max(n, 12)
}

// CircleSpans covers a filled circle with one span per pixel row.
func CircleSpans(c Point, r float64) []Span {
	if r <= 0 {
		return nil
	}
	top := math.Ceil(c.Y - r)
	bottom := math.Floor(c.Y + r)
	spans := make([]Span, 0, int(bottom-top)+1)
	for y := top; y <= bottom; y++ {
		dy := y - c.Y
		dx := math.Sqrt(math.Max(r*r-dy*dy, 0))
		spans = append(spans, Span{Y: y, X0: c.X - dx, X1: c.X + dx})
	}
	return spans
}

// TriangleSpans covers a filled triangle with one span per pixel row by
// intersecting each row with the three edges.
func TriangleSpans(a, b, c Point) []Span {
	top := math.Ceil(min(a.Y, b.Y, c.Y))
	bottom := math.Floor(max(a.Y, b.Y, c.Y))
	edges := [3][2]Point{{a, b}, {b, c}, {c, a}}

	var spans []Span
	for y := top; y <= bottom; y++ {
		x0, x1 := math.Inf(1), math.Inf(-1)
		for _, e := range edges {
			p, q := e[0], e[1]
			if p.Y == q.Y {
				if p.Y == y {
					x0 = math.Min(x0, math.Min(p.X, q.X))
					x1 = math.Max(x1, math.Max(p.X, q.X))
				}
				continue
			}
			if y < math.Min(p.Y, q.Y) || y > math.Max(p.Y, q.Y) {
				continue
			}
			x := p.X + (y-p.Y)*(q.X-p.X)/(q.Y-p.Y)
			x0 = math.Min(x0, x)
			x1 = math.Max(x1, x)
		}
		if x0 <= x1 {
			spans = append(spans, Span{Y: y, X0: x0, X1: x1})
		}
	}
	return spans
}
