// Package window is the SDL3 graphics sink: it owns the overlay window and
// draws each frame of directives into it.
package window

import (
	"errors"
	"fmt"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/GamepadTest/internal/overlay"
)

// ErrInit is returned when the window or its renderer cannot be created.
// It is the only fatal error of the program.
var ErrInit = errors.New("window init failed")

type Window struct {
	win *sdl.Window
	ren *sdl.Renderer
}

// Open creates the window and an accelerated renderer. The SDL video
// subsystem must already be initialized.
func Open(title string) (*Window, error) {
	win := sdl.CreateWindow(title, overlay.Width, overlay.Height, 0)
	if win == nil {
		return nil, fmt.Errorf("%w: create window: %s", ErrInit, sdl.GetError())
	}
	ren := sdl.CreateRenderer(win, "")
	if ren == nil {
		err := fmt.Errorf("%w: create renderer: %s", ErrInit, sdl.GetError())
		sdl.DestroyWindow(win)
		return nil, err
	}
	return &Window{win: win, ren: ren}, nil
}

func (w *Window) Close() {
	if w.ren != nil {
		sdl.DestroyRenderer(w.ren)
		w.ren = nil
	}
	if w.win != nil {
		sdl.DestroyWindow(w.win)
		w.win = nil
	}
}

// Draw clears the window, draws frame in order and presents it.
func (w *Window) Draw(frame []overlay.Directive) {
	w.setColor(overlay.Background)
	sdl.RenderClear(w.ren)
	for _, d := range frame {
		w.draw(d)
	}
	sdl.RenderPresent(w.ren)
}

func (w *Window) setColor(c overlay.Color) {
	sdl.SetRenderDrawColor(w.ren, c.R, c.G, c.B, c.A)
}

func (w *Window) draw(d overlay.Directive) {
	if len(d.Points) == 0 {
		return
	}
	w.setColor(d.Color)
	p := d.Points[0]

	switch d.Kind {
	case overlay.Text:
		sdl.RenderDebugText(w.ren, float32(p.X), float32(p.Y), d.Text)
	case overlay.OutlineCircle:
		w.polyline(overlay.CirclePoints(p, d.Radius, overlay.SegmentsFor(d.Radius)))
	case overlay.FilledCircle:
		w.spans(overlay.CircleSpans(p, d.Radius))
	case overlay.OutlineTriangle:
		if len(d.Points) == 3 {
			w.polyline([]overlay.Point{d.Points[0], d.Points[1], d.Points[2], d.Points[0]})
		}
	case overlay.FilledTriangle:
		if len(d.Points) == 3 {
			w.spans(overlay.TriangleSpans(d.Points[0], d.Points[1], d.Points[2]))
		}
	case overlay.OutlineRectangle:
		sdl.RenderRect(w.ren, rectOf(d))
	case overlay.FilledRectangle:
		if d.Size.W > 0 && d.Size.H > 0 {
			sdl.RenderFillRect(w.ren, rectOf(d))
		}
	}
}

func (w *Window) polyline(pts []overlay.Point) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		sdl.RenderLine(w.ren, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
	}
}

func (w *Window) spans(spans []overlay.Span) {
	for _, s := range spans {
		sdl.RenderLine(w.ren, float32(s.X0), float32(s.Y), float32(s.X1), float32(s.Y))
	}
}

func rectOf(d overlay.Directive) *sdl.FRect {
	p := d.Points[0]
	return &sdl.FRect{X: float32(p.X), Y: float32(p.Y), W: float32(d.Size.W), H: float32(d.Size.H)}
}
