// Package loop runs the fixed-rate poll/apply/render cycle.
package loop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soar/GamepadTest/internal/gamepad"
	ilog "github.com/soar/GamepadTest/internal/log"
	"github.com/soar/GamepadTest/internal/overlay"
)

const DefaultInterval = 16 * time.Millisecond

// Source yields queued input events without blocking. ok is false once the
// queue is drained for this iteration.
type Source interface {
	Poll() (ev gamepad.Event, ok bool)
}

// Actuator receives haptic feedback requests. Delivery is fire-and-forget.
type Actuator interface {
	Rumble(fb gamepad.Feedback)
}

// Sink draws one frame of directives.
type Sink interface {
	Draw(frame []overlay.Directive)
}

// Observer is notified after every rendered frame. Implementations must
// not block and must not retain frame beyond the call unless they copy it.
type Observer interface {
	Observe(snap gamepad.Snapshot, frame []overlay.Directive)
}

// Loop owns the controller state and drives it from Source.
type Loop struct {
	Source    Source
	Actuator  Actuator
	Sink      Sink
	Observers []Observer
	Interval  time.Duration
	// Delay sleeps between iterations; time.Sleep when nil.
	Delay  func(time.Duration)
	Logger *slog.Logger

	state  gamepad.State
	name   string
	layout string
	frames uint64
}

// State exposes the current controller state for inspection.
func (l *Loop) State() *gamepad.State {
	return &l.state
}

// Frames reports how many frames have been rendered.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run iterates until a Quit event arrives. Events after the Quit in the same
// batch are left unread and no further frame is drawn.
func (l *Loop) Run() {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	delay := l.Delay
	if delay == nil {
		delay = time.Sleep
	}

	for !l.Step() {
		delay(interval)
	}
	l.logger().Info("quit requested", "frames", l.frames)
}

// Step runs a single drain+render iteration and reports whether a Quit
// was seen.
func (l *Loop) Step() (quit bool) {
	if l.drain(l.logger()) {
		return true
	}
	l.render()
	return false
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Loop) drain(logger *slog.Logger) (quit bool) {
	for {
		ev, ok := l.Source.Poll()
		if !ok {
			return false
		}

		switch e := ev.(type) {
		case gamepad.Connect:
			l.name, l.layout = e.Name, e.Layout
			logger.Info("controller active", "index", e.Index, "name", e.Name, "layout", e.Layout)
		case gamepad.Disconnect:
			logger.Info("controller inactive", "name", l.name)
		}

		if logger.Enabled(context.Background(), ilog.LevelTrace) {
			logger.Log(context.Background(), ilog.LevelTrace, "event", "event", fmt.Sprintf("%T%+v", ev, ev))
		}

		res, err := gamepad.Apply(&l.state, ev)
		if err != nil {
			logger.Debug("event ignored", "error", err)
			continue
		}

		if res.Feedback != nil && l.Actuator != nil {
			l.Actuator.Rumble(*res.Feedback)
		}
		if res.Quit {
			return true
		}
	}
}

func (l *Loop) render() {
	frame := overlay.Render(&l.state, l.name)
	l.frames++
	if l.Sink != nil {
		l.Sink.Draw(frame)
	}
	if len(l.Observers) == 0 {
		return
	}
	snap := l.state.Snapshot()
	snap.Name = l.name
	snap.ControllerType = l.layout
	for _, o := range l.Observers {
		o.Observe(snap, frame)
	}
}
