package loop

import "github.com/soar/GamepadTest/internal/gamepad"

// Queue is a Source fed from other goroutines (signal handlers, the tray).
type Queue struct {
	ch chan gamepad.Event
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan gamepad.Event, size)}
}

// Push enqueues ev and reports false if the queue was full.
func (q *Queue) Push(ev gamepad.Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Quit enqueues a Quit event and reports false if the queue was full.
func (q *Queue) Quit() bool {
	return q.Push(gamepad.Quit{})
}

func (q *Queue) Poll() (gamepad.Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return nil, false
	}
}

type merged []Source

// Merge polls each source in order; a source is only consulted once every
// source before it is empty.
func Merge(sources ...Source) Source {
	return merged(sources)
}

func (m merged) Poll() (gamepad.Event, bool) {
	for _, s := range m {
		if ev, ok := s.Poll(); ok {
			return ev, true
		}
	}
	return nil, false
}
