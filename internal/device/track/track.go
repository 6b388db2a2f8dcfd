// Package track decides which device's events reach the dispatcher.
//
// One device is active at a time. When it is removed it keeps draining:
// events it queued before the removal are still delivered until the queue
// runs dry or another device becomes active.
package track

// ID is a device instance id as reported by the input backend.
type ID uint32

// AnyDevice accepts whichever device shows up first.
const AnyDevice = -1

type Tracker struct {
	// Device is the enumeration position to accept, or AnyDevice.
	Device int

	active     ID
	hasActive  bool
	draining   ID
	isDraining bool
}

// Active returns the active device id, if any.
func (t *Tracker) Active() (ID, bool) {
	return t.active, t.hasActive
}

// Wants reports whether a newly added device at enumeration position
// index should be opened.
func (t *Tracker) Wants(id ID, index int) bool {
	if t.hasActive {
		return false
	}
	return t.Device == AnyDevice || index == t.Device
}

// Activate makes id the active device. Any device still draining stops
// being delivered.
func (t *Tracker) Activate(id ID) {
	t.active, t.hasActive = id, true
	t.isDraining = false
}

// Remove reports whether id was the active device. If it was, it moves to
// draining.
func (t *Tracker) Remove(id ID) bool {
	if !t.hasActive || t.active != id {
		return false
	}
	t.hasActive = false
	t.draining, t.isDraining = id, true
	return true
}

// Accepts reports whether events from id are delivered.
func (t *Tracker) Accepts(id ID) bool {
	return (t.hasActive && t.active == id) || (t.isDraining && t.draining == id)
}

// Drained ends draining once the pending events have all been read.
func (t *Tracker) Drained() {
	t.isDraining = false
}
