// Package pointer tracks the latest pointer or touch position.
package pointer

import "github.com/iburimskiy/neon-bars/internal/input"

// State is a snapshot of the pointer. X and Y keep their last value after a
// leave but must be ignored while Active is false.
type State struct {
	X, Y   float64
	Active bool
}

// Tracker records pointer state independently of frame timing.
// The zero value is inactive.
type Tracker struct {
	state State
}

// Handle applies a host event. Non-pointer events are ignored.
func (t *Tracker) Handle(ev input.Event) {
	switch ev.Kind {
	case input.PointerMove, input.TouchMove:
		t.state = State{X: ev.X, Y: ev.Y, Active: true}
	case input.PointerLeave, input.TouchEnd:
		t.state.Active = false
	}
}

// State returns the current pointer state by value.
func (t *Tracker) State() State {
	return t.state
}

// Reset marks the pointer inactive and forgets its position.
func (t *Tracker) Reset() {
	t.state = State{}
}
