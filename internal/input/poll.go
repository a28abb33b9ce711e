package input

// Sample is the device state read once per host tick. Positions are in CSS
// pixels; Touches holds the active touch points in the order the host
// reports them.
type Sample struct {
	CursorX, CursorY float64
	Focused          bool
	Width, Height    float64
	Touches          []Point
}

// Point is a touch position.
type Point struct {
	X, Y float64
}

// Poller turns successive samples into move, leave and touch events. Hosts
// that only expose polled input state use it to produce the same event
// stream a push-based host would deliver.
type Poller struct {
	hovering bool
	touching bool
	lastX    float64
	lastY    float64
	events   []Event
}

// Step compares s with the previous sample and returns the resulting events.
// The returned slice is reused by the next call.
func (p *Poller) Step(s Sample) []Event {
	p.events = p.events[:0]

	if len(s.Touches) > 0 {
		t := s.Touches[0]
		if !p.touching || t.X != p.lastX || t.Y != p.lastY {
			p.events = append(p.events, Event{Kind: TouchMove, X: t.X, Y: t.Y})
		}
		p.touching = true
		p.hovering = false
		p.lastX, p.lastY = t.X, t.Y
		return p.events
	}
	if p.touching {
		p.touching = false
		p.events = append(p.events, Event{Kind: TouchEnd})
		return p.events
	}

	inside := s.Focused &&
		s.CursorX >= 0 && s.CursorX < s.Width &&
		s.CursorY >= 0 && s.CursorY < s.Height
	switch {
	case inside && (!p.hovering || s.CursorX != p.lastX || s.CursorY != p.lastY):
		p.events = append(p.events, Event{Kind: PointerMove, X: s.CursorX, Y: s.CursorY})
		p.hovering = true
		p.lastX, p.lastY = s.CursorX, s.CursorY
	case !inside && p.hovering:
		p.events = append(p.events, Event{Kind: PointerLeave})
		p.hovering = false
	}
	return p.events
}

// Reset forgets the previous sample.
func (p *Poller) Reset() {
	p.hovering, p.touching = false, false
	p.lastX, p.lastY = 0, 0
}
