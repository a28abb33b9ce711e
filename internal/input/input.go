// Package input defines the host events consumed by the renderer.
package input

// Kind identifies the host event that produced an Event.
type Kind int

const (
	PointerMove Kind = iota
	PointerLeave
	TouchMove
	TouchEnd
	Resize
)

func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerLeave:
		return "pointer-leave"
	case TouchMove:
		return "touch-move"
	case TouchEnd:
		return "touch-end"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is a single host notification. X and Y are set for pointer and touch
// moves; Width, Height and Ratio are set for resizes. All coordinates are CSS pixels.
type Event struct {
	Kind   Kind
	X, Y   float64
	Width  float64
	Height float64
	Ratio  float64
}

// Handler receives events. Handlers run on the frame thread and must return immediately.
type Handler func(Event)
