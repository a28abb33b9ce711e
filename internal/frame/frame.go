// Package frame defines the context handed to every renderer for one frame.
package frame

import (
	"github.com/iburimskiy/neon-bars/internal/pointer"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

// Context is built once per frame by the scheduler and passed down by
// pointer. Renderers must not keep it past the call.
type Context struct {
	// Time is seconds since the mount's first frame.
	Time float64
	// Delta is seconds since the previous frame, capped to avoid jumps after stalls.
	Delta    float64
	Pointer  pointer.State
	Viewport surface.Viewport
}
