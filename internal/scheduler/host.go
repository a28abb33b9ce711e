package scheduler

import (
	"time"

	"github.com/iburimskiy/neon-bars/internal/input"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

// FrameFunc is invoked by the host once per display refresh. timestamp is
// the host's monotonic frame time.
type FrameFunc func(timestamp time.Duration)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Host is the runtime the scheduler runs inside. All methods are called from,
// and all callbacks delivered on, the single frame thread.
type Host interface {
	// RequestFrame schedules fn for the next refresh.
	RequestFrame(fn FrameFunc) Handle
	// CancelFrame guarantees the request identified by h never runs.
	CancelFrame(h Handle)
	// Viewport reports the current CSS size and device pixel ratio.
	Viewport() surface.Viewport
	// Canvas returns the drawing surface, or nil when none is available.
	Canvas() surface.Canvas
	// Subscribe attaches h to the pointer, touch and resize events. The
	// returned function detaches it.
	Subscribe(h input.Handler) (unsubscribe func())
}
