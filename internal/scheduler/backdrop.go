package scheduler

import (
	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-bars/internal/frame"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

var (
	skyTop    = colorful.Color{R: 0.02, G: 0.005, B: 0.06}
	skyBottom = colorful.Color{R: 0.09, G: 0.02, B: 0.17}

	haloOuter = colorful.Color{R: 1, G: 0.17, B: 0.84}
	haloInner = colorful.Color{R: 1, G: 0.9, B: 0.97}
)

const (
	haloRadius    = 140
	haloCore      = 40
	haloOpacity   = 0.18
	haloFrequency = 7.0
	haloDamping   = 1.0
)

func drawBackdrop(c surface.Canvas, f *frame.Context) {
	c.VerticalGradient(0, 0, f.Viewport.Width, f.Viewport.Height, skyTop, skyBottom)
}

// halo is the soft glow under the pointer. Its position and opacity follow
// the pointer through a critically damped spring so it eases in, trails
// slightly and fades out after a leave.
type halo struct {
	spring harmonica.Spring
	dt     float64

	x, vx float64
	y, vy float64
	a, va float64
	shown bool
}

func newHalo() *halo {
	h := &halo{}
	h.step(harmonica.FPS(60))
	return h
}

// step rebuilds the spring when the frame interval changes so the halo
// settles in the same wall-clock time at any refresh rate.
func (h *halo) step(dt float64) {
	if dt == h.dt && dt > 0 {
		return
	}
	h.dt = dt
	h.spring = harmonica.NewSpring(dt, haloFrequency, haloDamping)
}

func (h *halo) update(f *frame.Context) {
	h.step(f.Delta)
	target := 0.0
	if f.Pointer.Active {
		target = 1
		if !h.shown {
			h.x, h.y = f.Pointer.X, f.Pointer.Y
			h.vx, h.vy = 0, 0
			h.shown = true
		}
		h.x, h.vx = h.spring.Update(h.x, h.vx, f.Pointer.X)
		h.y, h.vy = h.spring.Update(h.y, h.vy, f.Pointer.Y)
	}
	h.a, h.va = h.spring.Update(h.a, h.va, target)
	if h.a < 0.001 && !f.Pointer.Active {
		h.a, h.va = 0, 0
		h.shown = false
	}
}

func (h *halo) render(c surface.Canvas) {
	if h.a <= 0 {
		return
	}
	a := h.a
	if a > 1 {
		a = 1
	}
	c.GlowCircle(h.x, h.y, haloRadius, haloOuter, haloOpacity*a)
	c.GlowCircle(h.x, h.y, haloCore, haloInner, haloOpacity*0.7*a)
}
