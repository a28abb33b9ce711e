// Package surfacetest provides a Canvas that records draw calls for tests.
package surfacetest

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-bars/internal/surface"
)

// Op names a recorded Canvas primitive.
type Op string

const (
	OpClear    Op = "clear"
	OpGradient Op = "gradient"
	OpFillRect Op = "fill-rect"
	OpGlowRect Op = "glow-rect"
	OpFadeRect Op = "fade-rect"
	OpFillDot  Op = "fill-circle"
	OpGlowDot  Op = "glow-circle"
)

// Call is one recorded draw call. Unused fields are zero.
type Call struct {
	Op         Op
	X, Y, W, H float64
	R, Blur    float64
	Color      colorful.Color
	Alpha      float64
}

// Recorder implements surface.Canvas by appending every call to Calls.
type Recorder struct {
	Calls []Call
}

var _ surface.Canvas = (*Recorder)(nil)

func (r *Recorder) Clear(c colorful.Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: c, Alpha: 1})
}

func (r *Recorder) VerticalGradient(x, y, w, h float64, top, _ colorful.Color) {
	r.Calls = append(r.Calls, Call{Op: OpGradient, X: x, Y: y, W: w, H: h, Color: top, Alpha: 1})
}

func (r *Recorder) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c, Alpha: alpha})
}

func (r *Recorder) GlowRect(x, y, w, h, blur float64, c colorful.Color, alpha float64) {
	r.Calls = append(r.Calls, Call{Op: OpGlowRect, X: x, Y: y, W: w, H: h, Blur: blur, Color: c, Alpha: alpha})
}

func (r *Recorder) FadeRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	r.Calls = append(r.Calls, Call{Op: OpFadeRect, X: x, Y: y, W: w, H: h, Color: c, Alpha: alpha})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c colorful.Color, alpha float64) {
	r.Calls = append(r.Calls, Call{Op: OpFillDot, X: cx, Y: cy, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) GlowCircle(cx, cy, rad float64, c colorful.Color, alpha float64) {
	r.Calls = append(r.Calls, Call{Op: OpGlowDot, X: cx, Y: cy, R: rad, Color: c, Alpha: alpha})
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of op in order.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
