// Package surface owns the drawing surface: its CSS size, device pixel ratio
// and backing buffer, plus the Canvas primitives the renderers draw with.
package surface

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Viewport is the displayed size of the surface in CSS pixels and the device
// pixel ratio it is rendered at.
type Viewport struct {
	Width  float64
	Height float64
	Ratio  float64
}

// Area returns the viewport area in square CSS pixels.
func (v Viewport) Area() float64 {
	return v.Width * v.Height
}

// Manager tracks the surface geometry. The backing buffer is always the CSS
// size multiplied by the pixel ratio, and drawing goes through a uniform
// scale of Ratio so callers keep working in CSS pixels.
type Manager struct {
	viewport Viewport
	bufW     int
	bufH     int
}

// Configure sizes the buffer to width*ratio x height*ratio and sets the
// displayed size to width x height. Calling it again with the same arguments
// changes nothing. A non-positive ratio is treated as 1.
func (m *Manager) Configure(width, height, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	width = math.Max(width, 0)
	height = math.Max(height, 0)

	m.viewport = Viewport{Width: width, Height: height, Ratio: ratio}
	m.bufW = int(math.Round(width * ratio))
	m.bufH = int(math.Round(height * ratio))
}

// Viewport returns the current displayed size and pixel ratio.
func (m *Manager) Viewport() Viewport {
	return m.viewport
}

// BufferSize returns the backing buffer dimensions in device pixels.
func (m *Manager) BufferSize() (int, int) {
	return m.bufW, m.bufH
}

// Scale returns the transform applied to CSS-pixel drawing coordinates.
func (m *Manager) Scale() float64 {
	if m.viewport.Ratio <= 0 {
		return 1
	}
	return m.viewport.Ratio
}

// Canvas is the host drawing surface. Coordinates are CSS pixels; alpha is in
// [0,1]. Glow primitives composite additively, the rest alpha-blend.
type Canvas interface {
	// Clear fills the whole surface with c.
	Clear(c colorful.Color)
	// VerticalGradient fills the rectangle from top at its upper edge to bottom at its lower edge.
	VerticalGradient(x, y, w, h float64, top, bottom colorful.Color)
	FillRect(x, y, w, h float64, c colorful.Color, alpha float64)
	// GlowRect draws a soft halo extending blur pixels around the rectangle.
	GlowRect(x, y, w, h, blur float64, c colorful.Color, alpha float64)
	// FadeRect fills the rectangle with alpha fading to zero at its lower edge.
	FadeRect(x, y, w, h float64, c colorful.Color, alpha float64)
	FillCircle(cx, cy, r float64, c colorful.Color, alpha float64)
	// GlowCircle draws a radial halo of radius r fading to zero at its rim.
	GlowCircle(cx, cy, r float64, c colorful.Color, alpha float64)
}
