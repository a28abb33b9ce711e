// Package particle implements the ambient field of drifting, twinkling point
// lights drawn beneath the bar layers.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

// Particle is a single point light. Speed is in CSS pixels per 60 Hz frame,
// Twinkle in radians per 60 Hz frame.
type Particle struct {
	X, Y    float64
	Radius  float64
	Speed   float64
	Opacity float64
	Color   colorful.Color
	Twinkle float64
}

type swatch struct {
	weight float64
	color  colorful.Color
}

// palette weights sum to 1.
var palette = []swatch{
	{0.3, colorful.Color{R: 1, G: 1, B: 1}},
	{0.2, colorful.Color{R: 1, G: 215.0 / 255, B: 0}},
	{0.2, colorful.Color{R: 1, G: 105.0 / 255, B: 180.0 / 255}},
	{0.2, colorful.Color{R: 100.0 / 255, G: 149.0 / 255, B: 237.0 / 255}},
	{0.1, colorful.Color{R: 1, G: 0, B: 1}},
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// Field owns every particle for one mount.
type Field struct {
	particles []Particle
	width     float64
	height    float64
	speed     float64
	intensity float64
	rng       *rand.Rand
}

// NewField returns an empty field. speed scales drift and twinkle rates,
// intensity scales opacity.
func NewField(speed, intensity float64, rng *rand.Rand) *Field {
	return &Field{speed: speed, intensity: intensity, rng: rng}
}

// Count returns the number of particles for a viewport of the given area.
func Count(area float64) int {
	return int(math.Floor(area * config.ParticleDensity))
}

// Initialize replaces the field with Count(width*height) new particles.
func (f *Field) Initialize(width, height float64) {
	f.width, f.height = width, height
	n := Count(width * height)
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:       f.rng.Float64() * width,
			Y:       f.rng.Float64() * height,
			Radius:  between(f.rng, 0.5, 2.0),
			Speed:   between(f.rng, 0.1, 0.3),
			Opacity: between(f.rng, 0.1, 0.5),
			Color:   pick(f.rng.Float64()),
			Twinkle: between(f.rng, 0.01, 0.03),
		}
	}
}

// Resize maps particle positions into the new viewport. The particle count is
// kept for the lifetime of the mount. An empty viewport (a minimized window)
// leaves the field untouched.
func (f *Field) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if f.width > 0 && f.height > 0 {
		sx, sy := width/f.width, height/f.height
		for i := range f.particles {
			f.particles[i].X *= sx
			f.particles[i].Y *= sy
		}
	}
	f.width, f.height = width, height
}

// Advance moves every particle upward. Particles leaving the top re-enter
// below the bottom edge at a new horizontal position.
func (f *Field) Advance(dt float64) {
	frames := dt * config.FrameRate
	for i := range f.particles {
		p := &f.particles[i]
		p.Y -= p.Speed * f.speed * frames
		if p.Y < 0 {
			p.Y = f.height + p.Radius
			p.X = f.rng.Float64() * f.width
		}
	}
}

// Render draws each particle as an additive halo with a brighter core. t is
// the frame time in seconds.
func (f *Field) Render(c surface.Canvas, t float64) {
	frames := t * config.FrameRate
	for i := range f.particles {
		p := &f.particles[i]
		alpha := p.Opacity * (0.5 + 0.5*math.Sin(frames*p.Twinkle*f.speed)) * f.intensity
		if alpha > 1 {
			alpha = 1
		}
		if alpha <= 0 {
			continue
		}
		c.GlowCircle(p.X, p.Y, p.Radius*4, p.Color, alpha*0.6)
		c.FillCircle(p.X, p.Y, p.Radius, p.Color.BlendRgb(white, 0.5), alpha)
	}
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles exposes the particles for inspection. Callers must not modify them.
func (f *Field) Particles() []Particle {
	return f.particles
}

func pick(u float64) colorful.Color {
	acc := 0.0
	for _, s := range palette {
		acc += s.weight
		if u < acc {
			return s.color
		}
	}
	return palette[len(palette)-1].color
}

func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
