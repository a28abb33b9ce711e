// Package bars renders the layered neon bars: per-bar height from the bar's
// oscillators and the pointer, a horizontal color gradient per layer, and a
// glow, core and reflection for every visible bar.
package bars

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/frame"
	"github.com/iburimskiy/neon-bars/internal/oscillator"
	"github.com/iburimskiy/neon-bars/internal/pointer"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

const (
	// driftRate is the slow drift in CSS pixels per second at horizontal speed 1.
	driftRate = 0.5 * config.FrameRate
	// shimmerRate is the fast offset cycling through one bar pitch, in CSS pixels per second.
	shimmerRate = 1.0 * config.FrameRate
	// driftShare is the fraction of the drift offset applied to bar positions.
	driftShare = 0.25

	jitterAmp  = 0.02
	jitterFreq = 0.37

	patternWaves = 4
	influenceMax = 0.3
	glowBoost    = 1.6
	coreShare    = 0.4
	reflection   = 0.35
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Bar is the computed state of one bar for one frame.
type Bar struct {
	X         float64
	Height    float64
	Influence float64
	Color     colorful.Color
}

// Renderer draws the bar layers. Layers must be ordered back to front and
// the arena must have been generated from the same layers.
type Renderer struct {
	layers []config.LayerConfig
	arena  *oscillator.Arena
}

// NewRenderer returns a renderer over layers and their oscillator arena.
func NewRenderer(layers []config.LayerConfig, arena *oscillator.Arena) *Renderer {
	return &Renderer{layers: layers, arena: arena}
}

// Render draws every layer back to front.
func (r *Renderer) Render(c surface.Canvas, f *frame.Context) {
	for li := range r.layers {
		r.renderLayer(c, li, f)
	}
}

func (r *Renderer) renderLayer(c surface.Canvas, li int, f *frame.Context) {
	l := &r.layers[li]
	w := f.Viewport.Width
	baselineY := l.Baseline * f.Viewport.Height
	total := TotalBars(l, w)
	offset := Offset(l, f.Time, w)

	for i := 0; i < total; i++ {
		x := float64(i)*l.Pitch() - offset
		if x < -l.BarWidth || x > w {
			continue
		}
		bar := compute(l, r.arena.At(li, i), i, total, x, baselineY, f)
		if bar.Height <= 0 {
			continue
		}
		draw(c, l, bar, baselineY)
	}
}

// Compute returns bar i of layer li for the frame, and false when the bar is
// outside the viewport.
func (r *Renderer) Compute(li, i int, f *frame.Context) (Bar, bool) {
	l := &r.layers[li]
	w := f.Viewport.Width
	total := TotalBars(l, w)
	x := float64(i)*l.Pitch() - Offset(l, f.Time, w)
	if x < -l.BarWidth || x > w {
		return Bar{}, false
	}
	return compute(l, r.arena.At(li, i), i, total, x, l.Baseline*f.Viewport.Height, f), true
}

func compute(l *config.LayerConfig, p *oscillator.Params, i, total int, x, baselineY float64, f *frame.Context) Bar {
	h := f.Viewport.Height
	influence := Influence(l, p, x, baselineY, f.Pointer, h)
	height := l.BaseHeight*h +
		PatternAmplitude(l, p, i, total, h) +
		Oscillation(l, p, f.Time)*l.VerticalMovement*h*2*p.VerticalScale +
		influence
	if height < 0 {
		height = 0
	}
	return Bar{
		X:         x,
		Height:    height,
		Influence: influence,
		Color:     GradientColor(l, x, f.Viewport.Width),
	}
}

func draw(c surface.Canvas, l *config.LayerConfig, b Bar, baselineY float64) {
	top := baselineY - b.Height
	blur := l.GlowIntensity
	if b.Influence > 0 {
		blur *= glowBoost
	}
	c.GlowRect(b.X, top, l.BarWidth, b.Height, blur, b.Color, l.GlowOpacity)
	c.FillRect(b.X, top, l.BarWidth, b.Height, b.Color, l.Opacity)

	coreW := l.BarWidth * coreShare
	c.FillRect(b.X+(l.BarWidth-coreW)/2, top, coreW, b.Height, b.Color.BlendRgb(white, 0.6), math.Min(1, l.Opacity*1.2))

	c.FadeRect(b.X, baselineY, l.BarWidth, b.Height*reflection, b.Color, l.Opacity*0.3)
}

// DriftPeriod is the length after which the drift offset wraps: the viewport
// width rounded up so that the applied share of it is a whole number of
// pitches, which keeps bar positions continuous across the wrap.
func DriftPeriod(l *config.LayerConfig, width float64) float64 {
	step := l.Pitch() / driftShare
	return math.Max(1, math.Ceil(width/step)) * step
}

// Offset returns the horizontal shift subtracted from every bar position at time t.
func Offset(l *config.LayerConfig, t, width float64) float64 {
	drift := math.Mod(t*l.HorizontalSpeed*driftRate, DriftPeriod(l, width))
	shimmer := math.Mod(t*l.HorizontalSpeed*shimmerRate, l.Pitch())
	return shimmer + driftShare*drift
}

// TotalBars returns how many bar slots cover the viewport at any offset: the
// width plus the largest possible offset, plus one slot of slack.
func TotalBars(l *config.LayerConfig, width float64) int {
	maxOffset := l.Pitch() + driftShare*DriftPeriod(l, width)
	return int(math.Ceil((width+maxOffset)/l.Pitch())) + 1
}

// Oscillation combines the bar's four sinusoids and a small jitter term and
// eases the result into [-1, 1].
func Oscillation(l *config.LayerConfig, p *oscillator.Params, t float64) float64 {
	w := (t + p.TimeOffset) * config.FrameRate * l.VerticalSpeed

	primary := math.Sin(w*p.BaseFreq + p.Phase1)
	secondary := math.Sin(w*p.Freq1 + p.Phase2)
	tertiary := math.Sin(w*p.Freq2 + p.Phase3)
	quaternary := math.Sin(w*p.Freq3 + p.Phase4)
	jitter := jitterAmp * math.Sin(w*jitterFreq+p.Phase4*3)

	combined := primary*p.Amp1 + secondary*p.Amp2 + tertiary*p.Amp3 + quaternary*p.Amp3*0.5 + jitter
	return Ease((combined+1)/2)*2 - 1
}

// PatternAmplitude is the static wave across the layer that gives each bar
// its resting height. It does not depend on time.
func PatternAmplitude(l *config.LayerConfig, p *oscillator.Params, i, total int, h float64) float64 {
	angle := 2*math.Pi*patternWaves*float64(i)/float64(total) + l.PhaseOffset + p.Phase1*0.2
	return math.Sin(angle) * l.AmplitudeScale * h * (0.9 + 0.2*p.Personality)
}

// Influence is the height added by the pointer to a bar whose base sits at
// (x, baselineY). It falls smoothly to zero at the layer's influence radius.
func Influence(l *config.LayerConfig, p *oscillator.Params, x, baselineY float64, ptr pointer.State, h float64) float64 {
	if !ptr.Active {
		return 0
	}
	d := math.Hypot(x-ptr.X, baselineY-ptr.Y)
	if d >= l.InfluenceRadius {
		return 0
	}
	return Ease(1-d/l.InfluenceRadius) * l.InfluenceStrength * (0.8 + 0.4*p.Personality) * h * influenceMax
}

// GradientColor interpolates the layer's endpoint colors by horizontal position.
func GradientColor(l *config.LayerConfig, x, width float64) colorful.Color {
	if width <= 0 {
		return l.ColorLeft
	}
	return l.ColorLeft.BlendRgb(l.ColorRight, clamp01(x/width))
}

// Ease is the quintic in/out easing used for both the oscillator and the
// pointer falloff. Input outside [0,1] is clamped.
func Ease(v float64) float64 {
	return ease.InOutQuint(clamp01(v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
