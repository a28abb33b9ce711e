package bars

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/frame"
	"github.com/iburimskiy/neon-bars/internal/oscillator"
	"github.com/iburimskiy/neon-bars/internal/pointer"
	"github.com/iburimskiy/neon-bars/internal/surface"
	"github.com/iburimskiy/neon-bars/internal/surface/surfacetest"
)

var fullHD = surface.Viewport{Width: 1920, Height: 1080, Ratio: 1}

func testLayers(t *testing.T) []config.LayerConfig {
	t.Helper()
	layers, err := config.BuildLayers(config.DefaultLayerPresets(), 1, 1)
	require.NoError(t, err)
	return layers
}

func TestEase(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"Start", 0, 0},
		{"Middle", 0.5, 0.5},
		{"End", 1, 1},
		{"Quarter", 0.25, 16 * math.Pow(0.25, 5)},
		{"ClampLow", -0.3, 0},
		{"ClampHigh", 1.3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ease(tt.input), 1e-9)
		})
	}

	t.Run("Monotonic", func(t *testing.T) {
		prev := Ease(0)
		for v := 0.01; v <= 1; v += 0.01 {
			cur := Ease(v)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})
}

func TestOscillationRange(t *testing.T) {
	layers := testLayers(t)
	arena := oscillator.Generate(layers, oscillator.NewSource(5))

	for li := range layers {
		for i := 0; i < arena.Len(li); i++ {
			for _, tm := range []float64{0, 0.5, 3.7, 120, 9999} {
				v := Oscillation(&layers[li], arena.At(li, i), tm)
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestInfluence(t *testing.T) {
	layers := testLayers(t)
	l := &layers[1]
	p := &oscillator.Params{Personality: 0.5}
	h := fullHD.Height
	peak := l.InfluenceStrength * (0.8 + 0.4*p.Personality) * h * 0.3

	t.Run("Inactive", func(t *testing.T) {
		ptr := pointer.State{X: 100, Y: 500, Active: false}
		assert.Equal(t, 0.0, Influence(l, p, 100, 500, ptr, h))
	})

	t.Run("AtPointer", func(t *testing.T) {
		ptr := pointer.State{X: 100, Y: 500, Active: true}
		assert.InDelta(t, peak, Influence(l, p, 100, 500, ptr, h), 1e-9)
	})

	t.Run("ApproachesZeroAtRadius", func(t *testing.T) {
		ptr := pointer.State{X: 0, Y: 500, Active: true}
		prev := math.Inf(1)
		for _, eps := range []float64{10, 1, 0.1, 0.001} {
			v := Influence(l, p, l.InfluenceRadius-eps, 500, ptr, h)
			assert.Less(t, v, prev)
			prev = v
		}
		assert.Less(t, prev, 1e-9)
	})

	t.Run("ZeroBeyondRadius", func(t *testing.T) {
		ptr := pointer.State{X: 0, Y: 500, Active: true}
		assert.Equal(t, 0.0, Influence(l, p, l.InfluenceRadius, 500, ptr, h))
		assert.Equal(t, 0.0, Influence(l, p, l.InfluenceRadius+50, 500, ptr, h))
	})

	t.Run("PersonalityScales", func(t *testing.T) {
		ptr := pointer.State{X: 0, Y: 0, Active: true}
		calm := Influence(l, &oscillator.Params{Personality: 0}, 0, 0, ptr, h)
		wild := Influence(l, &oscillator.Params{Personality: 1}, 0, 0, ptr, h)
		assert.InDelta(t, 1.5, wild/calm, 1e-9)
	})
}

func TestPatternAmplitudeAtOrigin(t *testing.T) {
	layers := testLayers(t)
	l := layers[0]
	require.Equal(t, 150, l.Count)
	require.Equal(t, 2.0, l.BarWidth)
	require.Equal(t, 4.0, l.GapWidth)
	require.Equal(t, 0.05, l.BaseHeight)
	require.Equal(t, 0.35, l.AmplitudeScale)

	p := &oscillator.Params{Phase1: 0, Personality: 0.25}
	total := TotalBars(&l, fullHD.Width)

	for _, offset := range []float64{0, 1.3, 2.6} {
		l.PhaseOffset = offset
		want := math.Sin(offset) * l.AmplitudeScale * fullHD.Height * (0.9 + 0.2*p.Personality)
		assert.Equal(t, want, PatternAmplitude(&l, p, 0, total, fullHD.Height))
	}
}

func TestNoPointerInfluenceWhenInactive(t *testing.T) {
	layers := testLayers(t)
	arena := oscillator.Generate(layers, oscillator.NewSource(11))
	r := NewRenderer(layers, arena)

	f := &frame.Context{Time: 0, Viewport: fullHD, Pointer: pointer.State{X: 0, Y: 800}}
	bar, ok := r.Compute(0, 0, f)
	require.True(t, ok)
	assert.Equal(t, 0.0, bar.Influence)
	assert.Equal(t, 0.0, bar.X)
}

func TestHeightBounded(t *testing.T) {
	layers := testLayers(t)
	arena := oscillator.Generate(layers, oscillator.NewSource(21))
	r := NewRenderer(layers, arena)
	rng := rand.New(rand.NewPCG(8, 9))
	h := fullHD.Height

	for n := 0; n < 40; n++ {
		f := &frame.Context{
			Time:     rng.Float64() * 600,
			Viewport: fullHD,
			Pointer:  pointer.State{X: rng.Float64() * 1920, Y: rng.Float64() * 1080, Active: n%2 == 0},
		}
		for li := range layers {
			l := layers[li]
			bound := l.BaseHeight*h + l.AmplitudeScale*h*1.1 + l.VerticalMovement*h*2*1.2 + l.InfluenceStrength*h*0.3*1.2
			for i := 0; i < TotalBars(&l, fullHD.Width); i++ {
				bar, ok := r.Compute(li, i, f)
				if !ok {
					continue
				}
				assert.GreaterOrEqual(t, bar.Height, 0.0)
				assert.LessOrEqual(t, bar.Height, bound)
			}
		}
	}
}

func TestCoverage(t *testing.T) {
	layers := testLayers(t)

	for li := range layers {
		l := &layers[li]
		assert.GreaterOrEqual(t, DriftPeriod(l, fullHD.Width), fullHD.Width)

		steps := DriftPeriod(l, fullHD.Width) * driftShare / l.Pitch()
		assert.InDelta(t, math.Round(steps), steps, 1e-9)

		total := TotalBars(l, fullHD.Width)
		for tm := 0.0; tm < 400; tm += 0.37 {
			off := Offset(l, tm, fullHD.Width)
			first := -off
			last := float64(total-1)*l.Pitch() - off
			assert.LessOrEqual(t, first, 0.0)
			assert.GreaterOrEqual(t, last, fullHD.Width)
		}
	}
}

func TestGradientColor(t *testing.T) {
	layers := testLayers(t)
	l := &layers[2]

	assert.Equal(t, l.ColorLeft, GradientColor(l, 0, 1000))
	assert.True(t, l.ColorRight.AlmostEqualRgb(GradientColor(l, 1000, 1000)))
	assert.Equal(t, l.ColorLeft, GradientColor(l, -50, 1000))

	mid := GradientColor(l, 500, 1000)
	assert.InDelta(t, (l.ColorLeft.R+l.ColorRight.R)/2, mid.R, 1e-9)
	assert.InDelta(t, (l.ColorLeft.B+l.ColorRight.B)/2, mid.B, 1e-9)
}

func TestComputeCulls(t *testing.T) {
	layers := testLayers(t)
	r := NewRenderer(layers, oscillator.Generate(layers, oscillator.NewSource(3)))
	f := &frame.Context{Viewport: surface.Viewport{Width: 100, Height: 100, Ratio: 1}}

	_, ok := r.Compute(0, 1000, f)
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	layers := testLayers(t)
	arena := oscillator.Generate(layers, oscillator.NewSource(17))
	r := NewRenderer(layers, arena)

	t.Run("CallsPerBar", func(t *testing.T) {
		var rec surfacetest.Recorder
		r.Render(&rec, &frame.Context{Time: 2, Viewport: fullHD})

		glows := rec.Count(surfacetest.OpGlowRect)
		require.Positive(t, glows)
		assert.Equal(t, glows*2, rec.Count(surfacetest.OpFillRect))
		assert.Equal(t, glows, rec.Count(surfacetest.OpFadeRect))

		// glow, body, core, reflection
		ops := []surfacetest.Op{surfacetest.OpGlowRect, surfacetest.OpFillRect, surfacetest.OpFillRect, surfacetest.OpFadeRect}
		for i, op := range ops {
			assert.Equal(t, op, rec.Calls[i].Op)
		}
	})

	t.Run("BackToFront", func(t *testing.T) {
		var rec surfacetest.Recorder
		r.Render(&rec, &frame.Context{Time: 2, Viewport: fullHD})

		bodies := rec.Filter(surfacetest.OpGlowRect)
		widths := []float64{bodies[0].W}
		for _, c := range bodies[1:] {
			if c.W != widths[len(widths)-1] {
				widths = append(widths, c.W)
			}
		}
		assert.Equal(t, []float64{2, 4, 8}, widths)
	})

	t.Run("WithinViewport", func(t *testing.T) {
		var rec surfacetest.Recorder
		r.Render(&rec, &frame.Context{Time: 12.5, Viewport: fullHD})
		for _, c := range rec.Filter(surfacetest.OpGlowRect) {
			assert.GreaterOrEqual(t, c.X, -c.W)
			assert.LessOrEqual(t, c.X, fullHD.Width)
		}
	})

	t.Run("PointerBoostsGlow", func(t *testing.T) {
		f := &frame.Context{Time: 0, Viewport: fullHD}
		bar, ok := r.Compute(2, 20, f)
		require.True(t, ok)

		l := layers[2]
		f.Pointer = pointer.State{X: bar.X, Y: l.Baseline * fullHD.Height, Active: true}
		var rec surfacetest.Recorder
		r.Render(&rec, f)

		boosted := 0
		for _, c := range rec.Filter(surfacetest.OpGlowRect) {
			if c.W == l.BarWidth && c.Blur > l.GlowIntensity {
				boosted++
			}
		}
		assert.Positive(t, boosted)
	})
}
