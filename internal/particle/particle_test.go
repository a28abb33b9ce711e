package particle

import (
	"math/rand/v2"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/neon-bars/internal/surface/surfacetest"
)

func newTestField(speed, intensity float64) *Field {
	return NewField(speed, intensity, rand.New(rand.NewPCG(1, 2)))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want int
	}{
		{"FullHD", 1920, 1080, 248},
		{"Small", 100, 100, 1},
		{"Tiny", 10, 10, 0},
		{"Empty", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.w*tt.h))
		})
	}
}

func TestInitialize(t *testing.T) {
	f := newTestField(1, 1)
	f.Initialize(1920, 1080)
	require.Equal(t, 248, f.Len())

	for _, p := range f.Particles() {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 1920.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 1080.0)
		assert.GreaterOrEqual(t, p.Radius, 0.5)
		assert.Less(t, p.Radius, 2.0)
		assert.GreaterOrEqual(t, p.Speed, 0.1)
		assert.Less(t, p.Speed, 0.3)
		assert.GreaterOrEqual(t, p.Opacity, 0.1)
		assert.Less(t, p.Opacity, 0.5)
		assert.GreaterOrEqual(t, p.Twinkle, 0.01)
		assert.Less(t, p.Twinkle, 0.03)
	}
}

func TestPalette(t *testing.T) {
	total := 0.0
	for _, s := range palette {
		total += s.weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	tests := []struct {
		name string
		u    float64
		want colorful.Color
	}{
		{"White", 0.0, palette[0].color},
		{"WhiteUpper", 0.29, palette[0].color},
		{"Gold", 0.3, palette[1].color},
		{"Pink", 0.55, palette[2].color},
		{"Blue", 0.75, palette[3].color},
		{"Magenta", 0.95, palette[4].color},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pick(tt.u))
		})
	}
}

func TestPaletteDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	counts := make(map[colorful.Color]int)
	const n = 20000
	for i := 0; i < n; i++ {
		counts[pick(rng.Float64())]++
	}
	for _, s := range palette {
		assert.InDelta(t, s.weight, float64(counts[s.color])/n, 0.02)
	}
}

func TestAdvance(t *testing.T) {
	t.Run("MovesUp", func(t *testing.T) {
		f := newTestField(1, 1)
		f.particles = []Particle{{X: 10, Y: 500, Speed: 0.2, Radius: 1}}
		f.width, f.height = 800, 600

		f.Advance(1.0 / 60)
		assert.InDelta(t, 499.8, f.particles[0].Y, 1e-9)
		assert.Equal(t, 10.0, f.particles[0].X)
	})

	t.Run("SpeedMultiplier", func(t *testing.T) {
		f := newTestField(2, 1)
		f.particles = []Particle{{X: 10, Y: 500, Speed: 0.2, Radius: 1}}
		f.width, f.height = 800, 600

		f.Advance(1.0 / 60)
		assert.InDelta(t, 499.6, f.particles[0].Y, 1e-9)
	})

	t.Run("WrapsBelowBottom", func(t *testing.T) {
		f := newTestField(1, 1)
		f.particles = []Particle{{X: 10, Y: 0.1, Speed: 0.3, Radius: 1.5}}
		f.width, f.height = 800, 600

		f.Advance(1.0 / 60)
		p := f.particles[0]
		assert.Equal(t, 601.5, p.Y)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 800.0)
	})

	t.Run("StaysInBand", func(t *testing.T) {
		f := newTestField(1, 1)
		f.Initialize(640, 480)
		for i := 0; i < 5000; i++ {
			f.Advance(1.0 / 60)
		}
		for _, p := range f.Particles() {
			assert.GreaterOrEqual(t, p.Y, -p.Radius)
			assert.LessOrEqual(t, p.Y, 480+p.Radius)
		}
	})
}

func TestResize(t *testing.T) {
	f := newTestField(1, 1)
	f.Initialize(800, 600)
	n := f.Len()
	before := append([]Particle(nil), f.Particles()...)

	f.Resize(1600, 300)
	require.Equal(t, n, f.Len())
	for i, p := range f.Particles() {
		assert.InDelta(t, before[i].X*2, p.X, 1e-9)
		assert.InDelta(t, before[i].Y/2, p.Y, 1e-9)
	}
}

func TestResizeEmptyViewport(t *testing.T) {
	f := newTestField(1, 1)
	f.Initialize(800, 600)
	before := append([]Particle(nil), f.Particles()...)

	f.Resize(0, 0)
	assert.Equal(t, before, f.Particles())

	f.Resize(800, 600)
	assert.Equal(t, before, f.Particles())

	f.Advance(1.0 / 60)
	rows := map[float64]bool{}
	for _, p := range f.Particles() {
		rows[p.Y] = true
	}
	assert.Greater(t, len(rows), 1, "particles must not collapse onto one row")
}

func TestRender(t *testing.T) {
	t.Run("HaloThenCore", func(t *testing.T) {
		f := newTestField(1, 1)
		f.particles = []Particle{{X: 10, Y: 20, Radius: 1, Opacity: 0.4, Twinkle: 0.02, Color: palette[1].color}}

		var rec surfacetest.Recorder
		f.Render(&rec, 0)

		require.Len(t, rec.Calls, 2)
		assert.Equal(t, surfacetest.OpGlowDot, rec.Calls[0].Op)
		assert.Equal(t, surfacetest.OpFillDot, rec.Calls[1].Op)
		// sin(0) = 0, so opacity is halved
		assert.InDelta(t, 0.2, rec.Calls[1].Alpha, 1e-9)
		assert.Greater(t, rec.Calls[0].R, rec.Calls[1].R)
	})

	t.Run("TwinkleModulates", func(t *testing.T) {
		f := newTestField(1, 1)
		f.particles = []Particle{{X: 10, Y: 20, Radius: 1, Opacity: 0.4, Twinkle: 0.02, Color: palette[0].color}}

		var rec surfacetest.Recorder
		// frames*twinkle = pi/2 at the peak
		peak := (3.141592653589793 / 2) / 0.02 / 60
		f.Render(&rec, peak)
		assert.InDelta(t, 0.4, rec.Filter(surfacetest.OpFillDot)[0].Alpha, 1e-9)
	})

	t.Run("SpeedScalesTwinkle", func(t *testing.T) {
		f := newTestField(2, 1)
		f.particles = []Particle{{X: 10, Y: 20, Radius: 1, Opacity: 0.4, Twinkle: 0.02, Color: palette[0].color}}

		var rec surfacetest.Recorder
		// twice the speed reaches the peak in half the time
		peak := (3.141592653589793 / 2) / 0.02 / 60 / 2
		f.Render(&rec, peak)
		assert.InDelta(t, 0.4, rec.Filter(surfacetest.OpFillDot)[0].Alpha, 1e-9)
	})

	t.Run("IntensityClamped", func(t *testing.T) {
		f := newTestField(1, 10)
		f.particles = []Particle{{X: 10, Y: 20, Radius: 1, Opacity: 0.5, Twinkle: 0.02, Color: palette[0].color}}

		var rec surfacetest.Recorder
		f.Render(&rec, 1.3)
		for _, c := range rec.Calls {
			assert.LessOrEqual(t, c.Alpha, 1.0)
		}
	})
}
