// Package oscillator generates the per-bar oscillation parameters that give
// every bar its own stable motion for the lifetime of a mount.
package oscillator

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/neon-bars/internal/config"
)

// Params is the oscillation identity of one bar. Frequencies are in radians
// per 60 Hz frame, TimeOffset in seconds.
type Params struct {
	BaseFreq float64
	Freq1    float64
	Freq2    float64
	Freq3    float64

	Phase1 float64
	Phase2 float64
	Phase3 float64
	Phase4 float64

	Amp1 float64
	Amp2 float64
	Amp3 float64

	TimeOffset    float64
	VerticalScale float64
	Personality   float64
}

// Arena holds the parameters of every bar of every layer. It is filled once
// by Generate and never reallocated.
type Arena struct {
	layers [][]Params
}

// NewSource returns the random source used by Generate. A zero seed picks a
// fresh seed so each mount looks different.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate draws one Params per bar for each layer. The result depends only on
// the layer bar counts and the state of src.
func Generate(layers []config.LayerConfig, src *rand.Rand) *Arena {
	a := &Arena{layers: make([][]Params, len(layers))}
	for li, l := range layers {
		params := make([]Params, l.Count)
		for i := range params {
			params[i] = draw(src)
		}
		a.layers[li] = params
	}
	return a
}

func draw(r *rand.Rand) Params {
	return Params{
		BaseFreq:      between(r, 0.015, 0.03),
		Freq1:         between(r, 0.008, 0.015),
		Freq2:         between(r, 0.005, 0.011),
		Freq3:         between(r, 0.003, 0.007),
		Phase1:        r.Float64() * 2 * math.Pi,
		Phase2:        r.Float64() * 2 * math.Pi,
		Phase3:        r.Float64() * 2 * math.Pi,
		Phase4:        r.Float64() * 2 * math.Pi,
		Amp1:          between(r, 0.5, 1.0),
		Amp2:          between(r, 0.15, 0.3),
		Amp3:          between(r, 0.05, 0.15),
		TimeOffset:    r.Float64() * 10,
		VerticalScale: between(r, 0.8, 1.2),
		Personality:   r.Float64(),
	}
}

func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// At returns the parameters of bar i in layer. Indices wrap modulo the layer's
// bar count so wraparound copies share the identity of the original bar.
func (a *Arena) At(layer, i int) *Params {
	params := a.layers[layer]
	n := len(params)
	i %= n
	if i < 0 {
		i += n
	}
	return &params[i]
}

// Layers returns the number of layers in the arena.
func (a *Arena) Layers() int {
	return len(a.layers)
}

// Len returns the number of bars generated for layer.
func (a *Arena) Len(layer int) int {
	return len(a.layers[layer])
}
