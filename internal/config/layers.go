package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/neon-bars/internal/shared"
)

//go:embed layers.yaml
var defaultLayers []byte

// LayerPreset is one depth layer as written in the YAML preset file.
// Colors are hex strings such as "#ff2bd6".
type LayerPreset struct {
	Name              string  `yaml:"name"`
	Count             int     `yaml:"count"`
	BarWidth          float64 `yaml:"barWidth"`
	GapWidth          float64 `yaml:"gapWidth"`
	BaseHeight        float64 `yaml:"baseHeight"`
	AmplitudeScale    float64 `yaml:"amplitudeScale"`
	HorizontalSpeed   float64 `yaml:"horizontalSpeed"`
	VerticalSpeed     float64 `yaml:"verticalSpeed"`
	PhaseOffset       float64 `yaml:"phaseOffset"`
	Baseline          float64 `yaml:"baseline"`
	Opacity           float64 `yaml:"opacity"`
	ColorLeft         string  `yaml:"colorLeft"`
	ColorRight        string  `yaml:"colorRight"`
	GlowIntensity     float64 `yaml:"glowIntensity"`
	GlowOpacity       float64 `yaml:"glowOpacity"`
	VerticalMovement  float64 `yaml:"verticalMovement"`
	InfluenceRadius   float64 `yaml:"influenceRadius"`
	InfluenceStrength float64 `yaml:"influenceStrength"`
}

// LayerPresets is the root of the YAML preset document.
type LayerPresets struct {
	Layers []LayerPreset `yaml:"layers"`
}

// LayerConfig is the immutable configuration of one depth layer after the
// speed and intensity multipliers have been applied.
type LayerConfig struct {
	Name              string
	Count             int
	BarWidth          float64
	GapWidth          float64
	BaseHeight        float64 // fraction of viewport height
	AmplitudeScale    float64
	HorizontalSpeed   float64
	VerticalSpeed     float64
	PhaseOffset       float64
	Baseline          float64 // fraction of viewport height, measured from the top
	Opacity           float64
	ColorLeft         colorful.Color
	ColorRight        colorful.Color
	GlowIntensity     float64
	GlowOpacity       float64
	VerticalMovement  float64
	InfluenceRadius   float64
	InfluenceStrength float64
}

// Pitch is the horizontal distance between the left edges of two neighbouring bars.
func (l LayerConfig) Pitch() float64 {
	return l.BarWidth + l.GapWidth
}

// DefaultLayerPresets returns the presets embedded in the binary.
func DefaultLayerPresets() *LayerPresets {
	presets, err := parseLayerPresets(defaultLayers)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded layer presets: %v", err))
	}
	return presets
}

// LoadLayerPresets loads layer presets from a YAML file.
func LoadLayerPresets(path string) (*LayerPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layer presets: %w", err)
	}
	return parseLayerPresets(data)
}

func parseLayerPresets(data []byte) (*LayerPresets, error) {
	var presets LayerPresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse layer presets: %w", err)
	}
	if err := presets.Validate(); err != nil {
		return nil, err
	}
	return &presets, nil
}

// Validate checks every preset for values the renderer cannot work with.
func (p *LayerPresets) Validate() error {
	if len(p.Layers) == 0 {
		return fmt.Errorf("%w: no layers defined", shared.ErrInvalidConfig)
	}
	for i, l := range p.Layers {
		if l.Count <= 0 {
			return fmt.Errorf("%w: layer %d (%s): count must be positive", shared.ErrInvalidConfig, i, l.Name)
		}
		if l.BarWidth <= 0 || l.GapWidth < 0 {
			return fmt.Errorf("%w: layer %d (%s): bar width must be positive and gap non-negative", shared.ErrInvalidConfig, i, l.Name)
		}
		if !unit(l.BaseHeight) || !unit(l.Baseline) || !unit(l.Opacity) || !unit(l.GlowOpacity) {
			return fmt.Errorf("%w: layer %d (%s): fractions must be within [0,1]", shared.ErrInvalidConfig, i, l.Name)
		}
		if l.InfluenceRadius <= 0 {
			return fmt.Errorf("%w: layer %d (%s): influence radius must be positive", shared.ErrInvalidConfig, i, l.Name)
		}
		if _, err := colorful.Hex(l.ColorLeft); err != nil {
			return fmt.Errorf("%w: layer %d (%s): colorLeft: %v", shared.ErrInvalidConfig, i, l.Name, err)
		}
		if _, err := colorful.Hex(l.ColorRight); err != nil {
			return fmt.Errorf("%w: layer %d (%s): colorRight: %v", shared.ErrInvalidConfig, i, l.Name, err)
		}
	}
	return nil
}

// BuildLayers applies the speed and intensity multipliers to the presets and
// returns the layers ordered back to front: narrowest bars (the most
// numerous) first, so nearer layers are drawn over farther ones.
func BuildLayers(presets *LayerPresets, speed, intensity float64) ([]LayerConfig, error) {
	if speed <= 0 || intensity <= 0 {
		return nil, fmt.Errorf("%w: speed and intensity must be positive", shared.ErrInvalidConfig)
	}
	if err := presets.Validate(); err != nil {
		return nil, err
	}

	layers := make([]LayerConfig, 0, len(presets.Layers))
	for _, p := range presets.Layers {
		left, _ := colorful.Hex(p.ColorLeft)
		right, _ := colorful.Hex(p.ColorRight)
		layers = append(layers, LayerConfig{
			Name:              p.Name,
			Count:             p.Count,
			BarWidth:          p.BarWidth,
			GapWidth:          p.GapWidth,
			BaseHeight:        p.BaseHeight,
			AmplitudeScale:    p.AmplitudeScale * intensity,
			HorizontalSpeed:   p.HorizontalSpeed * speed,
			VerticalSpeed:     p.VerticalSpeed * speed,
			PhaseOffset:       p.PhaseOffset,
			Baseline:          p.Baseline,
			Opacity:           p.Opacity,
			ColorLeft:         left,
			ColorRight:        right,
			GlowIntensity:     p.GlowIntensity * intensity,
			GlowOpacity:       p.GlowOpacity,
			VerticalMovement:  p.VerticalMovement * intensity,
			InfluenceRadius:   p.InfluenceRadius,
			InfluenceStrength: p.InfluenceStrength * intensity,
		})
	}

	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].BarWidth != layers[j].BarWidth {
			return layers[i].BarWidth < layers[j].BarWidth
		}
		return layers[i].Count > layers[j].Count
	})
	return layers, nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
