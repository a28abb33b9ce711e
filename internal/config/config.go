package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/iburimskiy/neon-bars/internal/shared"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	// ParticleDensity is the number of particles per square CSS pixel.
	ParticleDensity = 0.00012

	// FrameRate is the reference rate the per-frame constants are tuned for.
	FrameRate = 60.0

	// FrameBudgetSeconds is the work allowed per frame before a budget warning.
	FrameBudgetSeconds = 1.0 / FrameRate
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Animation AnimationConfig `toml:"animation"`
	Log       LogConfig       `toml:"log"`
	Snapshot  SnapshotConfig  `toml:"snapshot"`
}

// WindowConfig contains the initial window geometry in CSS pixels.
type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Fullscreen bool   `toml:"fullscreen"`
}

// AnimationConfig contains the multipliers consumed by the renderer.
type AnimationConfig struct {
	Speed      float64 `toml:"speed"`
	Intensity  float64 `toml:"intensity"`
	Seed       uint64  `toml:"seed"`
	LayersPath string  `toml:"layers_path"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// SnapshotConfig controls where PNG snapshots are written.
type SnapshotConfig struct {
	Directory string `toml:"directory"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that the window and animation values are usable.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", shared.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Animation.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %v", shared.ErrInvalidConfig, c.Animation.Speed)
	}
	if c.Animation.Intensity <= 0 {
		return fmt.Errorf("%w: intensity must be positive, got %v", shared.ErrInvalidConfig, c.Animation.Intensity)
	}
	return nil
}
