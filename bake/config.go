package bake

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/tilebake/common"
)

// Config controls which layers are baked and how paths are scaled.
type Config struct {
	// PixelsPerUnit scales grid units to output units.
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	// PhysicsOnly restricts the bake to layers flagged has_physics.
	PhysicsOnly bool `yaml:"physics_only"`
	// Layers, when set, restricts the bake to the named layers.
	Layers []string `yaml:"layers"`
	// SolidScript names a tengo script deciding which tile values are solid.
	SolidScript string `yaml:"solid_script"`
	// AttemptBudget caps connection attempts per loop. 0 picks the default.
	AttemptBudget int  `yaml:"attempt_budget"`
	Parallel      bool `yaml:"parallel"`
	// Boxes also emits each layer as merged rectangles, for box-based
	// collision.
	Boxes bool `yaml:"boxes"`
}

func DefaultConfig() Config {
	return Config{
		PixelsPerUnit: common.TileSize,
		PhysicsOnly:   true,
		Parallel:      true,
	}
}

// ParseConfig decodes YAML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bake: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. A relative solid_script is resolved
// against the config's directory when the script exists there.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bake: load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	if cfg.SolidScript != "" && !filepath.IsAbs(cfg.SolidScript) {
		local := filepath.Join(filepath.Dir(path), cfg.SolidScript)
		if _, err := os.Stat(local); err == nil {
			cfg.SolidScript = local
		}
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.PixelsPerUnit <= 0 {
		return fmt.Errorf("bake: pixels_per_unit must be positive, got %v", c.PixelsPerUnit)
	}
	if c.AttemptBudget < 0 {
		return fmt.Errorf("bake: attempt_budget must not be negative, got %d", c.AttemptBudget)
	}
	return nil
}
