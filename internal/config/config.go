// Package config defines the immutable run configuration for dataset
// generation. A Config value is built once (defaults, optionally overlaid
// from a TOML file and CLI flags), validated, and then passed by value into
// every pipeline entry point; nothing reads configuration ambiently.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every knob of a generation run.
type Config struct {
	// Canvas size every background is resampled to.
	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`

	// Classes is the fixed, ordered vocabulary; annotation class ids index
	// into it.
	Classes []string `toml:"classes"`

	// Input and output locations.
	CardsDir       string `toml:"cards_dir"`
	BackgroundsDir string `toml:"backgrounds_dir"`
	OutputDir      string `toml:"output_dir"`

	// Dataset sizing. TestRatio is derived as the remainder.
	TotalImages int     `toml:"total_images"`
	TrainRatio  float64 `toml:"train_ratio"`
	ValidRatio  float64 `toml:"valid_ratio"`

	// GroupVariations folds filenames ending in _<number> onto one label.
	GroupVariations bool `toml:"group_variations"`

	// Per-label target area fractions are drawn uniformly from this range
	// once per image.
	MinAreaFraction float64 `toml:"min_area_fraction"`
	MaxAreaFraction float64 `toml:"max_area_fraction"`

	// Placement constraints.
	MaxFootprintCoverage float64 `toml:"max_footprint_coverage"`
	MaxBoxCoverage       float64 `toml:"max_box_coverage"`
	AttemptsPerCard      int     `toml:"attempts_per_card"`
}

// Default returns the stock configuration: a 620x620 canvas, the ten-class
// sushi card vocabulary, a 75/15/10 split and the canonical 40% coverage
// thresholds.
func Default() Config {
	return Config{
		CanvasWidth:  620,
		CanvasHeight: 620,
		Classes: []string{
			"egg_nigiri", "salmon_nigiri", "squid_nigiri", "wasabi",
			"tempura", "sashimi", "dumpling", "chopsticks", "pudding", "maki_roll",
		},
		CardsDir:             "card_images",
		BackgroundsDir:       "backgrounds",
		OutputDir:            "dataset",
		TotalImages:          100,
		TrainRatio:           0.75,
		ValidRatio:           0.15,
		GroupVariations:      true,
		MinAreaFraction:      0.025,
		MaxAreaFraction:      0.25,
		MaxFootprintCoverage: 0.4,
		MaxBoxCoverage:       0.4,
		AttemptsPerCard:      15,
	}
}

// Load returns the default configuration overlaid with values from a TOML
// file. An empty path yields the defaults unchanged. The result is
// validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TestRatio returns the share of images left for the test partition.
func (c Config) TestRatio() float64 {
	return 1 - c.TrainRatio - c.ValidRatio
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.CanvasWidth < 1 || c.CanvasHeight < 1 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("class list is empty")
	}
	seen := make(map[string]bool, len(c.Classes))
	for _, name := range c.Classes {
		if name == "" {
			return fmt.Errorf("class list contains an empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate class %q", name)
		}
		seen[name] = true
	}
	if c.TotalImages < 1 {
		return fmt.Errorf("total_images must be positive, got %d", c.TotalImages)
	}
	if c.TrainRatio <= 0 || c.ValidRatio < 0 || c.TrainRatio+c.ValidRatio > 1 {
		return fmt.Errorf("invalid split ratios: train=%g valid=%g", c.TrainRatio, c.ValidRatio)
	}
	if c.MinAreaFraction <= 0 || c.MaxAreaFraction > 1 || c.MinAreaFraction > c.MaxAreaFraction {
		return fmt.Errorf("invalid area fraction range [%g, %g]", c.MinAreaFraction, c.MaxAreaFraction)
	}
	if c.MaxFootprintCoverage <= 0 || c.MaxFootprintCoverage > 1 {
		return fmt.Errorf("max_footprint_coverage must be in (0, 1], got %g", c.MaxFootprintCoverage)
	}
	if c.MaxBoxCoverage <= 0 || c.MaxBoxCoverage > 1 {
		return fmt.Errorf("max_box_coverage must be in (0, 1], got %g", c.MaxBoxCoverage)
	}
	if c.AttemptsPerCard < 1 {
		return fmt.Errorf("attempts_per_card must be at least 1, got %d", c.AttemptsPerCard)
	}
	return nil
}
