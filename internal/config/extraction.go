// Package config loads extraction tuning files. Defaults live here, in the
// calling layer; the core extractor in internal/lines validates but never
// substitutes values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/edgelines/internal/lines"
)

// Default tuning values, matching the parameters the extraction was
// originally calibrated with.
const (
	DefaultNeighborhoodRadius = 2.0
	DefaultMinSamples         = 8
	DefaultInlierThreshold    = 0.05
	DefaultMaxIterations      = 5000
)

// ExtractionConfig is the JSON tuning file schema. All fields are optional
// pointers so partial configs are safe: omitted fields fall back to defaults
// through the Get* accessors.
type ExtractionConfig struct {
	NeighborhoodRadius *float64 `json:"neighborhood_radius,omitempty"`
	MinSamples         *int     `json:"min_samples,omitempty"`
	InlierThreshold    *float64 `json:"inlier_threshold,omitempty"`
	MaxIterations      *int     `json:"max_iterations,omitempty"`

	// RandomSeed fixes the extractor's random source for reproducible runs.
	// Zero or omitted means a time-seeded source.
	RandomSeed *int64 `json:"random_seed,omitempty"`
}

// EmptyExtractionConfig returns a config with every field unset.
func EmptyExtractionConfig() *ExtractionConfig {
	return &ExtractionConfig{}
}

// LoadExtractionConfig loads an ExtractionConfig from a JSON file. The file
// must have a .json extension and stay under the size cap.
func LoadExtractionConfig(path string) (*ExtractionConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyExtractionConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that is set. Unset fields always pass since the
// defaults are valid.
func (c *ExtractionConfig) Validate() error {
	if c.NeighborhoodRadius != nil && *c.NeighborhoodRadius <= 0 {
		return fmt.Errorf("neighborhood_radius must be positive, got %v", *c.NeighborhoodRadius)
	}
	if c.MinSamples != nil && *c.MinSamples < 2 {
		return fmt.Errorf("min_samples must be at least 2, got %d", *c.MinSamples)
	}
	if c.InlierThreshold != nil && *c.InlierThreshold <= 0 {
		return fmt.Errorf("inlier_threshold must be positive, got %v", *c.InlierThreshold)
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be positive, got %d", *c.MaxIterations)
	}
	return nil
}

// GetNeighborhoodRadius returns the neighborhood_radius value or the default.
func (c *ExtractionConfig) GetNeighborhoodRadius() float64 {
	if c.NeighborhoodRadius == nil {
		return DefaultNeighborhoodRadius
	}
	return *c.NeighborhoodRadius
}

// GetMinSamples returns the min_samples value or the default.
func (c *ExtractionConfig) GetMinSamples() int {
	if c.MinSamples == nil {
		return DefaultMinSamples
	}
	return *c.MinSamples
}

// GetInlierThreshold returns the inlier_threshold value or the default.
func (c *ExtractionConfig) GetInlierThreshold() float64 {
	if c.InlierThreshold == nil {
		return DefaultInlierThreshold
	}
	return *c.InlierThreshold
}

// GetMaxIterations returns the max_iterations value or the default.
func (c *ExtractionConfig) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return DefaultMaxIterations
	}
	return *c.MaxIterations
}

// GetRandomSeed returns the random_seed value, or 0 when unset (meaning a
// time-seeded source).
func (c *ExtractionConfig) GetRandomSeed() int64 {
	if c.RandomSeed == nil {
		return 0
	}
	return *c.RandomSeed
}

// Params assembles core extraction parameters from the config.
func (c *ExtractionConfig) Params() lines.Params {
	return lines.Params{
		NeighborhoodRadius: c.GetNeighborhoodRadius(),
		MinSamples:         c.GetMinSamples(),
		InlierThreshold:    c.GetInlierThreshold(),
		MaxIterations:      c.GetMaxIterations(),
	}
}
