// Package config loads JSON tuning parameters for the analysis engines.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for analysis parameters.
// Fields are pointers so a partial JSON file only overrides what it names;
// the Get* accessors supply defaults for everything else.
type TuningConfig struct {
	// Texture engine params
	GrayLevels       *int    `json:"gray_levels,omitempty"`
	TextureWindowY   *int    `json:"texture_window_y,omitempty"`
	TextureWindowX   *int    `json:"texture_window_x,omitempty"`
	TextureProperty  *string `json:"texture_property,omitempty"`
	Normed           *bool   `json:"normed,omitempty"`
	DegeneratePolicy *string `json:"degenerate_policy,omitempty"` // "sentinel" or "fail"

	// Majority filter params
	MajorityWindowY *int `json:"majority_window_y,omitempty"`
	MajorityWindowX *int `json:"majority_window_x,omitempty"`
	PreserveClass   *int `json:"preserve_class,omitempty"`

	// Scheduling params
	Workers *int `json:"workers,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.GrayLevels != nil {
		if *c.GrayLevels < 2 || *c.GrayLevels > 256 {
			return fmt.Errorf("gray_levels must be between 2 and 256, got %d", *c.GrayLevels)
		}
	}

	if c.TextureWindowY != nil && *c.TextureWindowY <= 0 {
		return fmt.Errorf("texture_window_y must be positive, got %d", *c.TextureWindowY)
	}
	if c.TextureWindowX != nil && *c.TextureWindowX <= 0 {
		return fmt.Errorf("texture_window_x must be positive, got %d", *c.TextureWindowX)
	}

	if c.TextureProperty != nil {
		switch *c.TextureProperty {
		case "entropy", "dissimilarity", "homogeneity":
		default:
			return fmt.Errorf("texture_property must be one of entropy, dissimilarity, homogeneity; got %q", *c.TextureProperty)
		}
	}

	if c.DegeneratePolicy != nil {
		switch *c.DegeneratePolicy {
		case "sentinel", "fail":
		default:
			return fmt.Errorf("degenerate_policy must be \"sentinel\" or \"fail\", got %q", *c.DegeneratePolicy)
		}
	}

	if c.MajorityWindowY != nil && (*c.MajorityWindowY <= 0 || *c.MajorityWindowY%2 == 0) {
		return fmt.Errorf("majority_window_y must be a positive odd integer, got %d", *c.MajorityWindowY)
	}
	if c.MajorityWindowX != nil && (*c.MajorityWindowX <= 0 || *c.MajorityWindowX%2 == 0) {
		return fmt.Errorf("majority_window_x must be a positive odd integer, got %d", *c.MajorityWindowX)
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}

	return nil
}

// GetGrayLevels returns the quantization depth, defaulting to 32.
func (c *TuningConfig) GetGrayLevels() int {
	if c.GrayLevels == nil {
		return 32
	}
	return *c.GrayLevels
}

// GetTextureWindow returns the texture tile extent, defaulting to 7x7.
func (c *TuningConfig) GetTextureWindow() (rows, cols int) {
	rows, cols = 7, 7
	if c.TextureWindowY != nil {
		rows = *c.TextureWindowY
	}
	if c.TextureWindowX != nil {
		cols = *c.TextureWindowX
	}
	return rows, cols
}

// GetTextureProperty returns the texture property name, defaulting to
// "dissimilarity".
func (c *TuningConfig) GetTextureProperty() string {
	if c.TextureProperty == nil {
		return "dissimilarity"
	}
	return *c.TextureProperty
}

// GetNormed returns the co-occurrence normalization flag, defaulting to true.
func (c *TuningConfig) GetNormed() bool {
	if c.Normed == nil {
		return true
	}
	return *c.Normed
}

// GetDegeneratePolicy returns the degenerate-tile policy name, defaulting to
// "sentinel".
func (c *TuningConfig) GetDegeneratePolicy() string {
	if c.DegeneratePolicy == nil {
		return "sentinel"
	}
	return *c.DegeneratePolicy
}

// GetMajorityWindow returns the majority neighbourhood extent, defaulting to
// 3x3.
func (c *TuningConfig) GetMajorityWindow() (rows, cols int) {
	rows, cols = 3, 3
	if c.MajorityWindowY != nil {
		rows = *c.MajorityWindowY
	}
	if c.MajorityWindowX != nil {
		cols = *c.MajorityWindowX
	}
	return rows, cols
}

// GetPreserveClass returns the category exempt from majority voting,
// defaulting to 1 (open water).
func (c *TuningConfig) GetPreserveClass() int {
	if c.PreserveClass == nil {
		return 1
	}
	return *c.PreserveClass
}

// GetWorkers returns the worker pool cap; 0 means one worker per CPU.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}
