// Package config loads the tunable parameters for theme generation from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/jmylchreest/themix/internal/colour"
	"github.com/jmylchreest/themix/internal/theme"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "themix"

const (
	minMaxDimension = 16
	maxMaxDimension = 4096
	minBucketSize   = 1
	maxBucketSize   = 64
	minContrast     = 1.0
	maxContrast     = 21.0
)

// Config holds every tunable of the generator.
type Config struct {
	Extract ExtractConfig `toml:"extract"`
	Palette PaletteConfig `toml:"palette"`
	Output  OutputConfig  `toml:"output"`
}

// ExtractConfig tunes image sampling and accent extraction.
type ExtractConfig struct {
	Colours       int     `toml:"colours"`
	MaxDimension  int     `toml:"max_dimension"`
	BucketSize    int     `toml:"bucket_size"`
	MinSaturation float64 `toml:"min_saturation"`
	MinLightness  float64 `toml:"min_lightness"`
	MaxLightness  float64 `toml:"max_lightness"`
	HueDiversity  float64 `toml:"hue_diversity"`
}

// PaletteConfig tunes palette synthesis.
type PaletteConfig struct {
	Mode        string  `toml:"mode"`
	Tint        float64 `toml:"tint"`
	MinContrast float64 `toml:"min_contrast"`
	Alpha       float64 `toml:"alpha"`
	Seed        string  `toml:"seed"`
}

// OutputConfig controls where themes are written. An empty Dir means
// theme.DefaultOutputDir.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Colours:       colour.DefaultColourCount,
			MaxDimension:  300,
			BucketSize:    colour.DefaultBucketSize,
			MinSaturation: colour.DefaultMinSaturation,
			MinLightness:  colour.DefaultMinLightness,
			MaxLightness:  colour.DefaultMaxLightness,
			HueDiversity:  colour.DefaultHueDiversity,
		},
		Palette: PaletteConfig{
			Mode:        colour.ThemeAuto.String(),
			Tint:        colour.DefaultTint,
			MinContrast: colour.DefaultMinContrast,
			Alpha:       colour.DefaultAlpha,
			Seed:        colour.DefaultSeed.Hex(),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/themix/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return NormalizeAndValidate(cfg)
}

// LoadOrDefault loads path, or the default path when path is empty. A
// missing default file is not an error; a missing explicit file is.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	cfg, err := Load(DefaultPath())
	if errors.Is(err, fs.ErrNotExist) {
		return NormalizeAndValidate(DefaultConfig())
	}
	return cfg, err
}

// NormalizeAndValidate returns a cleaned copy of cfg or the first invalid field.
func NormalizeAndValidate(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	sanitized := *cfg
	e, p := &sanitized.Extract, &sanitized.Palette

	if err := validateRange("extract.colours", e.Colours, colour.MinColourCount, colour.MaxColourCount); err != nil {
		return nil, err
	}
	if err := validateRange("extract.max_dimension", e.MaxDimension, minMaxDimension, maxMaxDimension); err != nil {
		return nil, err
	}
	if err := validateRange("extract.bucket_size", e.BucketSize, minBucketSize, maxBucketSize); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"extract.min_saturation", e.MinSaturation},
		{"extract.min_lightness", e.MinLightness},
		{"extract.max_lightness", e.MaxLightness},
		{"extract.hue_diversity", e.HueDiversity},
		{"palette.tint", p.Tint},
		{"palette.alpha", p.Alpha},
	} {
		if err := validateFloatRange(f.name, f.value, 0, 1); err != nil {
			return nil, err
		}
	}
	if e.MinLightness >= e.MaxLightness {
		return nil, fmt.Errorf("extract.min_lightness (%g) must be below extract.max_lightness (%g)", e.MinLightness, e.MaxLightness)
	}
	if e.HueDiversity > 0.5 {
		return nil, fmt.Errorf("extract.hue_diversity must be at most 0.5, got %g", e.HueDiversity)
	}
	if err := validateFloatRange("palette.min_contrast", p.MinContrast, minContrast, maxContrast); err != nil {
		return nil, err
	}

	mode, err := colour.ParseThemeType(p.Mode)
	if err != nil {
		return nil, fmt.Errorf("palette.mode: %w", err)
	}
	p.Mode = mode.String()

	seed, err := colour.ParseHex(p.Seed)
	if err != nil {
		return nil, fmt.Errorf("palette.seed: %w", err)
	}
	p.Seed = seed.Hex()

	if dir := strings.TrimSpace(sanitized.Output.Dir); dir != "" {
		sanitized.Output.Dir = filepath.Clean(expandHome(dir))
	}

	return &sanitized, nil
}

// Save writes cfg to path atomically, creating the parent directory.
func Save(path string, cfg *Config) error {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return fmt.Errorf("config path must not be empty")
	}

	sanitized, err := NormalizeAndValidate(cfg)
	if err != nil {
		return err
	}

	var data bytes.Buffer
	if err := Encode(&data, sanitized); err != nil {
		return err
	}

	dir := filepath.Dir(trimmedPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data.Bytes()); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, trimmedPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	tmpPath = ""

	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config TOML: %w", err)
	}
	return nil
}

// ThemeType returns the parsed palette mode.
func (c *Config) ThemeType() colour.ThemeType {
	t, _ := colour.ParseThemeType(c.Palette.Mode)
	return t
}

// OutputDir returns the configured output directory or the default.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return theme.DefaultOutputDir()
}

// GeneratorOptions converts the config into colour generator options.
func (c *Config) GeneratorOptions() colour.Options {
	seed, err := colour.ParseHex(c.Palette.Seed)
	if err != nil {
		seed = colour.DefaultSeed
	}

	opts := colour.DefaultOptions()
	opts.Count = c.Extract.Colours
	opts.Theme = c.ThemeType()
	opts.MinContrast = c.Palette.MinContrast
	opts.Tint = c.Palette.Tint
	opts.Seed = seed
	opts.Extract = colour.ExtractOptions{
		BucketSize:    c.Extract.BucketSize,
		MinSaturation: c.Extract.MinSaturation,
		MinLightness:  c.Extract.MinLightness,
		MaxLightness:  c.Extract.MaxLightness,
		HueDiversity:  c.Extract.HueDiversity,
	}
	return opts
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func validateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}

	return nil
}

func validateFloatRange(name string, value, min, max float64) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %g and %g, got %g", name, min, max, value)
	}

	return nil
}
