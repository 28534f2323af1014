package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/anim"
)

const (
	DefaultSpeed    = 6
	DefaultSize     = 30
	DefaultMin      = 10
	DefaultMax      = 210
	DefaultLanguage = "java"
	DefaultTheme    = "cyberpunk"
	MaxSize         = 200
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Category  string       `yaml:"category"`
	Algorithm string       `yaml:"algorithm"`
	Language  string       `yaml:"language"`
	Speed     int          `yaml:"speed"`
	Resume    string       `yaml:"resume"`
	Baseline  bool         `yaml:"baseline"`
	Theme     string       `yaml:"theme"`
	Array     ArrayConfig  `yaml:"array"`
	Search    SearchConfig `yaml:"search"`
	Log       LogConfig    `yaml:"log"`
}

type ArrayConfig struct {
	Size   int    `yaml:"size"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Seed   int64  `yaml:"seed"`
	Shape  string `yaml:"shape"`
	Values []int  `yaml:"values,omitempty"`
}

type SearchConfig struct {
	Target *int `yaml:"target,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Category:  "sorting",
		Algorithm: "bubble_sort",
		Language:  DefaultLanguage,
		Speed:     DefaultSpeed,
		Resume:    "restart",
		Theme:     DefaultTheme,
		Array: ArrayConfig{
			Size:  DefaultSize,
			Min:   DefaultMin,
			Max:   DefaultMax,
			Shape: "random",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and enumerations. Algorithm names are checked
// against the catalog by the caller.
func (c *Config) Validate() error {
	if c.Category != "sorting" && c.Category != "searching" {
		return fmt.Errorf("%w: category %q", ErrInvalid, c.Category)
	}
	if c.Speed < 1 || c.Speed > 10 {
		return fmt.Errorf("%w: speed %d outside 1..10", ErrInvalid, c.Speed)
	}
	if c.Resume != "restart" && c.Resume != "continue" {
		return fmt.Errorf("%w: resume %q", ErrInvalid, c.Resume)
	}
	if len(c.Array.Values) == 0 {
		if c.Array.Size < 1 || c.Array.Size > MaxSize {
			return fmt.Errorf("%w: array size %d outside 1..%d", ErrInvalid, c.Array.Size, MaxSize)
		}
		if c.Array.Min >= c.Array.Max {
			return fmt.Errorf("%w: array range [%d, %d)", ErrInvalid, c.Array.Min, c.Array.Max)
		}
		if c.Array.Min < -anim.MaxValue || c.Array.Max > anim.MaxValue+1 {
			return fmt.Errorf("%w: array range [%d, %d) exceeds ±%d", ErrInvalid, c.Array.Min, c.Array.Max, anim.MaxValue)
		}
	} else {
		if len(c.Array.Values) > MaxSize {
			return fmt.Errorf("%w: %d values, at most %d", ErrInvalid, len(c.Array.Values), MaxSize)
		}
		if err := anim.CheckValues(c.Array.Values); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Merge overlays a preset onto c. Zero-valued preset fields leave c as is.
func (c *Config) Merge(p *Config) {
	if p == nil {
		return
	}
	if p.Category != "" {
		c.Category = p.Category
	}
	if p.Algorithm != "" {
		c.Algorithm = p.Algorithm
	}
	if p.Speed != 0 {
		c.Speed = p.Speed
	}
	if p.Resume != "" {
		c.Resume = p.Resume
	}
	if p.Array.Size != 0 {
		c.Array.Size = p.Array.Size
	}
	if p.Array.Shape != "" {
		c.Array.Shape = p.Array.Shape
	}
	if p.Array.Seed != 0 {
		c.Array.Seed = p.Array.Seed
	}
	if len(p.Array.Values) > 0 {
		c.Array.Values = slices.Clone(p.Array.Values)
	}
	if p.Search.Target != nil {
		t := *p.Search.Target
		c.Search.Target = &t
	}
}
