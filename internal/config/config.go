package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/logging"
	"github.com/san-kum/bookloader/internal/render"
)

const (
	DefaultScale    = book.DefaultScale
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultFPS      = 30
	DefaultDataDir  = ".bookloader"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Scale    float64        `yaml:"scale" mapstructure:"scale"`
	Policy   string         `yaml:"policy" mapstructure:"policy"`
	Theme    string         `yaml:"theme" mapstructure:"theme"`
	FPS      int            `yaml:"fps" mapstructure:"fps"`
	Dt       float64        `yaml:"dt" mapstructure:"dt"`
	Duration float64        `yaml:"duration" mapstructure:"duration"`
	Warmup   float64        `yaml:"warmup" mapstructure:"warmup"`
	DataDir  string         `yaml:"data_dir" mapstructure:"data_dir"`
	Render   render.Options `yaml:"render" mapstructure:"render"`
	Logging  logging.Config `yaml:"logging" mapstructure:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Scale:    DefaultScale,
		Policy:   string(book.PolicyRestart),
		Theme:    "classic",
		FPS:      DefaultFPS,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		DataDir:  DefaultDataDir,
		Render:   render.DefaultOptions(),
		Logging: logging.Config{
			File:  logging.DefaultFile(),
			Level: "INFO",
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the values the loader and sampler cannot recover from.
func (c *Config) Validate() error {
	if c.Scale < book.MinScale {
		return fmt.Errorf("%w: scale must be at least %g, got %g", ErrInvalid, book.MinScale, c.Scale)
	}
	if _, err := book.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Dt <= 0 || c.Duration <= 0 {
		return fmt.Errorf("%w: dt and duration must be positive", ErrInvalid)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size must be positive", ErrInvalid)
	}
	return nil
}

// BookOptions returns the loader options this config selects.
func (c *Config) BookOptions() book.Options {
	policy, _ := book.ParsePolicy(c.Policy)
	return book.Options{Scale: c.Scale, Policy: policy}
}
