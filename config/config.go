package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/astei/blueprintcheck/blueprint"
)

// Config holds the settings of a validation run. Every field can also be
// set from the command line.
type Config struct {
	Root     string `yaml:"root"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"`
	Workers  int    `yaml:"workers"`
}

func Default() Config {
	return Config{
		Root:     "src",
		MinLevel: blueprint.DefaultMinLevel,
		MaxLevel: blueprint.DefaultMaxLevel,
		Workers:  runtime.NumCPU(),
	}
}

// Load reads a YAML config on top of the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New("config: root must not be empty")
	case c.MinLevel < 0:
		return fmt.Errorf("config: min_level %d is negative", c.MinLevel)
	case c.MaxLevel < 1:
		return fmt.Errorf("config: max_level must be at least 1, got %d", c.MaxLevel)
	case c.MaxLevel < c.MinLevel:
		return fmt.Errorf("config: max_level %d is below min_level %d", c.MaxLevel, c.MinLevel)
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Checker builds a blueprint checker from the config.
func (c Config) Checker() *blueprint.Checker {
	return &blueprint.Checker{
		MinLevel: c.MinLevel,
		MaxLevel: c.MaxLevel,
		Workers:  c.Workers,
	}
}
