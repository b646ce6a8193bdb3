// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Run       RunConfig       `yaml:"run"`
	Field     FieldConfig     `yaml:"field"`
	Agents    AgentsConfig    `yaml:"agents"`
	Danger    DangerConfig    `yaml:"danger"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`
}

// GridConfig holds the simulation grid dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RunConfig holds run-length and output parameters.
type RunConfig struct {
	TimeSteps int    `yaml:"time_steps"` // Number of ticks per run
	Seed      int64  `yaml:"seed"`       // RNG seed (0 = time-based)
	FPS       int    `yaml:"fps"`        // Animation frame rate
	Output    string `yaml:"output"`     // GIF output path
}

// FieldConfig holds gradient field parameters.
type FieldConfig struct {
	Variant     string  `yaml:"variant"`      // "gradient" or "zero"
	DecayLength float64 `yaml:"decay_length"` // Exponential decay constant in cells
}

// AgentsConfig holds agent population parameters.
type AgentsConfig struct {
	Count int `yaml:"count"`
}

// DangerConfig holds decorative danger-marker parameters.
type DangerConfig struct {
	Count int `yaml:"count"` // Number of marked cells (0 = disabled)
}

// RenderConfig holds rasterization parameters.
type RenderConfig struct {
	CellSize int `yaml:"cell_size"` // Pixels per grid cell
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Track bool `yaml:"track"` // Record per-tick agent positions
}

// ServerConfig holds live-view server parameters.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address ("" = disabled)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
