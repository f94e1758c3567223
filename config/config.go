// Package config holds the tunables and key bindings of a sculpt session.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Version is the current configuration schema version.
const Version = 1

// Config is the full sculpt configuration.
type Config struct {
	Version    int                 `toml:"version" yaml:"version"`
	Model      ModelConfig         `toml:"model" yaml:"model"`
	Thresholds Thresholds          `toml:"thresholds" yaml:"thresholds"`
	Keymap     map[string][]string `toml:"keymap" yaml:"keymap"`
	Logging    LoggingConfig       `toml:"logging" yaml:"logging"`
}

// ModelConfig describes the brick model being sculpted.
type ModelConfig struct {
	// Source is the collection namespace; rendered bricks are named Bricker_<Source>_brick__x,y,z.
	Source    string     `toml:"source" yaml:"source"`
	BrickType string     `toml:"brick_type" yaml:"brick_type"`
	Material  string     `toml:"material" yaml:"material"`
	Step      [3]float32 `toml:"step" yaml:"step"`
}

// Thresholds are the empirically tuned interaction constants.
type Thresholds struct {
	DragPixels         float64  `toml:"drag_pixels" yaml:"drag_pixels"`
	RemovePixels       float64  `toml:"remove_pixels" yaml:"remove_pixels"`
	SoloTravelPixels   float64  `toml:"solo_travel_pixels" yaml:"solo_travel_pixels"`
	SoloDelay          Duration `toml:"solo_delay" yaml:"solo_delay"`
	CtrlTapWindow      Duration `toml:"ctrl_tap_window" yaml:"ctrl_tap_window"`
	TickInterval       Duration `toml:"tick_interval" yaml:"tick_interval"`
	RoundWidthDivisor  float32  `toml:"round_width_divisor" yaml:"round_width_divisor"`
	SquareWidthDivisor float32  `toml:"square_width_divisor" yaml:"square_width_divisor"`
}

type LoggingConfig struct {
	Prefix string `toml:"prefix" yaml:"prefix"`
	Debug  bool   `toml:"debug" yaml:"debug"`
}

// Duration decodes "750ms" style strings from TOML and YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultKeymap mirrors the stock bindings; keys are action names.
func DefaultKeymap() map[string][]string {
	return map[string][]string{
		"switch_mode draw":        {"D"},
		"switch_mode merge_split": {"M"},
		"switch_mode paint":       {"P"},
		"add brick":               {"LEFTMOUSE"},
		"remove brick":            {"ALT+LEFTMOUSE", "SHIFT+LEFTMOUSE"},
		"split":                   {"ALT+LEFTMOUSE", "SHIFT+LEFTMOUSE"},
		"merge":                   {"LEFTMOUSE"},
		"paint":                   {"LEFTMOUSE"},
		"commit":                  {"RET"},
		"cancel":                  {"ESC"},
	}
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Model: ModelConfig{
			Source:    "Model",
			BrickType: "BRICKS",
			Step:      [3]float32{1, 1, 1.2},
		},
		Thresholds: Thresholds{
			DragPixels:         5,
			RemovePixels:       10,
			SoloTravelPixels:   10,
			SoloDelay:          Duration{750 * time.Millisecond},
			CtrlTapWindow:      Duration{200 * time.Millisecond},
			TickInterval:       Duration{100 * time.Millisecond},
			RoundWidthDivisor:  3.2,
			SquareWidthDivisor: 2.05,
		},
		Keymap: DefaultKeymap(),
		Logging: LoggingConfig{
			Prefix: "bricksculpt",
		},
	}
}

// Validate checks the configuration for values the session cannot work with.
func (c *Config) Validate() error {
	if c.Model.Source == "" {
		return fmt.Errorf("model.source is required")
	}
	if c.Model.BrickType == "" {
		return fmt.Errorf("model.brick_type is required")
	}
	for i, v := range c.Model.Step {
		if v <= 0 {
			return fmt.Errorf("model.step[%d] must be positive, got %v", i, v)
		}
	}
	t := c.Thresholds
	if t.DragPixels < 0 || t.RemovePixels < 0 || t.SoloTravelPixels < 0 {
		return fmt.Errorf("thresholds: pixel distances must not be negative")
	}
	if t.TickInterval.Duration <= 0 {
		return fmt.Errorf("thresholds.tick_interval must be positive")
	}
	if t.RoundWidthDivisor <= 0 || t.SquareWidthDivisor <= 0 {
		return fmt.Errorf("thresholds: width divisors must be positive")
	}
	if len(c.Keymap) == 0 {
		return fmt.Errorf("keymap is empty")
	}
	return nil
}

// ApplyEnvOverrides lets BRICKSCULPT_* variables override file settings.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BRICKSCULPT_SOURCE"); v != "" {
		c.Model.Source = v
	}
	if v := os.Getenv("BRICKSCULPT_MATERIAL"); v != "" {
		c.Model.Material = v
	}
	if v := os.Getenv("BRICKSCULPT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = b
		}
	}
}
