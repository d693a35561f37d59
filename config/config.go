// Package config provides configuration parsing for sigscope.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval bounds how fast the chart may poll a source.
const minPollInterval = 10 * time.Millisecond

// Config represents the sigscope configuration.
type Config struct {
	// Scope holds sampling settings.
	Scope ScopeConfig `yaml:"scope"`

	// Device holds GPIO character device settings.
	Device DeviceConfig `yaml:"device"`

	// Display holds TUI rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Log holds log output settings.
	Log LogConfig `yaml:"log"`
}

// ScopeConfig holds sampling settings.
type ScopeConfig struct {
	// Variant selects the source set: "gpio" or "sysmon".
	Variant string `yaml:"variant"`
	// PollInterval is a duration string (e.g. "100ms") between samples.
	PollInterval string `yaml:"poll_interval"`
}

// DeviceConfig holds GPIO character device settings.
type DeviceConfig struct {
	// Path is the device file written by the GPIO driver.
	Path string `yaml:"path"`
}

// DisplayConfig holds TUI rendering settings.
type DisplayConfig struct {
	// Theme selects the color theme: "monitoring", "minimal", or "light".
	Theme string `yaml:"theme"`
	// ChartHeight is the number of terminal rows used by the plot. 0 fills
	// the available height.
	ChartHeight int `yaml:"chart_height"`
	// SnapshotDir is where PNG snapshots of the chart are written.
	SnapshotDir string `yaml:"snapshot_dir"`
	// Mouse enables clickable buttons.
	Mouse bool `yaml:"mouse"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	// File is the path for log output. The TUI owns the terminal, so logs
	// never go to stderr while it runs.
	File string `yaml:"file"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Scope: ScopeConfig{
			Variant:      "gpio",
			PollInterval: "100ms",
		},
		Device: DeviceConfig{
			Path: "/dev/raspGPIODr",
		},
		Display: DisplayConfig{
			Theme:       "monitoring",
			ChartHeight: 0,
			SnapshotDir: filepath.Join(home, "Pictures", "sigscope"),
			Mouse:       true,
		},
		Log: LogConfig{
			File:  filepath.Join(xdgStateHome(home), "sigscope", "sigscope.log"),
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	config.Normalize()

	return config, nil
}

// Normalize lowercases the name fields so that "SysMon" and "sysmon" are the
// same variant, as they are for scope.VariantByName.
func (c *Config) Normalize() {
	c.Scope.Variant = strings.ToLower(strings.TrimSpace(c.Scope.Variant))
	c.Display.Theme = strings.ToLower(strings.TrimSpace(c.Display.Theme))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// PollInterval returns the parsed sampling interval.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Scope.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("scope.poll_interval: %w", err)
	}
	return d, nil
}

// Validate checks the configuration for required fields and logical consistency.
func (c *Config) Validate() error {
	validVariants := map[string]bool{"gpio": true, "sysmon": true}
	if !validVariants[c.Scope.Variant] {
		return fmt.Errorf("scope.variant must be 'gpio' or 'sysmon', got %q", c.Scope.Variant)
	}

	interval, err := c.PollInterval()
	if err != nil {
		return err
	}
	if interval < minPollInterval {
		return fmt.Errorf("scope.poll_interval must be at least %s, got %s", minPollInterval, interval)
	}

	if c.Scope.Variant == "gpio" && c.Device.Path == "" {
		return fmt.Errorf("device.path is required for the gpio variant")
	}

	validThemes := map[string]bool{"monitoring": true, "minimal": true, "light": true}
	if !validThemes[c.Display.Theme] {
		return fmt.Errorf("display.theme must be 'monitoring', 'minimal', or 'light', got %q", c.Display.Theme)
	}
	if c.Display.ChartHeight < 0 {
		return fmt.Errorf("display.chart_height must be non-negative, got %d", c.Display.ChartHeight)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
