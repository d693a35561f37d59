package config

import (
	"os"
	"path/filepath"
)

// Load reads configuration from the standard config path and applies
// environment overrides.
// Search order:
//  1. $XDG_CONFIG_HOME/sigscope/config.yaml
//  2. ~/.config/sigscope/config.yaml
//
// If no file exists, the defaults are used.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			loaded, err := LoadConfig(p)
			if err != nil {
				return nil, err
			}
			cfg = loaded
			break
		}
	}
	ApplyEnvOverrides(cfg)
	return cfg, nil
}

// ApplyEnvOverrides overrides config values from SIGSCOPE_* environment
// variables.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIGSCOPE_VARIANT"); v != "" {
		cfg.Scope.Variant = v
	}
	if v := os.Getenv("SIGSCOPE_DEVICE"); v != "" {
		cfg.Device.Path = v
	}
	if v := os.Getenv("SIGSCOPE_INTERVAL"); v != "" {
		cfg.Scope.PollInterval = v
	}
	if v := os.Getenv("SIGSCOPE_THEME"); v != "" {
		cfg.Display.Theme = v
	}
	if v := os.Getenv("SIGSCOPE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	cfg.Normalize()
}

// SearchPaths returns the ordered list of config file paths to try.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "sigscope", "config.yaml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "sigscope", "config.yaml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
