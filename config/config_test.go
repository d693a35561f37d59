package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scope.Variant != "gpio" {
		t.Errorf("expected Variant=gpio, got %s", cfg.Scope.Variant)
	}
	if cfg.Scope.PollInterval != "100ms" {
		t.Errorf("expected PollInterval=100ms, got %s", cfg.Scope.PollInterval)
	}
	if cfg.Device.Path != "/dev/raspGPIODr" {
		t.Errorf("expected Device.Path=/dev/raspGPIODr, got %s", cfg.Device.Path)
	}
	if cfg.Display.Theme != "monitoring" {
		t.Errorf("expected Theme=monitoring, got %s", cfg.Display.Theme)
	}
	if !cfg.Display.Mouse {
		t.Error("expected Mouse to be enabled by default")
	}
	if cfg.Log.File == "" {
		t.Error("expected Log.File to be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestPollInterval(t *testing.T) {
	cfg := DefaultConfig()
	d, err := cfg.PollInterval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %s", d)
	}

	cfg.Scope.PollInterval = "soon"
	if _, err := cfg.PollInterval(); err == nil {
		t.Error("expected error for unparseable interval")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.Scope.Variant != "gpio" {
		t.Errorf("expected default variant, got %s", cfg.Scope.Variant)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device.Path != "/dev/raspGPIODr" {
		t.Errorf("expected default device path, got %s", cfg.Device.Path)
	}
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `scope:
  variant: sysmon
display:
  theme: light
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scope.Variant != "sysmon" {
		t.Errorf("expected variant=sysmon, got %s", cfg.Scope.Variant)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Display.Theme)
	}
	// Unspecified fields keep their defaults.
	if cfg.Scope.PollInterval != "100ms" {
		t.Errorf("expected default poll interval, got %s", cfg.Scope.PollInterval)
	}
	if cfg.Device.Path != "/dev/raspGPIODr" {
		t.Errorf("expected default device path, got %s", cfg.Device.Path)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "sysmon without device", mutate: func(c *Config) {
			c.Scope.Variant = "sysmon"
			c.Device.Path = ""
		}},
		{name: "unknown variant", mutate: func(c *Config) { c.Scope.Variant = "audio" }, wantErr: "scope.variant"},
		{name: "bad interval", mutate: func(c *Config) { c.Scope.PollInterval = "fast" }, wantErr: "scope.poll_interval"},
		{name: "interval too short", mutate: func(c *Config) { c.Scope.PollInterval = "1ms" }, wantErr: "at least"},
		{name: "gpio without device", mutate: func(c *Config) { c.Device.Path = "" }, wantErr: "device.path"},
		{name: "unknown theme", mutate: func(c *Config) { c.Display.Theme = "neon" }, wantErr: "display.theme"},
		{name: "negative height", mutate: func(c *Config) { c.Display.ChartHeight = -1 }, wantErr: "chart_height"},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Scope.Variant = "sysmon"
	cfg.Display.ChartHeight = 12

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Scope.Variant != "sysmon" || loaded.Display.ChartHeight != 12 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SIGSCOPE_VARIANT", "sysmon")
	t.Setenv("SIGSCOPE_DEVICE", "/tmp/gpio")
	t.Setenv("SIGSCOPE_INTERVAL", "250ms")
	t.Setenv("SIGSCOPE_THEME", "minimal")
	t.Setenv("SIGSCOPE_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	if cfg.Scope.Variant != "sysmon" {
		t.Errorf("variant = %s", cfg.Scope.Variant)
	}
	if cfg.Device.Path != "/tmp/gpio" {
		t.Errorf("device = %s", cfg.Device.Path)
	}
	if cfg.Scope.PollInterval != "250ms" {
		t.Errorf("interval = %s", cfg.Scope.PollInterval)
	}
	if cfg.Display.Theme != "minimal" {
		t.Errorf("theme = %s", cfg.Display.Theme)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %s", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_MixedCase(t *testing.T) {
	t.Setenv("SIGSCOPE_VARIANT", "SysMon")
	t.Setenv("SIGSCOPE_THEME", "Light")
	t.Setenv("SIGSCOPE_LOG_LEVEL", "WARN")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	if cfg.Scope.Variant != "sysmon" || cfg.Display.Theme != "light" || cfg.Log.Level != "warn" {
		t.Errorf("expected lowercased names, got %q %q %q", cfg.Scope.Variant, cfg.Display.Theme, cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("mixed-case overrides should validate, got %v", err)
	}
}

func TestLoadConfig_MixedCaseVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scope:\n  variant: GPIO\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scope.Variant != "gpio" {
		t.Errorf("variant = %q, want gpio", cfg.Scope.Variant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoad_FromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SIGSCOPE_THEME", "")

	path := filepath.Join(dir, "sigscope", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("display:\n  theme: minimal\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Theme != "minimal" {
		t.Errorf("expected theme from XDG config, got %s", cfg.Display.Theme)
	}
}

func TestSearchPaths_XDGFirst(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	paths := SearchPaths()
	if len(paths) == 0 || paths[0] != "/custom/xdg/sigscope/config.yaml" {
		t.Errorf("expected XDG path first, got %v", paths)
	}
}
