package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/sigscope/config"
	"gitlab.com/tinyland/lab/sigscope/scope"
)

func TestApplyFlagOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlagOverrides(cfg, flagOverrides{
		variant:     "sysmon",
		device:      "/tmp/gpio",
		interval:    "200ms",
		theme:       "light",
		snapshotDir: "/tmp/shots",
		logFile:     "/tmp/sigscope.log",
		noMouse:     true,
		verbose:     true,
	})

	if cfg.Scope.Variant != "sysmon" {
		t.Errorf("variant = %s", cfg.Scope.Variant)
	}
	if cfg.Device.Path != "/tmp/gpio" {
		t.Errorf("device = %s", cfg.Device.Path)
	}
	if cfg.Scope.PollInterval != "200ms" {
		t.Errorf("interval = %s", cfg.Scope.PollInterval)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("theme = %s", cfg.Display.Theme)
	}
	if cfg.Display.SnapshotDir != "/tmp/shots" {
		t.Errorf("snapshot dir = %s", cfg.Display.SnapshotDir)
	}
	if cfg.Log.File != "/tmp/sigscope.log" {
		t.Errorf("log file = %s", cfg.Log.File)
	}
	if cfg.Display.Mouse {
		t.Error("expected mouse disabled")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %s", cfg.Log.Level)
	}
}

func TestApplyFlagOverrides_MixedCaseVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlagOverrides(cfg, flagOverrides{variant: "SysMon", theme: "MINIMAL"})

	if cfg.Scope.Variant != "sysmon" || cfg.Display.Theme != "minimal" {
		t.Errorf("expected lowercased names, got %q %q", cfg.Scope.Variant, cfg.Display.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestApplyFlagOverrides_EmptyKeepsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	want := *cfg
	applyFlagOverrides(cfg, flagOverrides{})

	if cfg.Scope != want.Scope || cfg.Device != want.Device || cfg.Display != want.Display || cfg.Log != want.Log {
		t.Errorf("empty overrides changed config: %+v", cfg)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sigscope.log")
	logger, closeLog, err := newLogger(config.LogConfig{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("source selected", "source", "ram")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "source=ram") {
		t.Errorf("expected info entry in log, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestNewLogger_NoFileDiscards(t *testing.T) {
	logger, closeLog, err := newLogger(config.LogConfig{})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	logger.Info("dropped")
}

func TestBuildSources(t *testing.T) {
	cfg := config.DefaultConfig()

	gpio := buildSources(cfg, scope.GPIOVariant, slog.Default())
	if got := gpio.Names(); len(got) != 1 || got[0] != "gpio" {
		t.Errorf("gpio sources = %v", got)
	}

	sys := buildSources(cfg, scope.SysmonVariant, slog.Default())
	if got := sys.Names(); len(got) != 2 || got[0] != "cpu" || got[1] != "ram" {
		t.Errorf("sysmon sources = %v", got)
	}
}

func TestBuildSources_UnknownSkipped(t *testing.T) {
	v := scope.Variant{Name: "custom", Profiles: []scope.Profile{{Source: "thermal"}}}
	reg := buildSources(config.DefaultConfig(), v, slog.Default())
	if len(reg.Names()) != 0 {
		t.Errorf("expected no sources, got %v", reg.Names())
	}
}
