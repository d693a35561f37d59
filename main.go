// sigscope is a terminal oscilloscope for slow signals.
//
// It polls a signal source every 100ms, keeps a fixed-size sliding window of
// recent samples, and draws them as a scrolling line chart. Buttons below the
// chart (clickable, or via their key bindings) switch the signal shown.
//
// Two variants are built in:
//
//	gpio    charts the Raspberry Pi GPIO driver's /dev/raspGPIODr device;
//	        the SIG button asks the driver to switch input lines
//	sysmon  charts CPU or RAM utilization
//
// Usage:
//
//	sigscope [flags]
//
// Flags:
//
//	-config string        Path to configuration file (default: ~/.config/sigscope/config.yaml)
//	-variant string       Source set to chart (gpio|sysmon)
//	-device string        GPIO device path
//	-interval string      Sampling interval (e.g. 100ms)
//	-theme string         Theme override (monitoring|minimal|light)
//	-snapshot-dir string  Directory for PNG snapshots
//	-log-file string      Log file path
//	-no-mouse             Disable clickable buttons
//	-check                Run preflight checks and exit
//	-json                 Output preflight checks as JSON (with -check)
//	-write-config         Write the effective configuration and exit
//	-verbose              Enable debug logging
//	-version              Print version and exit
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/sigscope/config"
	"gitlab.com/tinyland/lab/sigscope/display/color"
	"gitlab.com/tinyland/lab/sigscope/display/tui"
	"gitlab.com/tinyland/lab/sigscope/scope"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/sigscope/config.yaml)")
		variantFlag = flag.String("variant", "", "Source set to chart (gpio|sysmon)")
		deviceFlag  = flag.String("device", "", "GPIO device path")
		intervalFlg = flag.String("interval", "", "Sampling interval (e.g. 100ms)")
		themeFlag   = flag.String("theme", "", "Theme override (monitoring|minimal|light)")
		snapshotDir = flag.String("snapshot-dir", "", "Directory for PNG snapshots")
		logFile     = flag.String("log-file", "", "Log file path")
		noMouse     = flag.Bool("no-mouse", false, "Disable clickable buttons")
		runCheck    = flag.Bool("check", false, "Run preflight checks and exit")
		checkJSON   = flag.Bool("json", false, "Output preflight checks as JSON (with -check)")
		writeConfig = flag.Bool("write-config", false, "Write the effective configuration and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sigscope %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration
	// ---------------------------------------------------------------

	var cfg *config.Config
	var cfgErr error

	if *configPath != "" {
		cfg, cfgErr = config.LoadConfig(*configPath)
		if cfgErr == nil {
			config.ApplyEnvOverrides(cfg)
		}
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", cfgErr)
		os.Exit(1)
	}

	applyFlagOverrides(cfg, flagOverrides{
		variant:     *variantFlag,
		device:      *deviceFlag,
		interval:    *intervalFlg,
		theme:       *themeFlag,
		snapshotDir: *snapshotDir,
		logFile:     *logFile,
		noMouse:     *noMouse,
		verbose:     *verbose,
	})

	if *writeConfig {
		path := *configPath
		if path == "" {
			path = config.SearchPaths()[0]
		}
		if err := config.SaveConfig(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		os.Exit(0)
	}

	color.Apply()

	if *runCheck {
		os.Exit(runPreflight(os.Stdout, cfg, *checkJSON))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// ---------------------------------------------------------------
	// Logging
	// ---------------------------------------------------------------

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// ---------------------------------------------------------------
	// TUI
	// ---------------------------------------------------------------

	if err := runTUI(cfg, logger); err != nil {
		logger.Error("tui exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "sigscope: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// flagOverrides carries command-line values that take precedence over the
// config file and environment.
type flagOverrides struct {
	variant     string
	device      string
	interval    string
	theme       string
	snapshotDir string
	logFile     string
	noMouse     bool
	verbose     bool
}

// applyFlagOverrides copies non-empty flag values onto cfg.
func applyFlagOverrides(cfg *config.Config, f flagOverrides) {
	if f.variant != "" {
		cfg.Scope.Variant = f.variant
	}
	if f.device != "" {
		cfg.Device.Path = f.device
	}
	if f.interval != "" {
		cfg.Scope.PollInterval = f.interval
	}
	if f.theme != "" {
		cfg.Display.Theme = f.theme
	}
	if f.snapshotDir != "" {
		cfg.Display.SnapshotDir = f.snapshotDir
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.noMouse {
		cfg.Display.Mouse = false
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Normalize()
}

// newLogger opens the configured log file and returns a text logger
// writing to it. The returned func closes the file.
func newLogger(lc config.LogConfig) (*slog.Logger, func(), error) {
	level := parseLevel(lc.Level)
	if lc.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

// parseLevel maps a config level name to a slog level, defaulting to Info.
func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runTUI builds the sources for the configured variant and runs the
// scope window until the user quits.
func runTUI(cfg *config.Config, logger *slog.Logger) error {
	variant, err := scope.VariantByName(cfg.Scope.Variant)
	if err != nil {
		return err
	}
	interval, err := cfg.PollInterval()
	if err != nil {
		return err
	}
	theme, err := tui.ThemeByName(cfg.Display.Theme)
	if err != nil {
		return err
	}

	registry := buildSources(cfg, variant, logger)

	var zones *zone.Manager
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Display.Mouse {
		zones = zone.New()
		defer zones.Close()
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	model := tui.New(tui.Options{
		Variant:     variant,
		Sources:     registry,
		Interval:    interval,
		Theme:       theme,
		ChartHeight: cfg.Display.ChartHeight,
		SnapshotDir: cfg.Display.SnapshotDir,
		Logger:      logger,
		Zones:       zones,
	})

	logger.Info("starting scope",
		"variant", variant.Name,
		"sources", registry.Names(),
		"interval", interval,
	)

	p := tea.NewProgram(model, progOpts...)
	_, err = p.Run()
	return err
}
