package main

import (
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/sigscope/config"
	"gitlab.com/tinyland/lab/sigscope/scope"
	"gitlab.com/tinyland/lab/sigscope/sources"
)

// buildSources registers the sources the variant's profiles read, in
// profile order. Unknown source names are skipped; the scope window reports
// them as unregistered when selected.
func buildSources(cfg *config.Config, variant scope.Variant, logger *slog.Logger) *sources.Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := sources.NewRegistry()

	for _, name := range variant.Sources() {
		switch name {
		case "gpio":
			registry.Register(sources.NewDeviceSource(cfg.Device.Path, logger))
		case "cpu":
			registry.Register(sources.NewCPUSource(logger))
		case "ram":
			registry.Register(sources.NewRAMSource(logger))
		default:
			logger.Warn("no source implementation", "source", name)
		}
	}

	return registry
}
