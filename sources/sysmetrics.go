package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

const (
	cpuSourceName = "cpu"
	ramSourceName = "ram"
)

// CPUSource reports total CPU utilization as a percentage.
// Each read measures the delta since the previous read, so the first
// sample after start-up covers the time since process start.
type CPUSource struct {
	logger *slog.Logger

	// percent is overridable for testing.
	percent func(ctx context.Context) ([]float64, error)
}

// NewCPUSource creates a CPUSource. If logger is nil, a no-op logger is used.
func NewCPUSource(logger *slog.Logger) *CPUSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CPUSource{
		logger: logger,
		percent: func(ctx context.Context) ([]float64, error) {
			return cpu.PercentWithContext(ctx, 0, false)
		},
	}
}

// Name returns the source's unique identifier.
func (c *CPUSource) Name() string {
	return cpuSourceName
}

// Read returns the current CPU utilization in the range 0-100.
func (c *CPUSource) Read(ctx context.Context) (float64, error) {
	pcts, err := c.percent(ctx)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("cpu percent: %w: no values returned", ErrMalformedSample)
	}

	v := clampPercent(pcts[0])
	c.logger.Debug("cpu sample", "percent", v)
	return v, nil
}

// RAMSource reports virtual memory utilization as a percentage.
type RAMSource struct {
	logger *slog.Logger

	// virtualMemory is overridable for testing.
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewRAMSource creates a RAMSource. If logger is nil, a no-op logger is used.
func NewRAMSource(logger *slog.Logger) *RAMSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RAMSource{
		logger:        logger,
		virtualMemory: mem.VirtualMemoryWithContext,
	}
}

// Name returns the source's unique identifier.
func (r *RAMSource) Name() string {
	return ramSourceName
}

// Read returns the current RAM utilization in the range 0-100.
func (r *RAMSource) Read(ctx context.Context) (float64, error) {
	stat, err := r.virtualMemory(ctx)
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	if stat == nil {
		return 0, fmt.Errorf("virtual memory: %w: nil stat", ErrMalformedSample)
	}

	v := clampPercent(stat.UsedPercent)
	r.logger.Debug("ram sample", "percent", v, "used", stat.Used, "total", stat.Total)
	return v, nil
}

// clampPercent limits v to the range 0-100.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Compile-time interface compliance checks.
var (
	_ Source = (*CPUSource)(nil)
	_ Source = (*RAMSource)(nil)
)
