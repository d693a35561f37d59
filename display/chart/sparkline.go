package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// levels are the eight block heights a sparkline cell can take, lowest first.
var levels = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the one-line rendering of a sample window.
type SparklineConfig struct {
	// Width is the number of cells. Only the newest Width samples are shown;
	// a shorter window is right-aligned. If 0, one cell per sample.
	Width int
	// YMin and YMax are the same fixed bounds the line chart uses.
	YMin float64
	YMax float64
	// LineColor styles every cell but the newest.
	LineColor lipgloss.Color
	// MarkerColor styles the newest cell, mirroring the chart's marker.
	MarkerColor lipgloss.Color
}

// RenderSparkline draws values (oldest first) as block cells scaled to the
// fixed bounds. Out-of-range samples clamp to the lowest or highest block.
func RenderSparkline(values []float64, cfg SparklineConfig) string {
	if len(values) == 0 {
		return ""
	}

	width := cfg.Width
	if width <= 0 {
		width = len(values)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	cells := make([]rune, len(values))
	for i, v := range values {
		cells[i] = levelFor(v, cfg.YMin, cfg.YMax)
	}

	line := styleFor(cfg.LineColor)
	marker := styleFor(cfg.MarkerColor)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(string(glyphBlank), width-len(cells)))
	if len(cells) > 1 {
		sb.WriteString(line(string(cells[:len(cells)-1])))
	}
	sb.WriteString(marker(string(cells[len(cells)-1])))
	return sb.String()
}

// levelFor maps v to a block rune. A degenerate range renders the lowest block.
func levelFor(v, yMin, yMax float64) rune {
	if yMax <= yMin || math.IsNaN(v) {
		return levels[0]
	}
	norm := math.Max(0, math.Min(1, (v-yMin)/(yMax-yMin)))
	return levels[int(math.Round(norm*float64(len(levels)-1)))]
}
