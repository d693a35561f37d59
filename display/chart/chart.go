// Package chart renders a window of samples as a terminal line chart, as a
// one-line sparkline, or as a PNG snapshot. The Y axis is always drawn over
// the fixed bounds supplied by the caller; sample values never rescale it.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs used by the line chart.
const (
	glyphLine   = '─'
	glyphRise   = '│'
	glyphMarker = '●'
	glyphAxis   = '┤'
	glyphBlank  = ' '
)

// Config controls the appearance of a line chart.
type Config struct {
	// Width is the number of plot columns, excluding labels. If 0, one
	// column per sample is used.
	Width int
	// Height is the number of plot rows. Must be at least 2.
	Height int
	// YMin and YMax are the fixed axis bounds.
	YMin float64
	YMax float64
	// YStep is the spacing between axis labels. If 0, only the bounds are labeled.
	YStep float64
	// LineColor styles the plotted line. Empty disables styling.
	LineColor lipgloss.Color
	// MarkerColor styles the latest-point marker and its annotation.
	MarkerColor lipgloss.Color
	// AxisColor styles the Y-axis labels and rule.
	AxisColor lipgloss.Color
}

// Render draws values (oldest first) as a line chart. The newest sample is
// marked and its value printed to the right of the plot.
func Render(values []float64, cfg Config) string {
	if len(values) == 0 {
		return ""
	}

	height := cfg.Height
	if height < 2 {
		height = 2
	}
	width := cfg.Width
	if width <= 0 {
		width = len(values)
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(glyphBlank), width))
	}

	// Plot one row per column, joining neighbours with vertical strokes.
	prevRow := -1
	lastRow := 0
	for c := 0; c < width; c++ {
		v := sampleAt(values, c, width)
		row := rowFor(v, cfg.YMin, cfg.YMax, height)
		grid[row][c] = glyphLine
		if prevRow >= 0 && prevRow != row {
			lo, hi := prevRow, row
			if lo > hi {
				lo, hi = hi, lo
			}
			for r := lo; r <= hi; r++ {
				if r != row {
					grid[r][c] = glyphRise
				}
			}
		}
		prevRow = row
		lastRow = row
	}
	grid[lastRow][width-1] = glyphMarker

	// Annotate the latest point one row above the marker when there is room.
	annotation := FormatValue(values[len(values)-1])
	annotRow := lastRow - 1
	if annotRow < 0 {
		annotRow = lastRow
	}

	labels := axisLabels(cfg.YMin, cfg.YMax, cfg.YStep, height)
	gutter := 0
	for _, l := range labels {
		if len(l) > gutter {
			gutter = len(l)
		}
	}

	axisStyle := styleFor(cfg.AxisColor)
	lineStyle := styleFor(cfg.LineColor)
	markerStyle := styleFor(cfg.MarkerColor)

	var sb strings.Builder
	for r := 0; r < height; r++ {
		label := fmt.Sprintf("%*s", gutter, labels[r])
		sb.WriteString(axisStyle(label + " " + string(glyphAxis)))

		for c, ch := range grid[r] {
			switch {
			case ch == glyphBlank:
				sb.WriteRune(ch)
			case r == lastRow && c == width-1:
				sb.WriteString(markerStyle(string(ch)))
			default:
				sb.WriteString(lineStyle(string(ch)))
			}
		}

		if r == annotRow {
			sb.WriteString(" ")
			sb.WriteString(markerStyle(annotation))
		}
		if r < height-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatValue formats a sample for display: integral values without a
// fractional part, everything else with one decimal.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// sampleAt returns the value plotted at column c of width columns, linearly
// interpolating between samples when the plot is wider than the data.
func sampleAt(values []float64, c, width int) float64 {
	n := len(values)
	if n == 1 || width == 1 {
		return values[n-1]
	}
	pos := float64(c) * float64(n-1) / float64(width-1)
	i := int(pos)
	if i >= n-1 {
		return values[n-1]
	}
	frac := pos - float64(i)
	return values[i] + (values[i+1]-values[i])*frac
}

// rowFor maps v to a grid row, row 0 being the top. Values outside the
// bounds are clamped to the edge rows.
func rowFor(v, yMin, yMax float64, height int) int {
	if yMax <= yMin || math.IsNaN(v) {
		return height - 1
	}
	norm := (v - yMin) / (yMax - yMin)
	norm = math.Max(0, math.Min(1, norm))
	return height - 1 - int(math.Round(norm*float64(height-1)))
}

// axisLabels returns one label per row. Ticks run from yMin up to but not
// including yMax in steps of yStep; when there are more ticks than rows,
// the step is widened until they fit.
func axisLabels(yMin, yMax, yStep float64, height int) []string {
	labels := make([]string, height)
	if yMax <= yMin {
		labels[height-1] = FormatValue(yMin)
		return labels
	}
	if yStep <= 0 {
		labels[0] = FormatValue(yMax)
		labels[height-1] = FormatValue(yMin)
		return labels
	}

	step := yStep
	for (yMax-yMin)/step > float64(height) {
		step += yStep
	}

	for v := yMin; v < yMax; v += step {
		r := rowFor(v, yMin, yMax, height)
		if labels[r] == "" {
			labels[r] = FormatValue(v)
		}
	}
	return labels
}

// styleFor returns a render function for color, or the identity when
// color is empty.
func styleFor(color lipgloss.Color) func(string) string {
	if color == "" {
		return func(s string) string { return s }
	}
	style := lipgloss.NewStyle().Foreground(color)
	return func(s string) string { return style.Render(s) }
}
