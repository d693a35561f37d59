package chart

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SnapshotConfig controls the PNG rendering of a chart.
type SnapshotConfig struct {
	Width  int
	Height int
	YMin   float64
	YMax   float64
	YStep  float64

	Background color.Color
	Grid       color.Color
	Line       color.Color
	Marker     color.Color
}

// DefaultSnapshotConfig returns the snapshot palette: a light grey face
// with a blue line and an orange latest-point marker.
func DefaultSnapshotConfig(yMin, yMax, yStep float64) SnapshotConfig {
	return SnapshotConfig{
		Width:      640,
		Height:     480,
		YMin:       yMin,
		YMax:       yMax,
		YStep:      yStep,
		Background: color.NRGBA{R: 0xDE, G: 0xDE, B: 0xDE, A: 0xFF},
		Grid:       color.NRGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF},
		Line:       color.NRGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF},
		Marker:     color.NRGBA{R: 0xFF, G: 0x7F, B: 0x0E, A: 0xFF},
	}
}

// markerRadius is the half-width in pixels of the latest-point marker.
const markerRadius = 4

// RenderImage draws values as a line chart into a new image.
func RenderImage(values []float64, cfg SnapshotConfig) *image.NRGBA {
	if cfg.Width < 2 {
		cfg.Width = 2
	}
	if cfg.Height < 2 {
		cfg.Height = 2
	}

	img := imaging.New(cfg.Width, cfg.Height, cfg.Background)

	if cfg.YStep > 0 && cfg.YMax > cfg.YMin {
		for v := cfg.YMin; v < cfg.YMax; v += cfg.YStep {
			y := pixelRow(v, cfg)
			for x := 0; x < cfg.Width; x++ {
				img.Set(x, y, cfg.Grid)
			}
		}
	}

	if len(values) == 0 {
		return img
	}

	px, py := pixelPoint(values, 0, cfg)
	for i := 1; i < len(values); i++ {
		x, y := pixelPoint(values, i, cfg)
		drawLine(img, px, py, x, y, cfg.Line)
		px, py = x, y
	}

	for dy := -markerRadius; dy <= markerRadius; dy++ {
		for dx := -markerRadius; dx <= markerRadius; dx++ {
			img.Set(px+dx, py+dy, cfg.Marker)
		}
	}

	return img
}

// Snapshot renders values and writes the image to path. The format is
// chosen from the file extension.
func Snapshot(values []float64, cfg SnapshotConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := imaging.Save(RenderImage(values, cfg), path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// pixelPoint returns the pixel position of sample i.
func pixelPoint(values []float64, i int, cfg SnapshotConfig) (int, int) {
	x := cfg.Width - 1
	if len(values) > 1 {
		x = i * (cfg.Width - 1) / (len(values) - 1)
	}
	return x, pixelRow(values[i], cfg)
}

// pixelRow maps v to an image row, clamped to the image bounds.
func pixelRow(v float64, cfg SnapshotConfig) int {
	return rowFor(v, cfg.YMin, cfg.YMax, cfg.Height)
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
