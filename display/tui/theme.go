package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemePreset defines a complete color scheme for the scope window.
type ThemePreset struct {
	Name        string
	Description string

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	ShowBorders bool
}

// Predefined theme presets.
var (
	// MonitoringTheme is the default dark theme.
	MonitoringTheme = ThemePreset{
		Name:        "monitoring",
		Description: "Dark theme for signal monitoring",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Accent:      lipgloss.Color("#F97316"),
		Danger:      lipgloss.Color("#EF4444"),
		Muted:       lipgloss.Color("#6B7280"),
		Background:  lipgloss.Color("#1E1B2E"),
		Foreground:  lipgloss.Color("#FFFFFF"),
		ShowBorders: true,
	}

	// MinimalTheme drops borders and mutes the palette.
	MinimalTheme = ThemePreset{
		Name:        "minimal",
		Description: "Clean minimal theme",
		Primary:     lipgloss.Color("#8B5CF6"),
		Secondary:   lipgloss.Color("#67E8F9"),
		Accent:      lipgloss.Color("#FCD34D"),
		Danger:      lipgloss.Color("#F87171"),
		Muted:       lipgloss.Color("#9CA3AF"),
		Background:  lipgloss.Color("#0F172A"),
		Foreground:  lipgloss.Color("#E5E7EB"),
		ShowBorders: false,
	}

	// LightTheme mirrors the grey plot face of a desktop chart window.
	LightTheme = ThemePreset{
		Name:        "light",
		Description: "Light grey plot face",
		Primary:     lipgloss.Color("#1F77B4"),
		Secondary:   lipgloss.Color("#1F77B4"),
		Accent:      lipgloss.Color("#FF7F0E"),
		Danger:      lipgloss.Color("#D62728"),
		Muted:       lipgloss.Color("#555555"),
		Background:  lipgloss.Color("#DEDEDE"),
		Foreground:  lipgloss.Color("#111111"),
		ShowBorders: true,
	}
)

// ThemePresets returns all presets in display order.
func ThemePresets() []ThemePreset {
	return []ThemePreset{MonitoringTheme, MinimalTheme, LightTheme}
}

// ThemeByName returns the preset with the given name, case-insensitively.
func ThemeByName(name string) (ThemePreset, error) {
	for _, p := range ThemePresets() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return ThemePreset{}, fmt.Errorf("unknown theme %q", name)
}

// styles holds the lipgloss styles derived from a preset.
type styles struct {
	title          lipgloss.Style
	chart          lipgloss.Style
	button         lipgloss.Style
	activeButton   lipgloss.Style
	status         lipgloss.Style
	statusError    lipgloss.Style
	statusEmphasis lipgloss.Style
}

// newStyles builds the styles for a preset.
func newStyles(t ThemePreset) styles {
	s := styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),

		chart: lipgloss.NewStyle().
			Padding(0, 1),

		button: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 2),

		activeButton: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Foreground).
			Background(t.Primary).
			Padding(0, 2),

		status: lipgloss.NewStyle().
			Foreground(t.Muted),

		statusError: lipgloss.NewStyle().
			Foreground(t.Danger),

		statusEmphasis: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
	}

	if t.ShowBorders {
		s.chart = s.chart.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted)
		s.button = s.button.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Muted)
		s.activeButton = s.activeButton.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Primary)
	}

	return s
}
