package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// button is a clickable action below the chart.
type button struct {
	id     string
	label  string
	active bool
	// source is the profile to select; empty for the toggle button.
	source string
}

// buttonIDPrefix namespaces zone ids so they cannot collide with other
// marked regions.
const buttonIDPrefix = "sigscope-btn-"

// buttons returns the buttons for the current variant: a single toggle
// button when the variant drives a device, otherwise one select button
// per profile.
func (m Model) buttons() []button {
	v := m.state.Variant
	if v.Toggle {
		return []button{{
			id:     buttonIDPrefix + "toggle",
			label:  m.state.Active.Label,
			active: true,
		}}
	}

	out := make([]button, 0, len(v.Profiles))
	for _, p := range v.Profiles {
		out = append(out, button{
			id:     buttonIDPrefix + p.Source,
			label:  p.Label,
			active: p.Source == m.state.Active.Source,
			source: p.Source,
		})
	}
	return out
}

// renderButtons renders the button row, right-aligned like a chart
// window's control strip.
func (m Model) renderButtons() string {
	var rendered []string
	for _, b := range m.buttons() {
		style := m.styles.button
		if b.active {
			style = m.styles.activeButton
		}
		s := style.Render(b.label)
		if m.zones != nil {
			s = m.zones.Mark(b.id, s)
		}
		rendered = append(rendered, s)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.width > 0 {
		row = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, row)
	}
	return row
}

// press performs the action of button b.
func (m Model) press(b button) (tea.Model, tea.Cmd) {
	if b.source == "" {
		return m.toggle()
	}
	return m.selectSource(b.source)
}

// handleMouse dispatches left-button releases inside a button zone.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.zones == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for _, b := range m.buttons() {
		z := m.zones.Get(b.id)
		if z != nil && z.InBounds(msg) {
			return m.press(b)
		}
	}
	return m, nil
}
