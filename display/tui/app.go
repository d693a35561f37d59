// Package tui implements the interactive scope window using Bubbletea's Elm
// architecture. A timer drives sampling of the active source, and buttons
// (or their key bindings) switch sources or toggle the GPIO signal.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/sigscope/display/chart"
	"gitlab.com/tinyland/lab/sigscope/display/color"
	"gitlab.com/tinyland/lab/sigscope/internal/format"
	"gitlab.com/tinyland/lab/sigscope/scope"
	"gitlab.com/tinyland/lab/sigscope/sources"
)

// DefaultInterval is the sampling period.
const DefaultInterval = 100 * time.Millisecond

// readTimeout bounds a single source read.
const readTimeout = time.Second

// Options configures a Model.
type Options struct {
	Variant     scope.Variant
	Sources     *sources.Registry
	Interval    time.Duration
	Theme       ThemePreset
	ChartHeight int
	SnapshotDir string
	Logger      *slog.Logger
	// Zones enables clickable buttons. Nil disables mouse support.
	Zones *zone.Manager
}

// Model is the top-level Bubbletea model for the scope window.
type Model struct {
	state       scope.State
	sources     *sources.Registry
	interval    time.Duration
	styles      styles
	theme       ThemePreset
	chartHeight int
	snapshotDir string
	logger      *slog.Logger
	zones       *zone.Manager
	help        help.Model

	width     int
	height    int
	ready     bool
	paused    bool
	statusMsg string
	started   time.Time
	now       func() time.Time
}

// Messages exchanged between commands and Update.
type (
	// tickMsg fires when the next sample is due.
	tickMsg struct{}

	// sampleMsg carries the result of reading the active source.
	sampleMsg struct{ tick scope.Tick }

	// toggleDoneMsg reports the outcome of a device toggle write.
	toggleDoneMsg struct{ err error }

	// snapshotDoneMsg reports the outcome of a PNG snapshot.
	snapshotDoneMsg struct {
		path string
		err  error
	}
)

// New returns a Model in the variant's initial state.
func New(opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Sources == nil {
		opts.Sources = sources.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Theme.Name == "" {
		opts.Theme = MonitoringTheme
	}

	return Model{
		state:       scope.NewState(opts.Variant),
		sources:     opts.Sources,
		interval:    opts.Interval,
		styles:      newStyles(opts.Theme),
		theme:       opts.Theme,
		chartHeight: opts.ChartHeight,
		snapshotDir: opts.SnapshotDir,
		logger:      opts.Logger,
		zones:       opts.Zones,
		help:        help.New(),
		started:     time.Now(),
		now:         time.Now,
	}
}

// State returns the current display state.
func (m Model) State() scope.State {
	return m.state
}

// Init implements tea.Model. It schedules the first sample.
func (m Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		if m.paused {
			return m, m.scheduleTick()
		}
		return m, m.sampleCmd()

	case sampleMsg:
		m = m.apply(msg.tick)
		return m, m.scheduleTick()

	case toggleDoneMsg:
		if msg.err != nil {
			m.logger.Error("device toggle failed", "error", msg.err)
			m.statusMsg = "toggle failed: " + msg.err.Error()
		} else {
			m.statusMsg = "signal toggled"
		}
		return m, nil

	case snapshotDoneMsg:
		if msg.err != nil {
			m.logger.Error("snapshot failed", "error", msg.err)
			m.statusMsg = "snapshot failed: " + msg.err.Error()
		} else {
			m.logger.Info("snapshot saved", "path", msg.path)
			m.statusMsg = "saved " + msg.path
		}
		return m, nil
	}

	return m, nil
}

// apply feeds an event through the state machine and logs read failures
// when they first appear or change.
func (m Model) apply(ev scope.Event) Model {
	prev := m.state.LastErr
	m.state = scope.Transition(m.state, ev)

	if err := m.state.LastErr; err != nil && (prev == nil || prev.Error() != err.Error()) {
		m.logger.Warn("sample failed", "source", m.state.Active.Source, "error", err)
	}
	if prev != nil && m.state.LastErr == nil {
		m.logger.Info("sampling recovered", "source", m.state.Active.Source)
	}
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Source1):
		return m.selectIndex(0)
	case key.Matches(msg, keys.Source2):
		return m.selectIndex(1)
	case key.Matches(msg, keys.NextSource):
		return m.selectNext()
	case key.Matches(msg, keys.Toggle):
		return m.toggle()
	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.statusMsg = "paused"
		} else {
			m.statusMsg = ""
		}
	case key.Matches(msg, keys.Snapshot):
		return m, m.snapshotCmd()
	}
	return m, nil
}

// selectIndex activates the variant's i-th profile.
func (m Model) selectIndex(i int) (tea.Model, tea.Cmd) {
	profiles := m.state.Variant.Profiles
	if i < 0 || i >= len(profiles) {
		return m, nil
	}
	return m.selectSource(profiles[i].Source)
}

// selectNext activates the profile after the active one, wrapping around.
func (m Model) selectNext() (tea.Model, tea.Cmd) {
	profiles := m.state.Variant.Profiles
	if len(profiles) < 2 {
		return m, nil
	}
	for i, p := range profiles {
		if p.Source == m.state.Active.Source {
			return m.selectSource(profiles[(i+1)%len(profiles)].Source)
		}
	}
	return m.selectSource(profiles[0].Source)
}

// selectSource switches the active source and resets the window.
func (m Model) selectSource(name string) (tea.Model, tea.Cmd) {
	m = m.apply(scope.Select{Source: name})
	m.statusMsg = ""
	m.logger.Info("source selected", "source", m.state.Active.Source, "window", m.state.Window.Len())
	return m, nil
}

// toggle resets the window and asks the device to switch input lines.
func (m Model) toggle() (tea.Model, tea.Cmd) {
	if !m.state.Variant.Toggle {
		return m, nil
	}

	src, ok := m.sources.Get(m.state.Active.Source)
	if !ok {
		m.statusMsg = fmt.Sprintf("source %q is not registered", m.state.Active.Source)
		return m, nil
	}
	toggler, ok := src.(sources.Toggler)
	if !ok {
		m.statusMsg = fmt.Sprintf("source %q cannot toggle", src.Name())
		return m, nil
	}

	m = m.apply(scope.Toggle{})
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		return toggleDoneMsg{err: toggler.Toggle(ctx)}
	}
}

// scheduleTick returns a command that fires tickMsg after one interval.
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// sampleCmd reads the active source once. The result carries the current
// generation so a reset while the read is in flight discards it.
func (m Model) sampleCmd() tea.Cmd {
	name := m.state.Active.Source
	gen := m.state.Generation
	src, ok := m.sources.Get(name)
	if !ok {
		return func() tea.Msg {
			return sampleMsg{tick: scope.Tick{
				Source:     name,
				Generation: gen,
				Err:        fmt.Errorf("source %q is not registered", name),
			}}
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		return sampleMsg{tick: scope.Sample(ctx, src, gen)}
	}
}

// snapshotCmd writes the current window to a PNG file.
func (m Model) snapshotCmd() tea.Cmd {
	values := m.state.Window.Values()
	p := m.state.Active
	name := fmt.Sprintf("%s-%s.png", p.Source, m.now().Format("20060102-150405.000"))
	path := filepath.Join(m.snapshotDir, name)

	return func() tea.Msg {
		cfg := chart.DefaultSnapshotConfig(p.YMin, p.YMax, p.YStep)
		return snapshotDoneMsg{path: path, err: chart.Snapshot(values, cfg, path)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	buttons := m.renderButtons()
	status := m.renderStatus()
	helpView := m.help.View(keys)

	reserved := lipgloss.Height(header) + lipgloss.Height(buttons) +
		lipgloss.Height(status) + lipgloss.Height(helpView)
	body := m.renderChart(m.height - reserved)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, buttons, status, helpView)
	if m.zones != nil {
		return m.zones.Scan(view)
	}
	return view
}

// renderHeader renders the title line.
func (m Model) renderHeader() string {
	title := fmt.Sprintf("sigscope · %s · %s", m.state.Variant.Name, m.state.Active.Label)
	uptime := "up " + format.FormatDuration(m.now().Sub(m.started))
	return m.styles.title.Render(title) + "  " + m.styles.status.Render(uptime)
}

// renderChart renders the line chart into roughly height rows.
func (m Model) renderChart(height int) string {
	p := m.state.Active

	// Border and padding take two rows and four columns; labels and the
	// latest-value annotation take roughly twelve more columns.
	chrome := 2
	if m.theme.ShowBorders {
		chrome = 4
	}
	rows := m.chartHeight
	if rows <= 0 {
		rows = height - chrome
	}
	if rows < 4 {
		rows = 4
	}
	cols := m.width - chrome - 12
	if cols < m.state.Window.Len() {
		cols = m.state.Window.Len()
	}

	plot := chart.Render(m.state.Window.Values(), chart.Config{
		Width:       cols,
		Height:      rows,
		YMin:        p.YMin,
		YMax:        p.YMax,
		YStep:       p.YStep,
		LineColor:   m.theme.Secondary,
		MarkerColor: m.theme.Accent,
		AxisColor:   m.theme.Muted,
	})
	return m.styles.chart.Render(plot)
}

// renderStatus renders the bottom status line.
func (m Model) renderStatus() string {
	p := m.state.Active
	spark := chart.RenderSparkline(m.state.Window.Values(), chart.SparklineConfig{
		YMin:        p.YMin,
		YMax:        p.YMax,
		LineColor:   m.theme.Secondary,
		MarkerColor: m.theme.Accent,
	})

	line := fmt.Sprintf("%s %s  %s  samples %d",
		p.Label,
		m.styles.statusEmphasis.Render(chart.FormatValue(m.state.Window.Last())),
		spark,
		m.state.Samples,
	)
	if m.state.Variant.Toggle {
		line += fmt.Sprintf("  toggles %d", m.state.Toggles)
	}
	if m.paused {
		line += "  [paused]"
	}

	// Leave room for the fixed part of the line before the message.
	room := m.width - lipgloss.Width(line) - 2
	if m.width == 0 {
		room = 80
	}
	switch {
	case m.state.LastErr != nil:
		// Error text may echo device content; escapes would break the width math.
		msg := format.TruncateWithEllipsis(color.StripANSI(m.state.LastErr.Error()), room)
		line += "  " + m.styles.statusError.Render(msg)
	case m.statusMsg != "":
		line += "  " + format.TruncateWithEllipsis(m.statusMsg, room)
	}

	return m.styles.status.Render(line)
}
