package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the scope window.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit       key.Binding
	Source1    key.Binding
	Source2    key.Binding
	NextSource key.Binding
	Toggle     key.Binding
	Pause      key.Binding
	Snapshot   key.Binding
	Help       key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextSource, k.Toggle, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Source1, k.Source2, k.NextSource, k.Toggle},
		{k.Pause, k.Snapshot},
		{k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the application.
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Source1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "first source")),
	Source2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "second source")),
	NextSource: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next source")),
	Toggle:     key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t/space", "toggle signal")),
	Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
	Snapshot:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save png")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
