// Package color decides whether sigscope's output may use ANSI color.
//
// It honors the NO_COLOR convention (https://no-color.org/) and drops color
// when output is piped. When color is off, lipgloss is switched to the Ascii
// profile so every styled render, including the chart, is plain text.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// isTerminal is overridable for testing.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldDisableColor reports whether color output should be suppressed:
// NO_COLOR is set (to any value), or stdout is not a terminal.
func ShouldDisableColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return !isTerminal(os.Stdout.Fd())
}

// Apply configures the global lipgloss renderer and returns whether color
// is enabled.
func Apply() bool {
	if ShouldDisableColor() {
		ForceDisable()
		return false
	}
	return true
}

// ForceDisable unconditionally switches lipgloss to plain text.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	out := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inEscape {
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '~' {
				inEscape = false
			}
			continue
		}
		if c == '\x1b' {
			inEscape = true
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
