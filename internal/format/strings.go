// Package format holds small text helpers shared by the display packages.
package format

import "github.com/mattn/go-runewidth"

// TruncateWithEllipsis truncates s to at most maxWidth terminal cells,
// appending "..." when it had to cut. If maxWidth is less than 4, the
// string is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
