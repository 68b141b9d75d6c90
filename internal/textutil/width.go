package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const TabWidth = 4

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += max(runewidth.RuneWidth(r), 1)
	}
	return b.String()
}

// Width reports the number of terminal cells text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width cells, ending with "…" when cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// Fit truncates or right-pads text to exactly width cells.
func Fit(text string, width int) string {
	text = Truncate(text, width)
	return runewidth.FillRight(text, width)
}

// DisplayLine prepares one line of untrusted text for a single terminal row.
func DisplayLine(text string, width int) string {
	return Truncate(Sanitize(ExpandTabs(text, TabWidth)), width)
}
