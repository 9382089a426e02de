package selectlist

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// WordWrap splits text into at most maxLines lines of at most width cells.
// Lines break at word boundaries, and words wider than a line are hard-cut.
// When text does not fit, the last allowed line ends with "…".
// A non-positive width or maxLines returns text unchanged as a single line.
// Empty text yields no lines.
func WordWrap(text string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return []string{text}
	}
	if text == "" {
		return nil
	}

	wrapped := xansi.Hardwrap(xansi.Wordwrap(text, width, ""), width, false)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxLines {
		return lines
	}

	rest := strings.Join(lines[maxLines-1:], " ")
	head := strings.TrimRight(xansi.Truncate(rest, width-1, ""), " \t")
	lines = append(lines[:maxLines-1], head+"…")
	return lines
}
