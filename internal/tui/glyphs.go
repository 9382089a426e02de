package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"huba-cli/internal/task"
)

// Fonts differ in what they render cleanly, so the TUI can fall back to an
// ASCII glyph set (HUBA_TUI_GLYPHS=ascii).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("HUBA_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphStatusIcon(st task.Status) string {
	ascii := glyphs() == glyphSetASCII
	switch st {
	case task.StatusInProgress:
		if ascii {
			return ">"
		}
		return "◼"
	case task.StatusCompleted:
		if ascii {
			return "x"
		}
		return "✔"
	default:
		if ascii {
			return "-"
		}
		return "◻"
	}
}

func glyphBlock() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "█"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

// glyphArrows rewrites the sort direction arrows for the active set.
func glyphArrows(s string) string {
	if glyphs() != glyphSetASCII {
		return s
	}
	return strings.NewReplacer("↑", "^", "↓", "v").Replace(s)
}

func glyphBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	return lipgloss.RoundedBorder()
}
