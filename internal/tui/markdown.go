package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by theme, base style and wrap width. Auto style is avoided since
	// it can block on terminal queries.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders a task description with the theme's markdown
// colors and no document margin.
func renderMarkdown(md string, width int, themeName string, p *Palette) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	base := markdownStyle()
	key := themeName + ":" + base + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(base, p)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return trimBlankEdges(out)
}

// trimBlankEdges drops leading and trailing lines that are visually empty.
func trimBlankEdges(s string) string {
	lines := strings.Split(s, "\n")
	blank := func(ln string) bool { return strings.TrimSpace(stripANSIEscapes(ln)) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func markdownStyleConfig(base string, p *Palette) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if base == "light" {
		cfg = styles.LightStyleConfig
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	if p == nil {
		return cfg
	}

	heading := mdStrPtr(p.Markdown.Heading)
	cfg.Heading.Color = heading
	cfg.H1.Color = heading
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = heading
	cfg.H3.Color = heading
	cfg.H4.Color = heading
	cfg.H5.Color = heading
	cfg.H6.Color = heading

	cfg.Item.Color = mdStrPtr(p.Markdown.List)
	cfg.Enumeration.Color = mdStrPtr(p.Markdown.List)

	cfg.Code.Color = mdStrPtr(p.Markdown.Code)
	cfg.Code.BackgroundColor = nil
	cfg.CodeBlock.Color = mdStrPtr(p.Markdown.Code)

	cfg.Document.Color = mdStrPtr(p.Markdown.Default)
	cfg.Text.Color = mdStrPtr(p.Markdown.Default)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil

	cfg.Link.Color = mdStrPtr(p.Colors.Accent)
	cfg.Link.Underline = mdBoolPtr(true)
	cfg.LinkText.Color = mdStrPtr(p.Colors.Accent)
	return cfg
}

// markdownStyle picks the glamour base style: HUBA_TUI_MD_STYLE, then the
// terminal background preference.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("HUBA_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if dark, ok := darkBackgroundFromEnv(); ok {
		if dark {
			return "dark"
		}
		return "light"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }
