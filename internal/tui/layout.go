package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minWidth  = 60
	minHeight = 15
)

type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return !r.empty() && x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

// inner is the area inside a one-cell border.
func (r rect) inner() rect {
	return rect{x: r.x + 1, y: r.y + 1, w: max(0, r.w-2), h: max(0, r.h-2)}
}

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines so joined panes line up.
func normalizePane(s string, width, height int) string {
	width = max(0, width)
	height = max(0, height)

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		// Bound the cost of measuring huge lines.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Cut(ln, 0, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			ln = xansi.Truncate(ln, width, glyphEllipsis())
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// panel is a bordered box with labels embedded in the border: title and
// subTitle on the top edge, footer and subFooter on the bottom edge.
type panel struct {
	title     string
	subTitle  string
	footer    string
	subFooter string
	focused   bool
}

func (pn panel) render(p *Palette, body string, width, height int) string {
	if width < 2 || height < 2 {
		return normalizePane("", width, height)
	}
	b := glyphBorder()
	borderColor := p.Border.Default
	if pn.focused {
		borderColor = p.Border.Focused
	}
	edge := lipgloss.NewStyle().Foreground(color(borderColor))
	label := lipgloss.NewStyle().Foreground(color(p.Colors.Secondary))
	if pn.focused {
		label = label.Foreground(color(p.Colors.Primary)).Bold(true)
	}
	subLabel := lipgloss.NewStyle().Foreground(color(p.Colors.Tertiary))

	innerW, innerH := width-2, height-2
	out := make([]string, 0, height)
	out = append(out, borderEdge(b.TopLeft, b.Top, b.TopRight, pn.title, pn.subTitle, innerW, edge, label, subLabel))
	for _, ln := range strings.Split(normalizePane(body, innerW, innerH), "\n") {
		if innerH == 0 {
			break
		}
		out = append(out, edge.Render(b.Left)+ln+edge.Render(b.Right))
	}
	out = append(out, borderEdge(b.BottomLeft, b.Bottom, b.BottomRight, pn.footer, pn.subFooter, innerW, edge, label, subLabel))
	return strings.Join(out, "\n")
}

// borderEdge draws one horizontal edge with an optional left and right
// label. The right label is dropped first when space runs out.
func borderEdge(left, fill, right, l, r string, innerW int, edge, label, subLabel lipgloss.Style) string {
	if l != "" {
		l = " " + l + " "
	}
	if r != "" {
		r = " " + r + " "
	}
	lw, rw := xansi.StringWidth(l), xansi.StringWidth(r)
	lead := 0
	if lw > 0 {
		lead = 1
	}
	trail := 0
	if rw > 0 {
		trail = 1
	}
	if lead+lw+rw+trail > innerW {
		r, rw, trail = "", 0, 0
	}
	if lead+lw > innerW {
		l = xansi.Truncate(l, max(0, innerW-lead), "")
		lw = xansi.StringWidth(l)
	}
	gap := innerW - lead - lw - rw - trail

	var sb strings.Builder
	sb.WriteString(edge.Render(left + strings.Repeat(fill, lead)))
	if l != "" {
		sb.WriteString(label.Render(l))
	}
	sb.WriteString(edge.Render(strings.Repeat(fill, max(0, gap))))
	if r != "" {
		sb.WriteString(subLabel.Render(r))
	}
	sb.WriteString(edge.Render(strings.Repeat(fill, trail) + right))
	return sb.String()
}

// centered places s in the middle of a width x height area.
func centered(s string, width, height int) string {
	return lipgloss.Place(max(0, width), max(0, height), lipgloss.Center, lipgloss.Center, s)
}
