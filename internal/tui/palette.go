package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"huba-cli/internal/task"
)

// StatusColors colors one task status in rows and blocker panes.
type StatusColors struct {
	ID    string `json:"id" yaml:"id"`
	Icon  string `json:"icon" yaml:"icon"`
	Title string `json:"title" yaml:"title"`
}

// Palette is a complete color theme. Custom theme files use the same shape.
type Palette struct {
	Border struct {
		Default string `json:"default" yaml:"default"`
		Focused string `json:"focused" yaml:"focused"`
	} `json:"border" yaml:"border"`
	Status struct {
		Blocked    StatusColors `json:"blocked" yaml:"blocked"`
		Pending    StatusColors `json:"pending" yaml:"pending"`
		InProgress StatusColors `json:"inProgress" yaml:"inProgress"`
		Completed  StatusColors `json:"completed" yaml:"completed"`
	} `json:"status" yaml:"status"`
	Colors struct {
		Primary   string `json:"primary" yaml:"primary"`
		Secondary string `json:"secondary" yaml:"secondary"`
		Tertiary  string `json:"tertiary" yaml:"tertiary"`
		Date      string `json:"date" yaml:"date"`
		Hint      string `json:"hint" yaml:"hint"`
		Accent    string `json:"accent" yaml:"accent"`
	} `json:"colors" yaml:"colors"`
	Surface struct {
		Selection      string `json:"selection" yaml:"selection"`
		ScrollbarTrack string `json:"scrollbarTrack" yaml:"scrollbarTrack"`
		ScrollbarThumb string `json:"scrollbarThumb" yaml:"scrollbarThumb"`
	} `json:"surface" yaml:"surface"`
	Progress struct {
		Blocked    string `json:"blocked" yaml:"blocked"`
		Pending    string `json:"pending" yaml:"pending"`
		InProgress string `json:"inProgress" yaml:"inProgress"`
		Completed  string `json:"completed" yaml:"completed"`
	} `json:"progress" yaml:"progress"`
	Markdown struct {
		Heading string `json:"heading" yaml:"heading"`
		List    string `json:"list" yaml:"list"`
		Code    string `json:"code" yaml:"code"`
		Default string `json:"default" yaml:"default"`
	} `json:"markdown" yaml:"markdown"`
}

type paletteField struct {
	name  string
	value string
}

func (p Palette) fields() []paletteField {
	status := func(prefix string, c StatusColors) []paletteField {
		return []paletteField{
			{prefix + ".id", c.ID},
			{prefix + ".icon", c.Icon},
			{prefix + ".title", c.Title},
		}
	}
	out := []paletteField{
		{"border.default", p.Border.Default},
		{"border.focused", p.Border.Focused},
	}
	out = append(out, status("status.blocked", p.Status.Blocked)...)
	out = append(out, status("status.pending", p.Status.Pending)...)
	out = append(out, status("status.inProgress", p.Status.InProgress)...)
	out = append(out, status("status.completed", p.Status.Completed)...)
	return append(out,
		paletteField{"colors.primary", p.Colors.Primary},
		paletteField{"colors.secondary", p.Colors.Secondary},
		paletteField{"colors.tertiary", p.Colors.Tertiary},
		paletteField{"colors.date", p.Colors.Date},
		paletteField{"colors.hint", p.Colors.Hint},
		paletteField{"colors.accent", p.Colors.Accent},
		paletteField{"surface.selection", p.Surface.Selection},
		paletteField{"surface.scrollbarTrack", p.Surface.ScrollbarTrack},
		paletteField{"surface.scrollbarThumb", p.Surface.ScrollbarThumb},
		paletteField{"progress.blocked", p.Progress.Blocked},
		paletteField{"progress.pending", p.Progress.Pending},
		paletteField{"progress.inProgress", p.Progress.InProgress},
		paletteField{"progress.completed", p.Progress.Completed},
		paletteField{"markdown.heading", p.Markdown.Heading},
		paletteField{"markdown.list", p.Markdown.List},
		paletteField{"markdown.code", p.Markdown.Code},
		paletteField{"markdown.default", p.Markdown.Default},
	)
}

// Validate requires every color to be a #RGB or #RRGGBB hex value.
func (p Palette) Validate() error {
	var bad []string
	for _, f := range p.fields() {
		if !isHexColor(f.value) {
			bad = append(bad, f.name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid or missing colors: %s", strings.Join(bad, ", "))
	}
	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// StatusColors returns the row colors for st.
func (p Palette) StatusColors(st task.Status) StatusColors {
	switch st {
	case task.StatusBlocked:
		return p.Status.Blocked
	case task.StatusInProgress:
		return p.Status.InProgress
	case task.StatusCompleted:
		return p.Status.Completed
	default:
		return p.Status.Pending
	}
}

func color(s string) lipgloss.Color { return lipgloss.Color(s) }

func sc(id, icon, title string) StatusColors {
	return StatusColors{ID: id, Icon: icon, Title: title}
}

func claudePalette() Palette {
	var p Palette
	p.Border.Default, p.Border.Focused = "#696968", "#D77757"
	p.Status.Blocked = sc("#FF5455", "#FF5455", "#FF5455")
	p.Status.Pending = sc("#BCBCBB", "#BCBCBB", "#BCBCBB")
	p.Status.InProgress = sc("#D77757", "#D77757", "#FFFFFF")
	p.Status.Completed = sc("#999999", "#4DBA64", "#999999")
	p.Colors.Primary, p.Colors.Secondary, p.Colors.Tertiary = "#FFFFFF", "#888888", "#666666"
	p.Colors.Date, p.Colors.Hint, p.Colors.Accent = "#aaaaaa", "#A2A2A2", "#D77757"
	p.Surface.Selection, p.Surface.ScrollbarTrack, p.Surface.ScrollbarThumb = "#444444", "#444444", "#666666"
	p.Progress.Blocked, p.Progress.Pending = "#C1484C", "#7C7C7B"
	p.Progress.InProgress, p.Progress.Completed = "#D77757", "#4DBA64"
	p.Markdown.Heading, p.Markdown.List, p.Markdown.Code, p.Markdown.Default = "#58A6FF", "#FF7B72", "#A5D6FF", "#E6EDF3"
	return p
}

func catppuccinPalette() Palette {
	var p Palette
	p.Border.Default, p.Border.Focused = "#585B70", "#CBA6F7"
	p.Status.Blocked = sc("#F38BA8", "#F38BA8", "#EBA0AC")
	p.Status.Pending = sc("#BAC2DE", "#BAC2DE", "#CDD6F4")
	p.Status.InProgress = sc("#FAB387", "#F9E2AF", "#CDD6F4")
	p.Status.Completed = sc("#A6ADC8", "#A6E3A1", "#A6ADC8")
	p.Colors.Primary, p.Colors.Secondary, p.Colors.Tertiary = "#CDD6F4", "#BAC2DE", "#A6ADC8"
	p.Colors.Date, p.Colors.Hint, p.Colors.Accent = "#BAC2DE", "#A6ADC8", "#CBA6F7"
	p.Surface.Selection, p.Surface.ScrollbarTrack, p.Surface.ScrollbarThumb = "#45475A", "#181825", "#585B70"
	p.Progress.Blocked, p.Progress.Pending = "#EBA0AC", "#6C7086"
	p.Progress.InProgress, p.Progress.Completed = "#FAB387", "#A6E3A1"
	p.Markdown.Heading, p.Markdown.List, p.Markdown.Code, p.Markdown.Default = "#89B4FA", "#FAB387", "#89DCEB", "#CDD6F4"
	return p
}

func githubPalette() Palette {
	var p Palette
	p.Border.Default, p.Border.Focused = "#484F58", "#2F81F7"
	p.Status.Blocked = sc("#F85149", "#F85149", "#F85149")
	p.Status.Pending = sc("#B1BAC4", "#B1BAC4", "#B1BAC4")
	p.Status.InProgress = sc("#2F81F7", "#2F81F7", "#E6EDF3")
	p.Status.Completed = sc("#8B949E", "#3FB950", "#8B949E")
	p.Colors.Primary, p.Colors.Secondary, p.Colors.Tertiary = "#E6EDF3", "#B1BAC4", "#8B949E"
	p.Colors.Date, p.Colors.Hint, p.Colors.Accent = "#8B949E", "#8B949E", "#2F81F7"
	p.Surface.Selection, p.Surface.ScrollbarTrack, p.Surface.ScrollbarThumb = "#21262D", "#161B22", "#484F58"
	p.Progress.Blocked, p.Progress.Pending = "#DA3633", "#8B949E"
	p.Progress.InProgress, p.Progress.Completed = "#2F81F7", "#3FB950"
	p.Markdown.Heading, p.Markdown.List, p.Markdown.Code, p.Markdown.Default = "#58A6FF", "#FF7B72", "#A5D6FF", "#E6EDF3"
	return p
}

func grayedPalette() Palette {
	var p Palette
	p.Border.Default, p.Border.Focused = "#4A4A4A", "#B0B0B0"
	p.Status.Blocked = sc("#909090", "#909090", "#909090")
	p.Status.Pending = sc("#787878", "#787878", "#787878")
	p.Status.InProgress = sc("#B0B0B0", "#B0B0B0", "#F5F5F5")
	p.Status.Completed = sc("#606060", "#8A8A8A", "#606060")
	p.Colors.Primary, p.Colors.Secondary, p.Colors.Tertiary = "#F5F5F5", "#F5F5F5", "#D0D0D0"
	p.Colors.Date, p.Colors.Hint, p.Colors.Accent = "#C8C8C8", "#E8E8E8", "#B0B0B0"
	p.Surface.Selection, p.Surface.ScrollbarTrack, p.Surface.ScrollbarThumb = "#505050", "#2A2A2A", "#4A4A4A"
	p.Progress.Blocked, p.Progress.Pending = "#505050", "#6E6E6E"
	p.Progress.InProgress, p.Progress.Completed = "#B0B0B0", "#C8C8C8"
	p.Markdown.Heading, p.Markdown.List, p.Markdown.Code, p.Markdown.Default = "#D0D0D0", "#8A8A8A", "#E8E8E8", "#C8C8C8"
	return p
}

func contrastPalette() Palette {
	var p Palette
	p.Border.Default, p.Border.Focused = "#888888", "#FFFFFF"
	p.Status.Blocked = sc("#FF3333", "#FF3333", "#FF3333")
	p.Status.Pending = sc("#CCCCCC", "#CCCCCC", "#CCCCCC")
	p.Status.InProgress = sc("#FFFF00", "#FFFF00", "#FFFFFF")
	p.Status.Completed = sc("#888888", "#00FF41", "#888888")
	p.Colors.Primary, p.Colors.Secondary, p.Colors.Tertiary = "#FFFFFF", "#CCCCCC", "#888888"
	p.Colors.Date, p.Colors.Hint, p.Colors.Accent = "#CCCCCC", "#888888", "#FFFF00"
	p.Surface.Selection, p.Surface.ScrollbarTrack, p.Surface.ScrollbarThumb = "#1A1A1A", "#000000", "#333333"
	p.Progress.Blocked, p.Progress.Pending = "#CC2222", "#333333"
	p.Progress.InProgress, p.Progress.Completed = "#FFFF00", "#00FF41"
	p.Markdown.Heading, p.Markdown.List, p.Markdown.Code, p.Markdown.Default = "#00FFFF", "#FFFF00", "#00FF41", "#FFFFFF"
	return p
}

func builtinPalettes() map[string]Palette {
	return map[string]Palette{
		"catppuccin": catppuccinPalette(),
		"claude":     claudePalette(),
		"contrast":   contrastPalette(),
		"github":     githubPalette(),
		"grayed":     grayedPalette(),
	}
}
