package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"huba-cli/internal/store"
)

type settingsField int

const (
	fieldTheme settingsField = iota
	fieldLayout
	fieldProgress
	settingsFieldCount
)

// settingsFieldRows is the height of one form field: the value line, the
// hint line and a gap.
const settingsFieldRows = 3

var settingsFieldTitles = [...]string{
	fieldTheme:    "Theme",
	fieldLayout:   "Layout",
	fieldProgress: "Progress",
}

var settingsFieldHints = [...]string{
	fieldLayout:   "Task list layout",
	fieldProgress: "Whether to show progress in the task list",
}

// settingsForm is the state of the settings page.
type settingsForm struct {
	field settingsField
	// back is the page esc returns to.
	back page
}

func (m *appModel) openSettings() {
	if m.page == pageSettings {
		m.closeSettings()
		return
	}
	m.form = settingsForm{field: fieldTheme, back: m.page}
	m.page = pageSettings
}

func (m *appModel) closeSettings() {
	m.page = m.form.back
	if m.page == pageTasks && m.listID == "" {
		m.page = pageLists
	}
}

func (m appModel) settingsOptions(f settingsField) (options []string, current string) {
	switch f {
	case fieldTheme:
		return m.themes.Names(), m.settings.Theme
	case fieldLayout:
		return []string{store.LayoutHorizontal, store.LayoutVertical}, m.settings.Layout
	default:
		current = "no"
		if m.settings.ShowProgress {
			current = "yes"
		}
		return []string{"yes", "no"}, current
	}
}

// stepSetting moves the focused field's value by delta, wrapping around.
func (m *appModel) stepSetting(delta int) {
	switch m.form.field {
	case fieldTheme:
		m.setTheme(m.themes.Next(m.settings.Theme, delta))
	case fieldLayout:
		m.toggleLayout()
	case fieldProgress:
		m.toggleProgress()
	}
}

func (m *appModel) toggleLayout() {
	if m.settings.Layout == store.LayoutVertical {
		m.settings.Layout = store.LayoutHorizontal
	} else {
		m.settings.Layout = store.LayoutVertical
	}
	m.saveSettings()
}

func (m *appModel) toggleProgress() {
	m.settings.ShowProgress = !m.settings.ShowProgress
	m.saveSettings()
}

func (m *appModel) moveSettingsField(delta int) {
	n := int(settingsFieldCount)
	m.form.field = settingsField(((int(m.form.field)+delta)%n + n) % n)
}

func (m appModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Back):
		m.closeSettings()
	case key.Matches(msg, k.NextField), key.Matches(msg, k.Nav.Down):
		m.moveSettingsField(1)
	case key.Matches(msg, k.PrevField), key.Matches(msg, k.Nav.Up):
		m.moveSettingsField(-1)
	case key.Matches(msg, k.Nav.Home):
		m.form.field = fieldTheme
	case key.Matches(msg, k.Nav.End):
		m.form.field = settingsFieldCount - 1
	case key.Matches(msg, k.NextOption), key.Matches(msg, k.OpenDetails):
		m.stepSetting(1)
	case key.Matches(msg, k.PrevOption):
		m.stepSetting(-1)
	}
	return m, nil
}

// handleSettingsMouse focuses the field under a left click.
func (m appModel) handleSettingsMouse(msg tea.MouseMsg, r rect) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	in := r.inner()
	row := msg.Y - in.y - 1
	if !in.contains(msg.X, msg.Y) || row < 0 {
		return m, nil
	}
	if f := row / settingsFieldRows; f < int(settingsFieldCount) {
		m.form.field = settingsField(f)
	}
	return m, nil
}

func (m appModel) viewSettings(r rect) string {
	p := m.palette
	in := r.inner()
	titleW := 0
	for _, t := range settingsFieldTitles {
		titleW = max(titleW, len(t)+1)
	}

	lines := []string{""}
	for f := settingsField(0); f < settingsFieldCount; f++ {
		focused := f == m.form.field
		title := lipgloss.NewStyle().Foreground(color(p.Colors.Secondary))
		if focused {
			title = title.Foreground(color(p.Colors.Primary)).Underline(true)
		}
		head := "  " + title.Render(settingsFieldTitles[f]) + ":" + strings.Repeat(" ", titleW-len(settingsFieldTitles[f])+1)

		options, current := m.settingsOptions(f)
		parts := make([]string, 0, len(options))
		for _, o := range options {
			st := lipgloss.NewStyle().Foreground(color(p.Colors.Secondary)).Faint(true)
			if o == current {
				st = lipgloss.NewStyle().Foreground(color(p.Colors.Primary)).Bold(true)
				if focused {
					st = st.Background(color(p.Surface.Selection))
				}
			}
			parts = append(parts, st.Render(" "+o+" "))
		}
		lines = append(lines, head+strings.Join(parts, " "))

		hint := ""
		if h := settingsFieldHints[f]; h != "" {
			hint = lipgloss.NewStyle().Foreground(color(p.Colors.Hint)).Faint(true).Render(h)
		}
		lines = append(lines, strings.Repeat(" ", titleW+4)+hint, "")
	}

	pn := panel{title: "Settings", subTitle: "esc to close", focused: true}
	return pn.render(p, normalizePane(strings.Join(lines, "\n"), in.w, in.h), r.w, r.h)
}
