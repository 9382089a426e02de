package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"huba-cli/internal/selectlist"
)

// appKeyMap holds the page-level bindings. List navigation lives in
// selectlist.KeyMap.
type appKeyMap struct {
	Quit          key.Binding
	Lists         key.Binding
	LatestList    key.Binding
	FocusTasks    key.Binding
	FocusDetails  key.Binding
	FocusBlocks   key.Binding
	FocusBlocked  key.Binding
	ToggleDetails key.Binding
	OpenDetails   key.Binding
	Back          key.Binding
	Layout        key.Binding
	Progress      key.Binding
	NextTheme     key.Binding
	PrevTheme     key.Binding
	Search        key.Binding
	SortID        key.Binding
	SortTitle     key.Binding
	SortStatus    key.Binding
	SortDate      key.Binding
	Filter        key.Binding
	Reload        key.Binding
	Settings      key.Binding
	Help          key.Binding

	// Settings page.
	NextField  key.Binding
	PrevField  key.Binding
	NextOption key.Binding
	PrevOption key.Binding

	Nav selectlist.KeyMap
}

func defaultAppKeyMap() appKeyMap {
	return appKeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Lists:         key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "lists")),
		LatestList:    key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "latest list")),
		FocusTasks:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "task list")),
		FocusDetails:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "details")),
		FocusBlocks:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "blocks")),
		FocusBlocked:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "blocked by")),
		ToggleDetails: key.NewBinding(key.WithKeys(" ", "/"), key.WithHelp("space", "details")),
		OpenDetails:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Layout:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "layout")),
		Progress:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "progress")),
		NextTheme:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next theme")),
		PrevTheme:     key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "prev theme")),
		Search:        key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "search")),
		SortID:        key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "sort by id")),
		SortTitle:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "sort by title")),
		SortStatus:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort by status")),
		SortDate:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "sort by date")),
		Filter:        key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "filter status")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Settings:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextField:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		NextOption:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
		PrevOption:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev value")),
		Nav:           selectlist.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav.Up, k.Nav.Down, k.ToggleDetails, k.Search, k.Filter, k.Lists, k.Help, k.Quit}
}

// SettingsHelp lists the settings page bindings for the footer.
func (k appKeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Nav.Up, k.Nav.Down, k.PrevOption, k.NextOption, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Lists, k.LatestList, k.FocusTasks, k.FocusDetails, k.FocusBlocks, k.FocusBlocked},
		{k.ToggleDetails, k.OpenDetails, k.Back, k.Layout, k.Progress, k.NextTheme, k.PrevTheme, k.Settings},
		{k.Search, k.SortID, k.SortTitle, k.SortStatus, k.SortDate, k.Filter, k.Reload},
		k.Nav.FullHelp()[0],
	}
}
