package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"huba-cli/internal/depgraph"
	"huba-cli/internal/selectlist"
	"huba-cli/internal/store"
	"huba-cli/internal/task"
)

type page int

const (
	pageTasks page = iota
	pageLists
	pageSettings
)

type pane int

const (
	paneTasks pane = iota
	paneDetails
	paneBlocks
	paneBlockedBy
	paneSearch
)

const reloadInterval = 750 * time.Millisecond

type reloadTickMsg struct{}

func tickReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

// Options configures a TUI session.
type Options struct {
	Store store.Store
	// ListID opens this list directly. Empty restores the last list, then
	// falls back to the newest one.
	ListID string
	// Settings persists preferences; nil keeps them in memory only.
	Settings *store.SettingsDB
	// ThemesDir holds custom theme files.
	ThemesDir string
	Logger    *slog.Logger
}

type appModel struct {
	store    store.Store
	db       *store.SettingsDB
	logger   *slog.Logger
	themes   Themes
	settings store.Settings
	// palette is shared with the delegates; theme switches overwrite it in place.
	palette *Palette

	page   page
	focus  pane
	listID string

	width  int
	height int

	snap  store.Snapshot
	shown []task.Task
	// selectedID is the task the user picked; the task list only mirrors it.
	selectedID string

	lists   []task.List
	listsFP store.Fingerprint

	tasks     *selectlist.Model[task.Task]
	listSel   *selectlist.Model[task.List]
	blocks    *selectlist.Model[task.Task]
	blockedBy *selectlist.Model[task.Task]

	search textinput.Model
	help   help.Model
	keys   appKeyMap

	form settingsForm

	detailScroll int
	message      string
}

func newAppModel(opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	st := opts.Store
	if st.Logger == nil {
		st.Logger = logger
	}

	settings := store.DefaultSettings()
	if opts.Settings != nil {
		if loaded, err := opts.Settings.Load(context.Background()); err == nil {
			settings = loaded
		} else {
			logger.Warn("load settings", "err", err)
		}
	}

	themes := LoadThemes(opts.ThemesDir, logger)
	pal, ok := themes.Get(settings.Theme)
	if !ok {
		settings.Theme = store.DefaultTheme
	}
	palette := &pal

	keys := defaultAppKeyMap()

	tasks := selectlist.New[task.Task](newTaskDelegate(palette, true, 2))
	tasks.ShowScrollIndicator = true
	tasks.KeyMap = keys.Nav

	blocks := selectlist.New[task.Task](newTaskDelegate(palette, false, 1))
	blocks.ShowSelection = false
	blockedBy := selectlist.New[task.Task](newTaskDelegate(palette, false, 1))
	blockedBy.ShowSelection = false

	listSel := selectlist.New[task.List](newListDelegate(palette))
	listSel.ShowScrollIndicator = true

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Search tasks"
	search.SetValue(settings.Filter.Search)

	m := appModel{
		store:     st,
		db:        opts.Settings,
		logger:    logger,
		themes:    themes,
		settings:  settings,
		palette:   palette,
		tasks:     tasks,
		listSel:   listSel,
		blocks:    blocks,
		blockedBy: blockedBy,
		search:    search,
		help:      help.New(),
		keys:      keys,
	}
	m.applyPalette()
	m.reloadLists()

	switch {
	case opts.ListID != "":
		m.openList(opts.ListID)
	case settings.LastList != "" && m.hasList(settings.LastList):
		m.openList(settings.LastList)
	default:
		if id, ok := m.store.LatestListID(context.Background()); ok {
			m.openList(id)
		} else {
			m.page = pageLists
		}
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return tickReload()
}

func (m *appModel) hasList(id string) bool {
	for _, l := range m.lists {
		if l.ID == id {
			return true
		}
	}
	return false
}

// applyPalette pushes the current palette into the list chrome styles.
func (m *appModel) applyPalette() {
	p := m.palette
	sel := lipgloss.NewStyle().Background(color(p.Surface.Selection))
	thumb := lipgloss.NewStyle().Foreground(color(p.Surface.ScrollbarThumb))
	hint := lipgloss.NewStyle().Foreground(color(p.Colors.Hint)).Faint(true)
	for _, l := range []*selectlist.Model[task.Task]{m.tasks, m.blocks, m.blockedBy} {
		l.SelectionStyle = sel
		l.IndicatorStyle = thumb
		l.PlaceholderStyle = hint
	}
	m.listSel.SelectionStyle = sel
	m.listSel.IndicatorStyle = thumb
	m.listSel.PlaceholderStyle = hint

	m.search.TextStyle = lipgloss.NewStyle().Foreground(color(p.Colors.Primary))
	m.search.PlaceholderStyle = lipgloss.NewStyle().Foreground(color(p.Colors.Hint)).Faint(true)
	m.search.Cursor.Style = lipgloss.NewStyle().Foreground(color(p.Colors.Accent))
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(color(p.Colors.Secondary))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(color(p.Colors.Hint)).Faint(true)
	m.help.Styles.ShortSeparator = m.help.Styles.ShortDesc
	m.help.Styles.FullKey = lipgloss.NewStyle().Foreground(color(p.Colors.Accent))
	m.help.Styles.FullDesc = lipgloss.NewStyle().Foreground(color(p.Colors.Primary))
	m.help.Styles.FullSeparator = m.help.Styles.ShortDesc
}

func (m *appModel) setTheme(name string) {
	pal, _ := m.themes.Get(name)
	*m.palette = pal
	m.settings.Theme = name
	m.applyPalette()
	m.saveSettings()
}

func (m *appModel) saveSettings() {
	if m.db == nil {
		return
	}
	if err := m.db.Save(context.Background(), m.settings); err != nil {
		m.logger.Warn("save settings", "err", err)
	}
}

// openList switches to a list and shows its tasks.
func (m *appModel) openList(id string) {
	if id != m.listID {
		m.selectedID = ""
		m.snap = store.Snapshot{}
	}
	m.listID = id
	m.page = pageTasks
	m.focus = paneTasks
	m.listSel.SetSelectedID(id)
	m.reloadTasks()
	if m.settings.LastList != id {
		m.settings.LastList = id
		m.saveSettings()
	}
}

// reloadTasks re-reads the current list. Failures keep the previous data.
func (m *appModel) reloadTasks() {
	if m.listID == "" {
		return
	}
	snap, err := m.store.LoadTasks(context.Background(), m.listID)
	if err != nil {
		m.logger.Warn("load tasks", "list", m.listID, "err", err)
		m.message = err.Error()
		return
	}
	m.message = ""
	m.snap = snap
	m.refreshView()
}

func (m *appModel) reloadLists() {
	lists, err := m.store.ListTaskLists(context.Background())
	if err != nil {
		m.logger.Warn("load lists", "err", err)
		return
	}
	m.lists = lists
	m.listsFP = m.store.ListsFingerprint()
	m.listSel.SetItems(lists, nil)
	if m.listSel.SelectedID() == "" && len(lists) > 0 {
		m.listSel.SetSelectedID(lists[0].ID)
	}
}

// storeChanged reports whether the files behind the current page moved.
func (m *appModel) storeChanged() (tasks bool, lists bool) {
	if m.listID != "" && !m.store.Fingerprint(m.listID).Equal(m.snap.Fingerprint) {
		tasks = true
	}
	if !m.store.ListsFingerprint().Equal(m.listsFP) {
		lists = true
	}
	return tasks, lists
}

// refreshView recomputes the filtered and sorted rows and rebinds the
// selection. The first task is picked when nothing was selected yet.
func (m *appModel) refreshView() {
	m.shown = m.settings.Sort.Apply(m.settings.Filter.Apply(m.snap.Tasks))
	m.tasks.SetItems(m.shown, nil)
	if m.selectedID == "" && len(m.shown) > 0 {
		m.selectedID = m.shown[0].ID
	}
	m.tasks.SetSelectedID(m.selectedID)
	m.refreshBlockers()
}

// selectTask binds id as the selected task, which may come from outside
// the task list (a blocker jump).
func (m *appModel) selectTask(id string) {
	if id == m.selectedID {
		return
	}
	m.selectedID = id
	m.detailScroll = 0
	m.tasks.SetSelectedID(id)
	m.refreshBlockers()
}

func (m *appModel) selectedTask() (task.Task, bool) {
	if m.selectedID == "" {
		return task.Task{}, false
	}
	return m.snap.Find(m.selectedID)
}

func (m *appModel) refreshBlockers() {
	t, ok := m.selectedTask()
	var blocks, blockedBy []task.Task
	if ok {
		blocks = depgraph.Blocks(m.snap.Tasks, t)
		blockedBy = depgraph.BlockedBy(m.snap.Tasks, t)
	}
	resetBlockerList(m.blocks, blocks)
	resetBlockerList(m.blockedBy, blockedBy)
	if m.focus == paneBlocks && len(blocks) == 0 || m.focus == paneBlockedBy && len(blockedBy) == 0 {
		m.focus = paneTasks
	}
}

// resetBlockerList keeps the blocker selection when it is still listed and
// otherwise starts at the first entry.
func resetBlockerList(l *selectlist.Model[task.Task], items []task.Task) {
	prev := l.SelectedID()
	l.SetItems(items, nil)
	if _, ok := task.Find(items, prev); ok {
		return
	}
	if len(items) > 0 {
		l.SetSelectedID(items[0].ID)
		return
	}
	l.SetSelectedID("")
}
