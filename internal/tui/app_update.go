package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"huba-cli/internal/selectlist"
	"huba-cli/internal/task"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case reloadTickMsg:
		tasksChanged, listsChanged := m.storeChanged()
		if listsChanged {
			m.reloadLists()
		}
		if tasksChanged {
			m.reloadTasks()
		}
		return m, tickReload()

	case tea.MouseMsg:
		m.layout()
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.layout()
		if m.focus == paneSearch && m.page == pageTasks {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	if key.Matches(msg, k.Quit) {
		return m, tea.Quit
	}
	if m.help.ShowAll {
		if key.Matches(msg, k.Help) || key.Matches(msg, k.Back) {
			m.help.ShowAll = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Help):
		m.help.ShowAll = true
		return m, nil
	case key.Matches(msg, k.Lists):
		m.reloadLists()
		m.page = pageLists
		if m.listID != "" {
			m.listSel.SetSelectedID(m.listID)
		}
		return m, nil
	case key.Matches(msg, k.LatestList):
		m.reloadLists()
		if id, ok := m.store.LatestListID(context.Background()); ok {
			m.openList(id)
		}
		return m, nil
	case key.Matches(msg, k.NextTheme):
		m.setTheme(m.themes.Next(m.settings.Theme, 1))
		return m, nil
	case key.Matches(msg, k.PrevTheme):
		m.setTheme(m.themes.Next(m.settings.Theme, -1))
		return m, nil
	case key.Matches(msg, k.Reload):
		m.reloadLists()
		m.reloadTasks()
		return m, nil
	case key.Matches(msg, k.Settings):
		m.openSettings()
		return m, nil
	}

	if m.page == pageSettings {
		return m.handleSettingsKey(msg)
	}
	if m.page == pageLists {
		return m.handleListsKey(msg)
	}

	switch {
	case key.Matches(msg, k.FocusTasks):
		m.focus = paneTasks
		return m, nil
	case key.Matches(msg, k.FocusDetails):
		if m.settings.ShowDetails {
			m.focus = paneDetails
		}
		return m, nil
	case key.Matches(msg, k.FocusBlocks):
		m.focusBlockers(paneBlocks, m.blocks)
		return m, nil
	case key.Matches(msg, k.FocusBlocked):
		m.focusBlockers(paneBlockedBy, m.blockedBy)
		return m, nil
	case key.Matches(msg, k.Search):
		m.focus = paneSearch
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, k.Layout):
		m.toggleLayout()
		return m, nil
	case key.Matches(msg, k.Progress):
		m.toggleProgress()
		return m, nil
	case msg.String() == "/":
		m.toggleDetails()
		return m, nil
	}

	switch m.focus {
	case paneDetails:
		return m.handleDetailsKey(msg)
	case paneBlocks:
		return m.handleBlockerKey(msg, m.blocks)
	case paneBlockedBy:
		return m.handleBlockerKey(msg, m.blockedBy)
	}
	return m.handleTasksKey(msg)
}

func (m appModel) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ToggleDetails):
		m.toggleDetails()
	case key.Matches(msg, k.OpenDetails):
		m.settings.ShowDetails = true
		m.saveSettings()
		m.focus = paneDetails
	case key.Matches(msg, k.Back):
		if m.settings.ShowDetails {
			m.settings.ShowDetails = false
			m.saveSettings()
		}
	case key.Matches(msg, k.SortID):
		m.toggleSort(task.SortFieldID)
	case key.Matches(msg, k.SortTitle):
		m.toggleSort(task.SortFieldSubject)
	case key.Matches(msg, k.SortStatus):
		m.toggleSort(task.SortFieldStatus)
	case key.Matches(msg, k.SortDate):
		m.toggleSort(task.SortFieldUpdatedAt)
	case key.Matches(msg, k.Filter):
		m.settings.Filter.Status = task.NextFilterStatus(m.settings.Filter.Status)
		m.saveSettings()
		m.refreshView()
	default:
		m.applyTaskEvent(m.tasks.Update(msg))
	}
	return m, nil
}

func (m *appModel) applyTaskEvent(ev selectlist.Event) {
	if ev.Handled && ev.Selected != "" {
		m.selectTask(ev.Selected)
	}
}

func (m *appModel) toggleSort(field task.SortField) {
	m.settings.Sort = m.settings.Sort.Toggle(field)
	m.saveSettings()
	m.refreshView()
}

func (m *appModel) toggleDetails() {
	m.settings.ShowDetails = !m.settings.ShowDetails
	if !m.settings.ShowDetails && m.focus != paneTasks {
		m.focus = paneTasks
	}
	m.saveSettings()
}

func (m *appModel) focusBlockers(p pane, l *selectlist.Model[task.Task]) {
	if !m.settings.ShowDetails || l.Len() == 0 {
		return
	}
	m.focus = p
	if it, ok := l.Selected(); ok {
		l.SetSelectedID(it.ID)
	}
}

func (m appModel) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.keys.Nav
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = paneTasks
	case key.Matches(msg, nav.Up):
		m.detailScroll = max(0, m.detailScroll-1)
	case key.Matches(msg, nav.Down):
		m.detailScroll++
	case key.Matches(msg, nav.PageUp):
		m.detailScroll = max(0, m.detailScroll-m.detailsPageStep())
	case key.Matches(msg, nav.PageDown):
		m.detailScroll += m.detailsPageStep()
	case key.Matches(msg, nav.Home):
		m.detailScroll = 0
	case key.Matches(msg, nav.End):
		m.detailScroll = 1 << 20
	}
	m.clampDetailScroll()
	return m, nil
}

func (m appModel) handleBlockerKey(msg tea.KeyMsg, l *selectlist.Model[task.Task]) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = paneTasks
	case key.Matches(msg, m.keys.OpenDetails):
		if it, ok := l.Selected(); ok && l.SelectedID() != "" {
			m.jumpTo(it.ID)
		}
	default:
		if ev := l.Update(msg); ev.Handled && ev.Selected != "" {
			l.SetSelectedID(ev.Selected)
		}
	}
	return m, nil
}

// jumpTo selects id in the task list from a blocker pane. A status filter
// hiding the task is cleared so the jump lands on a visible row.
func (m *appModel) jumpTo(id string) {
	m.focus = paneTasks
	if _, ok := task.Find(m.shown, id); !ok {
		m.settings.Filter = task.Filter{Status: task.FilterAll}
		m.search.SetValue("")
		m.saveSettings()
		m.refreshView()
	}
	m.selectTask(id)
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.setSearch("")
			return m, nil
		}
		m.leaveSearch()
		return m, nil
	case tea.KeyEnter:
		m.leaveSearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

func (m *appModel) setSearch(q string) {
	if q == m.settings.Filter.Search {
		return
	}
	m.settings.Filter.Search = q
	m.refreshView()
}

// leaveSearch returns to the task list, keeping the selection when it is
// still shown and otherwise selecting the first match.
func (m *appModel) leaveSearch() {
	m.search.Blur()
	m.focus = paneTasks
	m.saveSettings()
	if _, ok := task.Find(m.shown, m.selectedID); ok {
		return
	}
	if len(m.shown) > 0 {
		m.selectTask(m.shown[0].ID)
	}
}

func (m appModel) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.listID != "" {
			m.page = pageTasks
		}
	case key.Matches(msg, m.keys.OpenDetails):
		if l, ok := m.listSel.Selected(); ok {
			m.openList(l.ID)
		}
	default:
		if ev := m.listSel.Update(msg); ev.Handled && ev.Selected != "" {
			m.listSel.SetSelectedID(ev.Selected)
		}
	}
	return m, nil
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	press := msg.Action == tea.MouseActionPress
	if m.page == pageSettings {
		return m.handleSettingsMouse(msg, m.computeLayout().settings)
	}
	if m.page == pageLists {
		if ev := m.listSel.Update(msg); ev.Handled && ev.Selected != "" {
			m.listSel.SetSelectedID(ev.Selected)
		}
		return m, nil
	}

	lay := m.computeLayout()
	switch {
	case m.tasks.InBounds(msg.X, msg.Y):
		if press {
			m.focus = paneTasks
		}
		m.applyTaskEvent(m.tasks.Update(msg))
	case m.blocks.InBounds(msg.X, msg.Y):
		if press {
			m.focus = paneBlocks
		}
		if ev := m.blocks.Update(msg); ev.Handled && ev.Selected != "" {
			m.blocks.SetSelectedID(ev.Selected)
		}
	case m.blockedBy.InBounds(msg.X, msg.Y):
		if press {
			m.focus = paneBlockedBy
		}
		if ev := m.blockedBy.Update(msg); ev.Handled && ev.Selected != "" {
			m.blockedBy.SetSelectedID(ev.Selected)
		}
	case lay.details.contains(msg.X, msg.Y):
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.detailScroll = max(0, m.detailScroll-1)
		case tea.MouseButtonWheelDown:
			m.detailScroll++
			m.clampDetailScroll()
		case tea.MouseButtonLeft:
			if press {
				m.focus = paneDetails
			}
		}
	case lay.search.contains(msg.X, msg.Y):
		if press && msg.Button == tea.MouseButtonLeft {
			m.focus = paneSearch
			cmd := m.search.Focus()
			return m, cmd
		}
	}
	return m, nil
}
