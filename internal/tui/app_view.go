package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"huba-cli/internal/store"
	"huba-cli/internal/task"
)

const (
	headerHeight     = 3
	searchHeight     = 3
	maxBlockerRows   = 4
	minDetailsHeight = 6
	listPanelWidth   = 28
)

var timeNow = time.Now

type appLayout struct {
	tooSmall  bool
	list      rect
	progress  rect
	search    rect
	tasks     rect
	details   rect
	blocks    rect
	blockedBy rect
	lists     rect
	settings  rect
	footerY   int
}

func (m appModel) searchVisible() bool {
	return m.focus == paneSearch || m.settings.Filter.Search != ""
}

func (m appModel) computeLayout() appLayout {
	var lay appLayout
	w, h := m.width, m.height
	if w < minWidth || h < minHeight {
		lay.tooSmall = true
		return lay
	}
	lay.footerY = h - 1

	switch m.page {
	case pageLists:
		lay.lists = rect{x: 0, y: 0, w: w, h: h - 1}
		return lay
	case pageSettings:
		lay.settings = rect{x: 0, y: 0, w: w, h: h - 1}
		return lay
	}

	y := 0
	if m.settings.ShowProgress {
		lw := min(listPanelWidth, w/3)
		lay.list = rect{x: 0, y: 0, w: lw, h: headerHeight}
		lay.progress = rect{x: lw, y: 0, w: w - lw, h: headerHeight}
	} else {
		lay.list = rect{x: 0, y: 0, w: w, h: headerHeight}
	}
	y += headerHeight
	if m.searchVisible() {
		lay.search = rect{x: 0, y: y, w: w, h: searchHeight}
		y += searchHeight
	}
	bodyH := lay.footerY - y

	if !m.settings.ShowDetails {
		lay.tasks = rect{x: 0, y: y, w: w, h: bodyH}
		return lay
	}

	var side rect
	if m.settings.Layout == store.LayoutVertical {
		th := bodyH / 2
		lay.tasks = rect{x: 0, y: y, w: w, h: th}
		side = rect{x: 0, y: y + th, w: w, h: bodyH - th}
	} else {
		tw := w / 2
		lay.tasks = rect{x: 0, y: y, w: tw, h: bodyH}
		side = rect{x: tw, y: y, w: w - tw, h: bodyH}
	}

	blocksH := blockerPanelHeight(m.blocks.Len())
	blockedH := blockerPanelHeight(m.blockedBy.Len())
	if side.h-blocksH-blockedH < minDetailsHeight {
		blocksH, blockedH = 0, 0
	}
	lay.details = rect{x: side.x, y: side.y, w: side.w, h: side.h - blocksH - blockedH}
	if blocksH > 0 {
		lay.blocks = rect{x: side.x, y: lay.details.y + lay.details.h, w: side.w, h: blocksH}
	}
	if blockedH > 0 {
		lay.blockedBy = rect{x: side.x, y: lay.details.y + lay.details.h + blocksH, w: side.w, h: blockedH}
	}
	return lay
}

func blockerPanelHeight(n int) int {
	if n == 0 {
		return 0
	}
	return min(n, maxBlockerRows) + 2
}

// layout sizes and places the lists so mouse hits resolve against the
// same geometry View draws.
func (m *appModel) layout() {
	lay := m.computeLayout()
	place := func(setSize func(int, int), setOrigin func(int, int), r rect) {
		in := r.inner()
		if r.empty() {
			in = rect{}
		}
		setSize(in.w, in.h)
		setOrigin(in.x, in.y)
	}
	place(m.tasks.SetSize, m.tasks.SetOrigin, lay.tasks)
	place(m.blocks.SetSize, m.blocks.SetOrigin, lay.blocks)
	place(m.blockedBy.SetSize, m.blockedBy.SetOrigin, lay.blockedBy)
	place(m.listSel.SetSize, m.listSel.SetOrigin, lay.lists)
	m.blocks.ShowSelection = m.focus == paneBlocks
	m.blockedBy.ShowSelection = m.focus == paneBlockedBy
	m.search.Width = max(1, lay.search.inner().w-1)
}

func (m appModel) View() string {
	lay := m.computeLayout()
	if lay.tooSmall {
		msg := lipgloss.NewStyle().Foreground(color(m.palette.Colors.Hint)).Faint(true).Render("Window is too small")
		return centered(msg, m.width, m.height)
	}
	m.layout()

	var body string
	if m.help.ShowAll {
		body = m.viewHelp()
	} else if m.page == pageLists {
		body = m.viewLists(lay)
	} else if m.page == pageSettings {
		body = m.viewSettings(lay.settings)
	} else {
		body = m.viewTasksPage(lay)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewFooter())
}

func (m appModel) viewHelp() string {
	pn := panel{title: "Help", subTitle: "? or esc to close", focused: true}
	return pn.render(m.palette, m.help.View(m.keys), m.width, m.height-1)
}

func (m appModel) viewFooter() string {
	if m.message != "" {
		st := lipgloss.NewStyle().Foreground(color(m.palette.Status.Blocked.Title))
		return normalizePane(st.Render(" "+m.message), m.width, 1)
	}
	bindings := m.keys.ShortHelp()
	if m.page == pageSettings {
		bindings = m.keys.SettingsHelp()
	}
	return normalizePane(" "+m.help.ShortHelpView(bindings), m.width, 1)
}

func (m appModel) viewLists(lay appLayout) string {
	in := lay.lists.inner()
	body := m.listSel.View()
	if len(m.lists) == 0 {
		body = m.placeholder("No lists found", in.w, in.h)
	}
	sub := strconv.Itoa(len(m.lists))
	if i := m.listSel.Cursor(); len(m.lists) > 0 {
		sub = strconv.Itoa(i+1) + "/" + sub
	}
	pn := panel{title: "Lists", footer: m.store.TasksDir, subFooter: sub, focused: true}
	return pn.render(m.palette, body, lay.lists.w, lay.lists.h)
}

func (m appModel) placeholder(label string, w, h int) string {
	hint := lipgloss.NewStyle().Foreground(color(m.palette.Colors.Hint))
	cat := hint.Faint(true).Render(" /\\_/\\\n( o.o )\n > ^ <")
	return centered(lipgloss.JoinVertical(lipgloss.Center, cat, "", hint.Render(label)), w, h)
}

func (m appModel) viewTasksPage(lay appLayout) string {
	rows := []string{m.viewHeader(lay)}
	if !lay.search.empty() {
		rows = append(rows, m.viewSearch(lay.search))
	}
	rows = append(rows, m.viewBody(lay))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m appModel) viewHeader(lay appLayout) string {
	listTitle := "[L]"
	if lay.list.w > 20 {
		listTitle = "[L] List"
	}
	id := lipgloss.NewStyle().Foreground(color(m.palette.Colors.Secondary)).Render(m.listID)
	list := panel{title: listTitle}.render(m.palette, id, lay.list.w, lay.list.h)
	if lay.progress.empty() {
		return list
	}
	prog := task.ComputeProgress(m.snap.Tasks)
	bar := progressBar(m.palette, prog, lay.progress.inner().w)
	pn := panel{title: "Progress", subTitle: progressTitle(prog) + "  " + progressPercent(prog)}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, pn.render(m.palette, bar, lay.progress.w, lay.progress.h))
}

func (m appModel) viewSearch(r rect) string {
	pn := panel{title: "Search", focused: m.focus == paneSearch}
	return pn.render(m.palette, m.search.View(), r.w, r.h)
}

func (m appModel) viewBody(lay appLayout) string {
	tasks := m.viewTaskList(lay.tasks)
	if lay.details.empty() {
		return tasks
	}
	side := []string{m.viewDetails(lay.details)}
	if !lay.blocks.empty() {
		side = append(side, panel{title: "[3] Blocks", focused: m.focus == paneBlocks}.render(m.palette, m.blocks.View(), lay.blocks.w, lay.blocks.h))
	}
	if !lay.blockedBy.empty() {
		side = append(side, panel{title: "[4] Blocked by", focused: m.focus == paneBlockedBy}.render(m.palette, m.blockedBy.View(), lay.blockedBy.w, lay.blockedBy.h))
	}
	sideView := lipgloss.JoinVertical(lipgloss.Left, side...)
	if m.settings.Layout == store.LayoutVertical {
		return lipgloss.JoinVertical(lipgloss.Left, tasks, sideView)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tasks, sideView)
}

// taskListTitles returns the sort label, filter label and position labels
// shown on the task list border.
func (m appModel) taskListTitles() (subTitle, footer, subFooter string) {
	subTitle = glyphArrows(m.settings.Sort.Label())
	if m.settings.Filter.Status != task.FilterAll {
		footer = m.settings.Filter.Label()
	}
	subFooter = strconv.Itoa(len(m.shown))
	if i, ok := task.Index(m.shown)[m.selectedID]; ok {
		subFooter = strconv.Itoa(i+1) + "/" + subFooter
	}
	return subTitle, footer, subFooter
}

func (m appModel) viewTaskList(r rect) string {
	in := r.inner()
	body := m.tasks.View()
	if len(m.shown) == 0 {
		label := "All done"
		if len(m.snap.Tasks) == 0 {
			label = "No tasks found"
		}
		body = m.placeholder(label, in.w, in.h)
	}
	sub, foot, subFoot := m.taskListTitles()
	pn := panel{title: "[1] Task List", subTitle: sub, footer: foot, subFooter: subFoot, focused: m.focus == paneTasks}
	return pn.render(m.palette, body, r.w, r.h)
}

func (m appModel) viewDetails(r rect) string {
	in := r.inner()
	pn := panel{title: "[2] Details", focused: m.focus == paneDetails}
	t, ok := m.selectedTask()
	if !ok {
		return pn.render(m.palette, m.placeholderText("No task selected", in.w, in.h), r.w, r.h)
	}
	lines := m.detailLines(t, in.w)
	off := min(m.detailScroll, max(0, len(lines)-in.h))
	if off > 0 {
		pn.subFooter = strconv.Itoa(off+1) + "/" + strconv.Itoa(len(lines))
	}
	return pn.render(m.palette, strings.Join(lines[off:], "\n"), r.w, r.h)
}

func (m appModel) placeholderText(label string, w, h int) string {
	st := lipgloss.NewStyle().Foreground(color(m.palette.Colors.Hint)).Faint(true)
	return centered(st.Render(label), w, h)
}

var statusLabels = map[task.Status]string{
	task.StatusPending:    "Pending",
	task.StatusInProgress: "In Progress",
	task.StatusCompleted:  "Completed",
	task.StatusBlocked:    "Blocked",
}

// detailLines renders the header, status block and markdown description of
// t wrapped to width.
func (m appModel) detailLines(t task.Task, width int) []string {
	p := m.palette
	primary := lipgloss.NewStyle().Foreground(color(p.Colors.Primary))
	secondary := lipgloss.NewStyle().Foreground(color(p.Colors.Secondary))
	id := lipgloss.NewStyle().Foreground(color(p.Colors.Accent)).Faint(true).Bold(true).Render("#" + t.ID)

	var out []string
	subject := xansi.Wordwrap(t.Subject, max(1, width-xansi.StringWidth("#"+t.ID)-1), "")
	for i, ln := range strings.Split(subject, "\n") {
		prefix := strings.Repeat(" ", xansi.StringWidth("#"+t.ID))
		if i == 0 {
			prefix = id
		}
		out = append(out, prefix+" "+primary.Underline(true).Render(ln))
	}
	out = append(out, "")

	field := func(label, value string) {
		if value != "" {
			out = append(out, secondary.Render(label+":")+" "+primary.Render(value))
		}
	}
	field("Status", statusLabels[t.Status])
	if t.Status == task.StatusInProgress {
		field("Doing", t.ActiveForm)
	}
	field("Owner", t.Owner)
	if !t.UpdatedAt.IsZero() {
		field("Updated", task.FormatAge(t.UpdatedAt, timeNow()))
	}
	out = append(out, "")

	if md := renderMarkdown(t.Description, width, m.settings.Theme, p); md != "" {
		out = append(out, strings.Split(md, "\n")...)
	}
	return out
}

func (m appModel) detailsPageStep() int {
	return max(1, m.computeLayout().details.inner().h-1)
}

// clampDetailScroll keeps the details offset within the rendered content.
func (m *appModel) clampDetailScroll() {
	r := m.computeLayout().details.inner()
	t, ok := m.selectedTask()
	if !ok || r.empty() {
		m.detailScroll = 0
		return
	}
	n := len(m.detailLines(t, r.w))
	m.detailScroll = min(max(0, m.detailScroll), max(0, n-r.h))
}
