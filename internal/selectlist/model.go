// Package selectlist is a virtualized list with variable-height rows.
//
// Items are measured and drawn by a Delegate on every View. Only whole items
// that fit the viewport are drawn, and the cursor item is kept vertically
// centered when the content overflows. The selected id is owned by the
// caller: user navigation reports the new id through Event and the caller
// feeds it back with SetSelectedID.
package selectlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type Item interface {
	ItemID() string
}

// Row is what a Delegate is asked to draw.
type Row[T Item] struct {
	Item  T
	Index int
	Width int
	// Height is the normalized line count reserved for the item.
	Height int
	// Selected marks the cursor item.
	Selected bool
	// Highlighted is set when the selection band is drawn behind the item.
	Highlighted bool
}

// Delegate measures and draws one kind of item.
type Delegate[T Item] interface {
	// Measure returns one line height per item for the given width.
	Measure(items []T, width int) []int
	// Render returns the lines of one item. Returning no lines marks the
	// item as malformed; a placeholder with its id is drawn instead.
	Render(row Row[T]) []string
}

// Event reports the outcome of one input message.
type Event struct {
	// Handled is false when the message was not meant for the list.
	Handled bool
	// Moved is set when the cursor index changed.
	Moved bool
	// Selected is the id under the cursor after a handled input.
	Selected string
}

type Model[T Item] struct {
	KeyMap KeyMap

	// ShowSelection draws the highlight band behind the cursor item.
	ShowSelection bool
	// ShowScrollIndicator draws a thumb in the last column when content overflows.
	ShowScrollIndicator bool

	SelectionStyle   lipgloss.Style
	IndicatorStyle   lipgloss.Style
	PlaceholderStyle lipgloss.Style

	delegate Delegate[T]

	items      []T
	indexByID  map[string]int
	selectedID string
	cursor     int

	width   int
	height  int
	originX int
	originY int

	last Window
}

func New[T Item](d Delegate[T]) *Model[T] {
	return &Model[T]{
		KeyMap:           DefaultKeyMap(),
		ShowSelection:    true,
		SelectionStyle:   lipgloss.NewStyle().Reverse(true),
		IndicatorStyle:   lipgloss.NewStyle(),
		PlaceholderStyle: lipgloss.NewStyle().Faint(true),
		delegate:         d,
		indexByID:        map[string]int{},
	}
}

// IndexByID builds the id to index lookup SetItems expects.
func IndexByID[T Item](items []T) map[string]int {
	out := make(map[string]int, len(items))
	for i, it := range items {
		out[it.ItemID()] = i
	}
	return out
}

func (m *Model[T]) SetDelegate(d Delegate[T]) { m.delegate = d }

// SetItems replaces the items wholesale. index maps ids to positions in
// items; nil builds it. The cursor follows the bound selected id when it is
// still present.
func (m *Model[T]) SetItems(items []T, index map[string]int) {
	if index == nil {
		index = IndexByID(items)
	}
	m.items = items
	m.indexByID = index
	m.reconcile()
}

func (m *Model[T]) Items() []T { return m.items }

func (m *Model[T]) Len() int { return len(m.items) }

// SetSelectedID binds the caller-owned selected id and moves the cursor to
// it. Unknown ids leave the cursor where it is.
func (m *Model[T]) SetSelectedID(id string) {
	m.selectedID = id
	m.reconcile()
}

func (m *Model[T]) SelectedID() string { return m.selectedID }

func (m *Model[T]) reconcile() {
	if i, ok := m.lookup(m.selectedID); ok {
		m.cursor = i
	}
	m.cursor = clamp(m.cursor, 0, len(m.items)-1)
}

func (m *Model[T]) lookup(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	i, ok := m.indexByID[id]
	if !ok {
		return 0, false
	}
	return clamp(i, 0, len(m.items)-1), len(m.items) > 0
}

// hasSelection reports whether the bound id refers to a current item.
func (m *Model[T]) hasSelection() bool {
	_, ok := m.lookup(m.selectedID)
	return ok
}

func (m *Model[T]) Cursor() int { return m.cursor }

// Selected returns the item under the cursor.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}

func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model[T]) Width() int  { return m.width }
func (m *Model[T]) Height() int { return m.height }

// SetOrigin records where the list is drawn on screen so mouse coordinates
// can be made local.
func (m *Model[T]) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// InBounds reports whether a screen cell falls inside the list viewport.
func (m *Model[T]) InBounds(x, y int) bool {
	lx, ly := x-m.originX, y-m.originY
	return lx >= 0 && ly >= 0 && lx < m.width && ly < m.height
}

// LastWindow is the layout recorded by the most recent View.
func (m *Model[T]) LastWindow() Window { return m.last }

// Select moves the cursor to index i (clamped).
func (m *Model[T]) Select(i int) Event {
	if len(m.items) == 0 {
		return Event{}
	}
	prev := m.cursor
	m.cursor = clamp(i, 0, len(m.items)-1)
	return Event{Handled: true, Moved: prev != m.cursor, Selected: m.items[m.cursor].ItemID()}
}

// Move shifts the cursor by delta items.
func (m *Model[T]) Move(delta int) Event { return m.Select(m.cursor + delta) }

func (m *Model[T]) pageStep() int {
	return max(1, m.last.Count-1)
}

func (m *Model[T]) Update(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return Event{}
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) Event {
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		return m.Move(-1)
	case key.Matches(msg, m.KeyMap.Down):
		return m.Move(1)
	case key.Matches(msg, m.KeyMap.PageUp):
		return m.Move(-m.pageStep())
	case key.Matches(msg, m.KeyMap.PageDown):
		return m.Move(m.pageStep())
	case key.Matches(msg, m.KeyMap.Home):
		return m.Select(0)
	case key.Matches(msg, m.KeyMap.End):
		return m.Select(len(m.items) - 1)
	}
	return Event{}
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) Event {
	if !m.InBounds(msg.X, msg.Y) {
		return Event{}
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.Move(-1)
	case tea.MouseButtonWheelDown:
		return m.Move(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return Event{}
		}
		return m.Click(msg.Y - m.originY)
	}
	return Event{}
}

// Click selects the item drawn at viewport-local line y in the last View.
// Lines below the last drawn item are ignored.
func (m *Model[T]) Click(y int) Event {
	if len(m.items) == 0 {
		return Event{}
	}
	i, ok := m.last.HitTest(y)
	if !ok || i >= len(m.items) {
		return Event{}
	}
	return m.Select(i)
}

// Layout runs the layout pass for the current state without drawing.
func (m *Model[T]) Layout() Window {
	if m.width <= 0 || m.height <= 0 || len(m.items) == 0 {
		return Window{Cum: []int{0}}
	}
	heights := m.delegate.Measure(m.items, m.width)
	if len(heights) != len(m.items) {
		fixed := make([]int, len(m.items))
		copy(fixed, heights)
		heights = fixed
	}
	return ComputeWindow(heights, m.cursor, m.height)
}

// View draws the visible items and records the layout for input handling.
func (m *Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		m.last = Window{Cum: []int{0}}
		return ""
	}

	win := m.Layout()
	m.last = win

	blank := strings.Repeat(" ", m.width)
	lines := make([]string, 0, m.height)
	highlight := m.ShowSelection && m.hasSelection()

	for i := win.First; i < win.First+win.Count; i++ {
		h := win.Height(i)
		row := Row[T]{
			Item:     m.items[i],
			Index:    i,
			Width:    m.width,
			Height:   h,
			Selected: i == m.cursor,
		}
		row.Highlighted = row.Selected && highlight

		drawn := m.delegate.Render(row)
		if len(drawn) == 0 {
			drawn = []string{m.PlaceholderStyle.Render(m.items[i].ItemID())}
		}
		for l := 0; l < h; l++ {
			ln := ""
			if l < len(drawn) {
				ln = drawn[l]
			}
			lines = append(lines, m.fit(ln, row.Highlighted))
		}
	}
	for len(lines) < m.height {
		lines = append(lines, blank)
	}

	if m.ShowScrollIndicator && win.Total > m.height && len(m.items) > 0 {
		y := ScrollIndicatorRow(m.cursor, len(m.items), m.height)
		if m.width == 1 {
			lines[y] = m.IndicatorStyle.Render("█")
		} else {
			lines[y] = xansi.Cut(lines[y], 0, m.width-1) + m.IndicatorStyle.Render("█")
		}
	}

	return strings.Join(lines, "\n")
}

// ScrollIndicatorRow places the thumb proportionally to the cursor.
func ScrollIndicatorRow(cursor, n, height int) int {
	if height <= 1 || n <= 1 {
		return 0
	}
	return clamp(cursor*(height-1)/(n-1), 0, height-1)
}

// fit pads or cuts ln to exactly the list width. Highlighted rows are padded
// with the selection style so the band spans the full width.
func (m *Model[T]) fit(ln string, highlighted bool) string {
	w := xansi.StringWidth(ln)
	if w > m.width {
		ln = xansi.Truncate(ln, m.width, "…")
		w = xansi.StringWidth(ln)
	}
	if w >= m.width {
		return ln
	}
	pad := strings.Repeat(" ", m.width-w)
	if highlighted {
		pad = m.SelectionStyle.Render(pad)
	}
	return ln + pad
}
