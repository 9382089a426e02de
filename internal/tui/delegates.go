package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"huba-cli/internal/selectlist"
	"huba-cli/internal/task"
)

const (
	idMinWidth   = 40
	dateMinWidth = 50
	datePadRight = 1
)

// taskDelegate draws task rows: zero-padded id, status icon, wrapped title
// and a right-aligned relative date.
type taskDelegate struct {
	palette  *Palette
	showID   bool
	showDate bool
	maxLines int
	now      func() time.Time

	// Computed by Measure for the Render calls of the same pass.
	layout taskRowLayout
}

type taskRowLayout struct {
	showID     bool
	showDate   bool
	maxIDLen   int
	maxDateLen int
	iconX      int
	subjectX   int
	lineWidth  int
}

func newTaskDelegate(p *Palette, showDate bool, maxLines int) *taskDelegate {
	return &taskDelegate{
		palette:  p,
		showID:   true,
		showDate: showDate,
		maxLines: maxLines,
		now:      time.Now,
	}
}

func (d *taskDelegate) computeLayout(items []task.Task, width int) taskRowLayout {
	l := taskRowLayout{
		showID:   d.showID && width >= idMinWidth,
		showDate: d.showDate && width >= dateMinWidth,
	}
	now := d.now()
	for _, t := range items {
		l.maxIDLen = max(l.maxIDLen, len(t.ID))
		if l.showDate && !t.UpdatedAt.IsZero() {
			l.maxDateLen = max(l.maxDateLen, xansi.StringWidth(task.FormatAge(t.UpdatedAt, now)))
		}
	}
	if l.showID {
		l.iconX = 1 + l.maxIDLen + 1
	}
	l.subjectX = l.iconX + 2
	timeReserved := 0
	if l.showDate {
		timeReserved = l.maxDateLen + datePadRight + 1
	}
	l.lineWidth = max(0, width-l.subjectX-timeReserved)
	return l
}

func (d *taskDelegate) Measure(items []task.Task, width int) []int {
	d.layout = d.computeLayout(items, width)
	out := make([]int, len(items))
	for i, t := range items {
		out[i] = len(selectlist.WordWrap(t.Subject, d.layout.lineWidth, d.maxLines))
	}
	return out
}

func (d *taskDelegate) Render(row selectlist.Row[task.Task]) []string {
	t := row.Item
	if strings.TrimSpace(t.Subject) == "" {
		return nil
	}
	l := d.layout
	p := d.palette
	colors := p.StatusColors(t.Status)

	base := lipgloss.NewStyle()
	if row.Highlighted {
		base = base.Background(color(p.Surface.Selection))
	}
	pad := func(n int) string {
		if n <= 0 {
			return ""
		}
		return base.Render(strings.Repeat(" ", n))
	}

	titleStyle := base.Foreground(color(colors.Title))
	switch t.Status {
	case task.StatusBlocked:
		titleStyle = titleStyle.Faint(true)
	case task.StatusInProgress:
		titleStyle = titleStyle.Bold(true)
	case task.StatusCompleted:
		titleStyle = titleStyle.Strikethrough(true)
	}

	wrapped := selectlist.WordWrap(t.Subject, l.lineWidth, d.maxLines)
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}
	lines := make([]string, 0, row.Height)
	for i := 0; i < row.Height; i++ {
		var b strings.Builder
		if i == 0 {
			if l.showID {
				id := "#" + leftPad(t.ID, l.maxIDLen, '0') + " "
				b.WriteString(base.Foreground(color(colors.ID)).Faint(true).Render(id))
			}
			b.WriteString(base.Foreground(color(colors.Icon)).Render(glyphStatusIcon(t.Status)))
			b.WriteString(pad(1))
		} else {
			b.WriteString(pad(l.subjectX))
		}

		text := ""
		if i < len(wrapped) {
			text = wrapped[i]
		}
		if text != "" {
			b.WriteString(titleStyle.Render(text))
		}
		b.WriteString(pad(l.lineWidth - xansi.StringWidth(text)))

		if l.showDate {
			date := ""
			if i == 0 && !t.UpdatedAt.IsZero() {
				date = task.FormatAge(t.UpdatedAt, d.now())
			}
			dw := xansi.StringWidth(date)
			b.WriteString(pad(l.maxDateLen + 1 - dw))
			if date != "" {
				b.WriteString(base.Foreground(color(p.Colors.Date)).Faint(true).Render(date))
			}
			b.WriteString(pad(datePadRight))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func leftPad(s string, n int, r rune) string {
	if w := len(s); w < n {
		return strings.Repeat(string(r), n-w) + s
	}
	return s
}

// listDelegate draws one line per task list: id, task count and age.
type listDelegate struct {
	palette *Palette
	now     func() time.Time
}

func newListDelegate(p *Palette) *listDelegate {
	return &listDelegate{palette: p, now: time.Now}
}

func (d *listDelegate) Measure(items []task.List, width int) []int {
	out := make([]int, len(items))
	for i := range out {
		out[i] = 1
	}
	return out
}

func (d *listDelegate) Render(row selectlist.Row[task.List]) []string {
	l := row.Item
	p := d.palette
	base := lipgloss.NewStyle()
	if row.Highlighted {
		base = base.Background(color(p.Surface.Selection))
	}

	count := "1 task"
	if l.TasksCount != 1 {
		count = strconv.Itoa(l.TasksCount) + " tasks"
	}
	right := count
	if row.Width >= 30 && !l.CreatedAt.IsZero() {
		right = count + "  " + task.FormatAgeShort(l.CreatedAt, d.now())
	}
	right += " "

	idWidth := max(0, row.Width-xansi.StringWidth(right)-2)
	id := xansi.Truncate(l.ID, idWidth, glyphEllipsis())
	gap := max(1, row.Width-1-xansi.StringWidth(id)-xansi.StringWidth(right))

	var b strings.Builder
	b.WriteString(base.Render(" "))
	b.WriteString(base.Foreground(color(p.Colors.Primary)).Render(id))
	b.WriteString(base.Render(strings.Repeat(" ", gap)))
	b.WriteString(base.Foreground(color(p.Colors.Secondary)).Faint(true).Render(right))
	return []string{b.String()}
}
