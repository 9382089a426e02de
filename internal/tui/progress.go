package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"huba-cli/internal/task"
)

// progressWidths splits width cells between values in proportion, handing
// leftover cells to the largest fractional remainders.
func progressWidths(values []int, width int) []int {
	out := make([]int, len(values))
	total := 0
	for _, v := range values {
		total += v
	}
	if total <= 0 || width <= 0 {
		return out
	}

	type rem struct {
		i    int
		frac float64
	}
	rems := make([]rem, len(values))
	used := 0
	for i, v := range values {
		exact := float64(v) / float64(total) * float64(width)
		out[i] = int(math.Floor(exact))
		used += out[i]
		rems[i] = rem{i: i, frac: exact - float64(out[i])}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for _, r := range rems {
		if used >= width {
			break
		}
		out[r.i]++
		used++
	}
	return out
}

// progressBar draws a stacked bar of blocked, pending, in-progress and
// completed counts.
func progressBar(p *Palette, prog task.Progress, width int) string {
	if width <= 0 {
		return ""
	}
	block := glyphBlock()
	if prog.Total == 0 {
		return lipgloss.NewStyle().Foreground(color(p.Progress.Pending)).Faint(true).Render(strings.Repeat(block, width))
	}
	values := []int{prog.Blocked, prog.Pending, prog.InProgress, prog.Completed}
	colors := []string{p.Progress.Blocked, p.Progress.Pending, p.Progress.InProgress, p.Progress.Completed}
	var b strings.Builder
	for i, w := range progressWidths(values, width) {
		if w <= 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color(colors[i])).Render(strings.Repeat(block, w)))
	}
	return b.String()
}

func progressTitle(prog task.Progress) string {
	return fmt.Sprintf("%d out of %d", prog.Completed, prog.Total)
}

func progressPercent(prog task.Progress) string {
	return fmt.Sprintf("%d%%", prog.Percent)
}
