package selectlist

import "sort"

// Window is one layout pass: which items were drawn and where.
type Window struct {
	// First is the index of the first drawn item.
	First int
	// Count is how many whole items were drawn.
	Count int
	// Cum holds cumulative line offsets; Cum[i] is the first line of item i
	// and Cum[len(items)] is the total content height.
	Cum []int
	// Total is the content height of every item.
	Total int
	// Lines is the number of viewport lines the drawn items occupy.
	Lines int
}

// Height returns the line height of item i in this layout.
func (w Window) Height(i int) int {
	if i < 0 || i+1 >= len(w.Cum) {
		return 0
	}
	return w.Cum[i+1] - w.Cum[i]
}

// Contains reports whether item i was drawn.
func (w Window) Contains(i int) bool {
	return i >= w.First && i < w.First+w.Count
}

// HitTest maps a viewport-local line to the drawn item covering it.
// Lines below the last drawn item report false.
func (w Window) HitTest(y int) (int, bool) {
	if y < 0 {
		return -1, false
	}
	top := 0
	for i := w.First; i < w.First+w.Count; i++ {
		h := w.Height(i)
		if y >= top && y < top+h {
			return i, true
		}
		top += h
	}
	return -1, false
}

// NormalizeHeights clamps every height to [1, viewport] so any single item
// can be shown whole. A non-positive viewport only enforces the lower bound.
func NormalizeHeights(heights []int, viewport int) []int {
	out := make([]int, len(heights))
	for i, h := range heights {
		if h < 1 {
			h = 1
		}
		if viewport > 0 && h > viewport {
			h = viewport
		}
		out[i] = h
	}
	return out
}

// Cumulative returns prefix sums of heights with a leading zero.
func Cumulative(heights []int) []int {
	cum := make([]int, len(heights)+1)
	for i, h := range heights {
		cum[i+1] = cum[i] + h
	}
	return cum
}

// ComputeWindow lays out items of the given heights in a viewport of
// viewport lines, centering the cursor item when content overflows. Only
// whole items are drawn.
func ComputeWindow(heights []int, cursor, viewport int) Window {
	hs := NormalizeHeights(heights, viewport)
	n := len(hs)
	cum := Cumulative(hs)
	w := Window{Cum: cum, Total: cum[n]}
	if n == 0 || viewport <= 0 {
		return w
	}
	cursor = clamp(cursor, 0, n-1)

	if w.Total > viewport {
		target := cum[cursor] - (viewport-hs[cursor])/2
		target = clamp(target, 0, w.Total-viewport)
		// cum is strictly increasing, so this is the first item starting at or below target.
		first := sort.SearchInts(cum[:n], target)
		if first >= n {
			first = 0
		}
		w.First = first
	}

	for i := w.First; i < n; i++ {
		if w.Lines+hs[i] > viewport {
			break
		}
		w.Lines += hs[i]
		w.Count++
	}
	return w
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
