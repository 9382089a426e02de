package task

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FilterAll matches every status.
const FilterAll = "all"

type Filter struct {
	Status string `json:"status"`
	Search string `json:"search,omitempty"`
}

func ParseFilterStatus(s string) (string, error) {
	switch v := strings.TrimSpace(s); v {
	case "", FilterAll:
		return FilterAll, nil
	case string(StatusPending), string(StatusInProgress), string(StatusBlocked), string(StatusCompleted):
		return v, nil
	default:
		return "", fmt.Errorf("invalid filter status: %q (expected all|pending|in_progress|blocked|completed)", s)
	}
}

var filterCycle = []string{FilterAll, string(StatusPending), string(StatusInProgress), string(StatusBlocked), string(StatusCompleted)}

// NextFilterStatus returns the status after cur in the filter cycle.
func NextFilterStatus(cur string) string {
	for i, s := range filterCycle {
		if s == cur {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return filterCycle[1]
}

func (f Filter) Match(t Task) bool {
	if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Subject), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Apply returns the tasks matched by f, preserving order.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Label is the footer label for the status filter ("" for all).
func (f Filter) Label() string {
	switch f.Status {
	case "", FilterAll:
		return ""
	default:
		return strings.ToUpper(Status(f.Status).Label())
	}
}

type SortField string

const (
	SortFieldID        SortField = "id"
	SortFieldSubject   SortField = "subject"
	SortFieldStatus    SortField = "status"
	SortFieldUpdatedAt SortField = "updatedAt"
)

func ParseSortField(s string) (SortField, error) {
	switch SortField(strings.TrimSpace(s)) {
	case "", SortFieldID:
		return SortFieldID, nil
	case SortFieldSubject, "title":
		return SortFieldSubject, nil
	case SortFieldStatus:
		return SortFieldStatus, nil
	case SortFieldUpdatedAt, "updated":
		return SortFieldUpdatedAt, nil
	default:
		return "", fmt.Errorf("invalid sort field: %q (expected id|subject|status|updatedAt)", s)
	}
}

type Sort struct {
	Field SortField `json:"field"`
	Desc  bool      `json:"desc,omitempty"`
}

// Toggle flips direction when field is already active, otherwise switches to field ascending.
func (s Sort) Toggle(field SortField) Sort {
	if s.Field == field {
		return Sort{Field: field, Desc: !s.Desc}
	}
	return Sort{Field: field}
}

// Label renders the sort state for panel subtitles, e.g. "ID ↑".
func (s Sort) Label() string {
	name := "ID"
	switch s.Field {
	case SortFieldSubject:
		name = "TITLE"
	case SortFieldStatus:
		name = "STATUS"
	case SortFieldUpdatedAt:
		name = "UPDATED"
	}
	if s.Desc {
		return name + " ↓"
	}
	return name + " ↑"
}

var statusOrder = map[Status]int{
	StatusInProgress: 0,
	StatusPending:    1,
	StatusBlocked:    2,
	StatusCompleted:  3,
}

// Apply returns a sorted copy of tasks.
func (s Sort) Apply(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		c := s.compare(out[i], out[j])
		if s.Desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func (s Sort) compare(a, b Task) int {
	switch s.Field {
	case SortFieldSubject:
		return strings.Compare(strings.ToLower(a.Subject), strings.ToLower(b.Subject))
	case SortFieldStatus:
		if d := statusOrder[a.Status] - statusOrder[b.Status]; d != 0 {
			return d
		}
		return CompareIDs(a.ID, b.ID)
	case SortFieldUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return CompareIDs(a.ID, b.ID)
	}
}

type Progress struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Blocked    int `json:"blocked"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	// Percent is the rounded share of completed tasks.
	Percent int `json:"percent"`
}

func ComputeProgress(tasks []Task) Progress {
	var p Progress
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			p.Pending++
		case StatusInProgress:
			p.InProgress++
		case StatusBlocked:
			p.Blocked++
		case StatusCompleted:
			p.Completed++
		default:
			continue
		}
		p.Total++
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}
