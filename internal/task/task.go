package task

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"

	// StatusBlocked is computed from the blockedBy graph and never persisted.
	StatusBlocked Status = "blocked"
)

// ParseStatus accepts only statuses that may appear in a task file.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid task status: %q", s)
	}
}

func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case "":
		return "all"
	default:
		return string(s)
	}
}

type Task struct {
	ID          string         `json:"id"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	ActiveForm  string         `json:"activeForm"`
	Status      Status         `json:"status"`
	Owner       string         `json:"owner,omitempty"`
	Blocks      []string       `json:"blocks,omitempty"`
	BlockedBy   []string       `json:"blockedBy,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	// UpdatedAt is the task file's modification time.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemID lets tasks be shown directly by a selectlist.Model.
func (t Task) ItemID() string { return t.ID }

// List is one task-list directory.
type List struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
	TasksCount int       `json:"tasksCount"`
}

func (l List) ItemID() string { return l.ID }

// CompareIDs orders numeric ids numerically and everything else lexically.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// SortByID sorts tasks in place by CompareIDs.
func SortByID(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return CompareIDs(tasks[i].ID, tasks[j].ID) < 0
	})
}

// Index maps task ids to their position in tasks.
func Index(tasks []Task) map[string]int {
	out := make(map[string]int, len(tasks))
	for i, t := range tasks {
		out[t.ID] = i
	}
	return out
}

// Find returns the task with id, if present.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
