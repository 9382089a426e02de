package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"huba-cli/internal/depgraph"
	"huba-cli/internal/task"
)

var ErrInvalidTask = errors.New("invalid task file")

// taskFile mirrors the on-disk JSON. Pointers distinguish missing fields
// from empty ones.
type taskFile struct {
	ID          *string        `json:"id"`
	Subject     *string        `json:"subject"`
	Description *string        `json:"description"`
	ActiveForm  *string        `json:"activeForm"`
	Status      string         `json:"status"`
	Owner       string         `json:"owner"`
	Blocks      []string       `json:"blocks"`
	BlockedBy   []string       `json:"blockedBy"`
	Metadata    map[string]any `json:"metadata"`
}

func decodeTask(b []byte) (task.Task, error) {
	var f taskFile
	if err := json.Unmarshal(b, &f); err != nil {
		return task.Task{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	var missing []string
	for name, v := range map[string]*string{
		"id":          f.ID,
		"subject":     f.Subject,
		"description": f.Description,
		"activeForm":  f.ActiveForm,
	} {
		if v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return task.Task{}, fmt.Errorf("%w: missing %s", ErrInvalidTask, strings.Join(missing, ", "))
	}
	st, err := task.ParseStatus(f.Status)
	if err != nil {
		return task.Task{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	return task.Task{
		ID:          *f.ID,
		Subject:     *f.Subject,
		Description: *f.Description,
		ActiveForm:  *f.ActiveForm,
		Status:      st,
		Owner:       f.Owner,
		Blocks:      f.Blocks,
		BlockedBy:   f.BlockedBy,
		Metadata:    f.Metadata,
	}, nil
}

// LoadTask reads one task file with its raw (unresolved) status.
func (s Store) LoadTask(ctx context.Context, listID, taskID string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	path := s.taskPath(listID, taskID)
	st, err := os.Stat(path)
	if err != nil {
		return task.Task{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return task.Task{}, err
	}
	t, err := decodeTask(b)
	if err != nil {
		return task.Task{}, fmt.Errorf("%s: %w", path, err)
	}
	t.UpdatedAt = st.ModTime()
	return t, nil
}

// Snapshot is one consistent read of a task list.
type Snapshot struct {
	ListID string
	// Tasks carry effective statuses and are ordered by id.
	Tasks       []task.Task
	Index       map[string]int
	Fingerprint Fingerprint
}

func (s Snapshot) Find(id string) (task.Task, bool) {
	i, ok := s.Index[id]
	if !ok {
		return task.Task{}, false
	}
	return s.Tasks[i], true
}

// LoadTasks reads every task file of a list, skipping unreadable or invalid
// ones, resolves blocked statuses and sorts by id. A missing list directory
// yields an empty snapshot.
func (s Store) LoadTasks(ctx context.Context, listID string) (Snapshot, error) {
	snap := Snapshot{ListID: listID, Index: map[string]int{}}
	if !validListID(listID) {
		return snap, fmt.Errorf("invalid list id: %q", listID)
	}
	snap.Fingerprint = s.Fingerprint(listID)

	entries, err := os.ReadDir(s.ListDir(listID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return snap, err
	}

	raw := make([]task.Task, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		t, err := s.LoadTask(ctx, listID, strings.TrimSuffix(name, ".json"))
		if err != nil {
			s.logger().Debug("skipping task file", "list", listID, "file", name, "err", err)
			continue
		}
		raw = append(raw, t)
	}

	tasks := depgraph.Resolve(raw)
	task.SortByID(tasks)
	snap.Tasks = tasks
	snap.Index = task.Index(tasks)
	return snap, nil
}
