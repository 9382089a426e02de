package store

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"

	"huba-cli/internal/task"
)

// ListTaskLists returns every list directory with its task count, newest first.
// CreatedAt is the directory's modification time since creation time is not
// portable.
func (s Store) ListTaskLists(ctx context.Context) ([]task.List, error) {
	entries, err := os.ReadDir(s.TasksDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []task.List{}, nil
		}
		return nil, err
	}

	lists := make([]task.List, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := s.ListDir(e.Name())
		st, err := os.Stat(dir)
		if err != nil {
			s.logger().Debug("skipping task list", "list", e.Name(), "err", err)
			continue
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			s.logger().Debug("skipping task list", "list", e.Name(), "err", err)
			continue
		}
		count := 0
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".json") {
				count++
			}
		}
		lists = append(lists, task.List{
			ID:         e.Name(),
			Path:       dir,
			CreatedAt:  st.ModTime(),
			TasksCount: count,
		})
	}

	sort.SliceStable(lists, func(i, j int) bool {
		if !lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].CreatedAt.After(lists[j].CreatedAt)
		}
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}

// LatestListID returns the newest list, if any.
func (s Store) LatestListID(ctx context.Context) (string, bool) {
	lists, err := s.ListTaskLists(ctx)
	if err != nil || len(lists) == 0 {
		return "", false
	}
	return lists[0].ID, true
}
