package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const defaultListID = "default"

// Store reads task lists laid out as <TasksDir>/<list-id>/<task-id>.json.
type Store struct {
	TasksDir string

	// Logger receives diagnostics about skipped files. Nil discards them.
	Logger *slog.Logger
}

// DefaultTasksDir is ~/.claude/tasks unless HUBA_TASKS_DIR is set.
func DefaultTasksDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("HUBA_TASKS_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "tasks"), nil
}

// DefaultListID honors CLAUDE_CODE_TASK_LIST_ID and falls back to "default".
func DefaultListID() string {
	if v := strings.TrimSpace(os.Getenv("CLAUDE_CODE_TASK_LIST_ID")); v != "" {
		return v
	}
	return defaultListID
}

func (s Store) ListDir(listID string) string {
	return filepath.Join(s.TasksDir, listID)
}

func (s Store) taskPath(listID, taskID string) string {
	return filepath.Join(s.ListDir(listID), taskID+".json")
}

func (s Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// validListID rejects ids that would escape the tasks dir.
func validListID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
