package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"huba-cli/internal/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeTask(t *testing.T, dir, list, id, status string, blockedBy string) {
	t.Helper()
	body := `{"id":"` + id + `","subject":"Task ` + id + `","description":"desc ` + id + `","activeForm":"Doing ` + id + `","status":"` + status + `"`
	if blockedBy != "" {
		body += `,"blockedBy":[` + blockedBy + `]`
	}
	body += `}`
	writeFile(t, filepath.Join(dir, list, id+".json"), body)
}

func TestLoadTasks_ResolvesSortsAndSkipsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTask(t, dir, "L", "10", "pending", `"2"`)
	writeTask(t, dir, "L", "2", "in_progress", "")
	writeTask(t, dir, "L", "1", "completed", "")
	writeTask(t, dir, "L", "3", "pending", `"1","gone"`)
	writeFile(t, filepath.Join(dir, "L", "bad.json"), `{"id":"bad","subject":"x"}`)
	writeFile(t, filepath.Join(dir, "L", "broken.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "L", "blocked.json"), `{"id":"b","subject":"s","description":"","activeForm":"","status":"blocked"}`)
	writeFile(t, filepath.Join(dir, "L", "notes.txt"), `ignored`)

	s := Store{TasksDir: dir}
	snap, err := s.LoadTasks(context.Background(), "L")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}

	var got []string
	for _, tk := range snap.Tasks {
		got = append(got, tk.ID+"="+string(tk.Status))
	}
	want := []string{"1=completed", "2=in_progress", "3=pending", "10=blocked"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	tk, ok := snap.Find("3")
	if !ok || tk.Subject != "Task 3" || tk.ActiveForm != "Doing 3" || tk.UpdatedAt.IsZero() {
		t.Fatalf("Find(3): %#v ok=%v", tk, ok)
	}
	if !snap.Fingerprint.Exists || snap.Fingerprint.Entries != 7 {
		t.Fatalf("fingerprint: %#v", snap.Fingerprint)
	}
}

func TestLoadTasks_MissingListIsEmpty(t *testing.T) {
	t.Parallel()

	s := Store{TasksDir: t.TempDir()}
	snap, err := s.LoadTasks(context.Background(), "nope")
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(snap.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(snap.Tasks))
	}
	if _, err := s.LoadTasks(context.Background(), "../etc"); err == nil {
		t.Fatalf("expected path-escaping list id to be rejected")
	}
}

func TestLoadTask_UsesFileModTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTask(t, dir, "L", "1", "pending", "")
	mt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(dir, "L", "1.json"), mt, mt); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	tk, err := Store{TasksDir: dir}.LoadTask(context.Background(), "L", "1")
	if err != nil {
		t.Fatalf("LoadTask: %v", err)
	}
	if !tk.UpdatedAt.Equal(mt) {
		t.Fatalf("UpdatedAt=%v want %v", tk.UpdatedAt, mt)
	}
	if tk.Status != task.StatusPending {
		t.Fatalf("LoadTask returns the raw status; got %s", tk.Status)
	}

	writeFile(t, filepath.Join(dir, "L", "2.json"), `{"id":"2","status":"pending"}`)
	if _, err := (Store{TasksDir: dir}).LoadTask(context.Background(), "L", "2"); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got %v", err)
	}
}

func TestListTaskLists_NewestFirstWithCounts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTask(t, dir, "old", "1", "pending", "")
	writeTask(t, dir, "new", "1", "pending", "")
	writeTask(t, dir, "new", "2", "completed", "")
	writeFile(t, filepath.Join(dir, "new", "README.md"), "x")
	writeFile(t, filepath.Join(dir, "stray.json"), "{}")

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	s := Store{TasksDir: dir}
	lists, err := s.ListTaskLists(context.Background())
	if err != nil {
		t.Fatalf("ListTaskLists: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %#v", lists)
	}
	if lists[0].ID != "new" || lists[0].TasksCount != 2 || lists[1].ID != "old" || lists[1].TasksCount != 1 {
		t.Fatalf("unexpected lists: %#v", lists)
	}
	if id, ok := s.LatestListID(context.Background()); !ok || id != "new" {
		t.Fatalf("LatestListID=%q,%v", id, ok)
	}

	missing := Store{TasksDir: filepath.Join(dir, "nope")}
	if lists, err := missing.ListTaskLists(context.Background()); err != nil || len(lists) != 0 {
		t.Fatalf("missing base dir: %v %#v", err, lists)
	}
}

func TestFingerprint_ChangesWhenTasksChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{TasksDir: dir}
	if fp := s.Fingerprint("L"); fp.Exists {
		t.Fatalf("missing dir should not exist: %#v", fp)
	}

	writeTask(t, dir, "L", "1", "pending", "")
	before := s.Fingerprint("L")
	if !before.Equal(s.Fingerprint("L")) {
		t.Fatalf("fingerprint should be stable without changes")
	}

	writeFile(t, filepath.Join(dir, "L", "1.json"), `{"id":"1","subject":"renamed and longer","description":"","activeForm":"","status":"completed"}`)
	if before.Equal(s.Fingerprint("L")) {
		t.Fatalf("rewriting a task should change the fingerprint")
	}

	lists := s.ListsFingerprint()
	writeTask(t, dir, "M", "1", "pending", "")
	if lists.Equal(s.ListsFingerprint()) {
		t.Fatalf("adding a list should change the lists fingerprint")
	}
}

func TestDefaultListID(t *testing.T) {
	t.Setenv("CLAUDE_CODE_TASK_LIST_ID", "")
	if got := DefaultListID(); got != "default" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("CLAUDE_CODE_TASK_LIST_ID", "abc")
	if got := DefaultListID(); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
