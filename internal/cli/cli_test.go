package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func writeTaskJSON(t *testing.T, dir, list, id, body string) {
	t.Helper()
	path := filepath.Join(dir, list, id+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func taskJSON(id, subject, status string, extra string) string {
	s := `{"id":"` + id + `","subject":"` + subject + `","description":"","activeForm":"","status":"` + status + `"`
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

func seedTasksDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTaskJSON(t, dir, "L", "1", taskJSON("1", "Write parser", "completed", `"blocks":["2"]`))
	writeTaskJSON(t, dir, "L", "2", taskJSON("2", "Design schema", "pending", `"blockedBy":["1"],"blocks":["3"]`))
	writeTaskJSON(t, dir, "L", "3", taskJSON("3", "Ship release", "pending", `"blockedBy":["2"]`))
	writeTaskJSON(t, dir, "C", "a", taskJSON("a", "A", "pending", `"blockedBy":["b"]`))
	writeTaskJSON(t, dir, "C", "b", taskJSON("b", "B", "pending", `"blockedBy":["a"]`))
	return dir
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta map[string]any  `json:"meta"`
}

func decodeEnvelope(t *testing.T, b []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return env
}

func taskIDs(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var ts []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &ts); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	out := make([]string, 0, len(ts))
	for _, x := range ts {
		out = append(out, x.ID+"="+x.Status)
	}
	return out
}

func TestCLI_Tasks(t *testing.T) {
	dir := seedTasksDir(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all", []string{"tasks"}, []string{"1=completed", "2=pending", "3=blocked"}},
		{"blocked", []string{"tasks", "--status", "blocked"}, []string{"3=blocked"}},
		{"search", []string{"tasks", "--search", "SCHEMA"}, []string{"2=pending"}},
		{"sort desc", []string{"tasks", "--sort", "subject", "--desc"}, []string{"1=completed", "3=blocked", "2=pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := runCLI(t, append([]string{"--tasks-dir", dir, "--list", "L"}, tt.args...))
			if err != nil {
				t.Fatalf("err=%v stderr=%s", err, errOut)
			}
			if got := taskIDs(t, decodeEnvelope(t, out).Data); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}

	if _, _, err := runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "tasks", "--status", "done"}); err == nil {
		t.Fatalf("expected invalid status to fail")
	}
}

func TestCLI_TasksShow(t *testing.T) {
	dir := seedTasksDir(t)

	out, errOut, err := runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "tasks", "show", "2"})
	if err != nil {
		t.Fatalf("err=%v stderr=%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	if !strings.Contains(string(env.Data), `"id":"2"`) {
		t.Fatalf("data=%s", env.Data)
	}
	blocks, _ := env.Meta["blocks"].([]any)
	blockedBy, _ := env.Meta["blockedBy"].([]any)
	if len(blocks) != 1 || len(blockedBy) != 1 {
		t.Fatalf("meta=%v", env.Meta)
	}

	_, errOut, err = runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "tasks", "show", "9"})
	if err == nil || !strings.Contains(string(errOut), "task not found: 9") {
		t.Fatalf("expected not found; err=%v stderr=%s", err, errOut)
	}
}

func TestCLI_Lists(t *testing.T) {
	dir := seedTasksDir(t)

	out, errOut, err := runCLI(t, []string{"--tasks-dir", dir, "lists"})
	if err != nil {
		t.Fatalf("err=%v stderr=%s", err, errOut)
	}
	env := decodeEnvelope(t, out)
	var lists []struct {
		ID         string `json:"id"`
		TasksCount int    `json:"tasksCount"`
	}
	if err := json.Unmarshal(env.Data, &lists); err != nil {
		t.Fatalf("decode: %v", err)
	}
	counts := map[string]int{}
	for _, l := range lists {
		counts[l.ID] = l.TasksCount
	}
	if !reflect.DeepEqual(counts, map[string]int{"L": 3, "C": 2}) {
		t.Fatalf("counts=%v", counts)
	}

	out, _, err = runCLI(t, []string{"--tasks-dir", filepath.Join(dir, "missing"), "lists"})
	if err != nil || !strings.Contains(string(out), `"data":[]`) {
		t.Fatalf("missing dir: err=%v out=%s", err, out)
	}
}

func TestCLI_Deps(t *testing.T) {
	dir := seedTasksDir(t)

	out, errOut, err := runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "deps", "tree", "3"})
	if err != nil {
		t.Fatalf("err=%v stderr=%s", err, errOut)
	}
	var tree struct {
		Data struct {
			ID        string `json:"id"`
			BlockedBy []struct {
				ID        string `json:"id"`
				BlockedBy []struct {
					ID string `json:"id"`
				} `json:"blockedBy"`
			} `json:"blockedBy"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out, &tree); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tree.Data.ID != "3" || len(tree.Data.BlockedBy) != 1 || tree.Data.BlockedBy[0].ID != "2" ||
		len(tree.Data.BlockedBy[0].BlockedBy) != 1 || tree.Data.BlockedBy[0].BlockedBy[0].ID != "1" {
		t.Fatalf("tree=%s", out)
	}

	out, _, err = runCLI(t, []string{"--tasks-dir", dir, "--list", "C", "deps", "cycles"})
	if err != nil {
		t.Fatalf("cycles: %v", err)
	}
	var cycles struct {
		Data [][]string `json:"data"`
	}
	if err := json.Unmarshal(out, &cycles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(cycles.Data, [][]string{{"a", "b", "a"}}) {
		t.Fatalf("cycles=%v", cycles.Data)
	}

	out, _, _ = runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "deps", "cycles"})
	if !strings.Contains(string(out), `"data":[]`) {
		t.Fatalf("acyclic list: %s", out)
	}
}

func TestCLI_Formats(t *testing.T) {
	dir := seedTasksDir(t)

	out, _, err := runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "--format", "yaml", "tasks", "--status", "blocked"})
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if s := string(out); !strings.Contains(s, "data:\n") || !strings.Contains(s, `id: "3"`) {
		t.Fatalf("yaml output:\n%s", s)
	}

	out, _, err = runCLI(t, []string{"--tasks-dir", dir, "--list", "L", "--format", "yml", "tasks", "--status", "blocked"})
	if err != nil || !strings.Contains(string(out), `id: "3"`) {
		t.Fatalf("yml: err=%v out=%s", err, out)
	}

	for _, f := range []string{"xml", "edn"} {
		_, errOut, err := runCLI(t, []string{"--tasks-dir", dir, "--format", f, "lists"})
		if err == nil || !strings.Contains(string(errOut), "unknown format") {
			t.Fatalf("%s: expected unknown format; err=%v stderr=%s", f, err, errOut)
		}
	}
}

func TestCLI_Settings(t *testing.T) {
	t.Setenv("HUBA_CONFIG_DIR", t.TempDir())

	if _, errOut, err := runCLI(t, []string{"settings", "set", "layout", "vertical"}); err != nil {
		t.Fatalf("set: %v %s", err, errOut)
	}
	if _, _, err := runCLI(t, []string{"settings", "set", "layout", "sideways"}); err == nil {
		t.Fatalf("expected invalid layout to fail")
	}

	out, _, err := runCLI(t, []string{"settings"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var got struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Data["layout"] != "vertical" || got.Data["theme"] != "claude" {
		t.Fatalf("settings=%v", got.Data)
	}

	if _, _, err := runCLI(t, []string{"settings", "reset"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, _, _ = runCLI(t, []string{"settings"})
	if !strings.Contains(string(out), `"layout":"horizontal"`) {
		t.Fatalf("after reset: %s", out)
	}
}

func TestCLI_Themes(t *testing.T) {
	cfg := t.TempDir()
	t.Setenv("HUBA_CONFIG_DIR", cfg)

	out, _, err := runCLI(t, []string{"themes"})
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	var got struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"catppuccin", "claude", "contrast", "github", "grayed"}
	if !reflect.DeepEqual(got.Data, want) {
		t.Fatalf("themes=%v", got.Data)
	}
}

func TestCLI_Docs(t *testing.T) {
	out, _, err := runCLI(t, []string{"docs"})
	if err != nil || !strings.Contains(string(out), `"keys"`) {
		t.Fatalf("docs: err=%v out=%s", err, out)
	}
	out, _, err = runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil || !strings.HasPrefix(string(out), "# Keys") {
		t.Fatalf("docs keys: err=%v out=%s", err, out)
	}
	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
}

func TestCommandNames(t *testing.T) {
	t.Parallel()

	names := CommandNames()
	for _, n := range []string{"tui", "lists", "tasks", "deps", "settings", "themes", "docs", "help"} {
		if !names[n] {
			t.Fatalf("missing %q in %v", n, names)
		}
	}
	if names["5f1c9a"] {
		t.Fatalf("list ids must not be command names")
	}
}
