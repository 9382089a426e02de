package task

import (
	"reflect"
	"testing"
	"time"
)

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestCompareIDs_NumericThenLexical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"a", "b", -1},
		{"10", "a", -1},
		{"b", "10", 1},
	}
	for _, tt := range tests {
		if got := CompareIDs(tt.a, tt.b); got != tt.want {
			t.Fatalf("CompareIDs(%q,%q)=%d want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSortByID(t *testing.T) {
	t.Parallel()

	tasks := []Task{{ID: "10"}, {ID: "2"}, {ID: "x"}, {ID: "1"}}
	SortByID(tasks)
	if got, want := ids(tasks), []string{"1", "2", "10", "x"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseStatus_RejectsBlocked(t *testing.T) {
	t.Parallel()

	if _, err := ParseStatus("blocked"); err == nil {
		t.Fatalf("expected blocked to be rejected as a persisted status")
	}
	if s, err := ParseStatus(" in_progress "); err != nil || s != StatusInProgress {
		t.Fatalf("ParseStatus(in_progress)=%q,%v", s, err)
	}
}

func TestFilter_StatusAndSearch(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "1", Subject: "Write parser", Status: StatusPending},
		{ID: "2", Subject: "Docs", Description: "Explain the PARSER flags", Status: StatusCompleted},
		{ID: "3", Subject: "Release", Status: StatusBlocked},
	}

	got := Filter{Status: FilterAll, Search: "parser"}.Apply(tasks)
	if want := []string{"1", "2"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("search: got %v want %v", ids(got), want)
	}

	got = Filter{Status: string(StatusBlocked)}.Apply(tasks)
	if want := []string{"3"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("status: got %v want %v", ids(got), want)
	}

	got = Filter{Status: string(StatusPending), Search: "docs"}.Apply(tasks)
	if len(got) != 0 {
		t.Fatalf("expected no match, got %v", ids(got))
	}
}

func TestNextFilterStatus_Cycles(t *testing.T) {
	t.Parallel()

	cur := FilterAll
	var seen []string
	for i := 0; i < 5; i++ {
		cur = NextFilterStatus(cur)
		seen = append(seen, cur)
	}
	want := []string{"pending", "in_progress", "blocked", "completed", "all"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("got %v want %v", seen, want)
	}
}

func TestSort_StatusOrderTiesByID(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "4", Status: StatusCompleted},
		{ID: "3", Status: StatusPending},
		{ID: "10", Status: StatusInProgress},
		{ID: "2", Status: StatusInProgress},
		{ID: "1", Status: StatusBlocked},
	}
	got := Sort{Field: SortFieldStatus}.Apply(tasks)
	if want := []string{"2", "10", "3", "1", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("asc: got %v want %v", ids(got), want)
	}

	got = Sort{Field: SortFieldStatus, Desc: true}.Apply(tasks)
	if want := []string{"4", "1", "3", "10", "2"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("desc: got %v want %v", ids(got), want)
	}
	if tasks[0].ID != "4" {
		t.Fatalf("Apply must not reorder its input")
	}
}

func TestSort_UpdatedAtAndToggle(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "1", UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "2", UpdatedAt: base},
		{ID: "3", UpdatedAt: base.Add(time.Hour)},
	}
	s := Sort{Field: SortFieldID}.Toggle(SortFieldUpdatedAt)
	if s.Desc {
		t.Fatalf("switching field should sort ascending")
	}
	if got, want := ids(s.Apply(tasks)), []string{"2", "3", "1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	s = s.Toggle(SortFieldUpdatedAt)
	if !s.Desc || s.Label() != "UPDATED ↓" {
		t.Fatalf("toggle same field: got %#v label %q", s, s.Label())
	}
}

func TestComputeProgress(t *testing.T) {
	t.Parallel()

	p := ComputeProgress([]Task{
		{Status: StatusCompleted},
		{Status: StatusCompleted},
		{Status: StatusPending},
		{Status: StatusBlocked},
		{Status: StatusInProgress},
		{Status: StatusCompleted},
	})
	want := Progress{Pending: 1, InProgress: 1, Blocked: 1, Completed: 3, Total: 6, Percent: 50}
	if p != want {
		t.Fatalf("got %#v want %#v", p, want)
	}
	if ComputeProgress(nil).Percent != 0 {
		t.Fatalf("empty progress should be 0%%")
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.Local)
	cases := []struct {
		ago   time.Duration
		long  string
		short string
	}{
		{ago: 10 * time.Second, long: "now", short: "now"},
		{ago: -time.Hour, long: "now", short: "now"},
		{ago: time.Minute, long: "1 min", short: "1m"},
		{ago: 59 * time.Minute, long: "59 mins", short: "59m"},
		{ago: 61 * time.Minute, long: "1 hour", short: "1h"},
		{ago: 5 * time.Hour, long: "5 hours", short: "5h"},
		{ago: 24 * time.Hour, long: "1 day", short: "1d"},
		{ago: 6*24*time.Hour + 23*time.Hour, long: "6 days", short: "6d"},
		{ago: 7 * 24 * time.Hour, long: "Mar 13", short: "Mar 13"},
	}
	for _, tc := range cases {
		at := now.Add(-tc.ago)
		if got := FormatAge(at, now); got != tc.long {
			t.Errorf("FormatAge(-%s)=%q want %q", tc.ago, got, tc.long)
		}
		if got := FormatAgeShort(at, now); got != tc.short {
			t.Errorf("FormatAgeShort(-%s)=%q want %q", tc.ago, got, tc.short)
		}
	}
}
