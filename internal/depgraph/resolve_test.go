package depgraph

import (
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"huba-cli/internal/task"
)

func statuses(tasks []task.Task) map[string]task.Status {
	out := map[string]task.Status{}
	for _, t := range tasks {
		out[t.ID] = t.Status
	}
	return out
}

func pending(id string, blockedBy ...string) task.Task {
	return task.Task{ID: id, Subject: "task " + id, Status: task.StatusPending, BlockedBy: blockedBy}
}

func TestResolve_FourTaskScenario(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		{ID: "1", Status: task.StatusCompleted},
		pending("2", "1"),
		pending("3", "2"),
		pending("4", "4"),
	}
	got := statuses(Resolve(tasks))
	want := map[string]task.Status{
		"1": task.StatusCompleted,
		"2": task.StatusPending,
		"3": task.StatusBlocked,
		"4": task.StatusBlocked,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestResolve_ChainOverCompletedRootStaysPending(t *testing.T) {
	t.Parallel()

	got := statuses(Resolve([]task.Task{
		pending("A", "B"),
		pending("B", "C"),
		{ID: "C", Status: task.StatusCompleted},
	}))
	if got["A"] != task.StatusPending || got["B"] != task.StatusPending {
		t.Fatalf("expected A and B pending; got %v", got)
	}
}

func TestResolve_NonPendingNeverOverridden(t *testing.T) {
	t.Parallel()

	got := statuses(Resolve([]task.Task{
		{ID: "1", Status: task.StatusInProgress, BlockedBy: []string{"2"}},
		{ID: "2", Status: task.StatusCompleted, BlockedBy: []string{"3"}},
		pending("3"),
	}))
	if got["1"] != task.StatusInProgress || got["2"] != task.StatusCompleted {
		t.Fatalf("raw non-pending statuses must be kept; got %v", got)
	}
}

func TestResolve_DisjointCyclesAllBlocked(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		pending("1", "2"),
		pending("2", "1"),
		pending("3", "4"),
		pending("4", "5"),
		pending("5", "3"),
		pending("6", "1"),
		pending("7"),
	}
	got := statuses(Resolve(tasks))
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		if got[id] != task.StatusBlocked {
			t.Fatalf("task %s: got %s want blocked (all: %v)", id, got[id], got)
		}
	}
	if got["7"] != task.StatusPending {
		t.Fatalf("task 7: got %s want pending", got["7"])
	}
}

func TestResolve_DanglingBlockersIgnored(t *testing.T) {
	t.Parallel()

	got := statuses(Resolve([]task.Task{
		pending("1", "missing"),
		pending("2", "missing", "1"),
	}))
	if got["1"] != task.StatusPending || got["2"] != task.StatusPending {
		t.Fatalf("dangling ids must not block; got %v", got)
	}
}

func TestResolve_KeepsOrderAndUnchangedValues(t *testing.T) {
	t.Parallel()

	in := []task.Task{
		pending("3", "1"),
		{ID: "1", Status: task.StatusInProgress},
		pending("2", "3"),
	}
	out := Resolve(in)
	if len(out) != len(in) {
		t.Fatalf("len: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Fatalf("order changed at %d: %s vs %s", i, out[i].ID, in[i].ID)
		}
	}
	if in[0].Status != task.StatusPending {
		t.Fatalf("Resolve must not mutate its input")
	}
	if out[0].Status != task.StatusBlocked {
		t.Fatalf("task 3: got %s want blocked", out[0].Status)
	}
	// Edge slices are shared rather than deep-copied.
	if &out[2].BlockedBy[0] != &in[2].BlockedBy[0] {
		t.Fatalf("expected blockedBy backing array to be shared")
	}
}

func TestResolver_FanInComputesEachTaskOnce(t *testing.T) {
	t.Parallel()

	const n = 200
	tasks := []task.Task{pending("root")}
	for i := 0; i < n; i++ {
		// Every task waits on the shared root plus its predecessor.
		prev := "root"
		if i > 0 {
			prev = strconv.Itoa(i - 1)
		}
		tasks = append(tasks, pending(strconv.Itoa(i), "root", prev))
	}

	r := NewResolver(tasks)
	for _, tk := range tasks {
		r.Status(tk.ID)
	}
	if got := r.Computations(); got != len(tasks) {
		t.Fatalf("computations: got %d want %d", got, len(tasks))
	}
	if r.Status("150") != task.StatusPending {
		t.Fatalf("expected pending chain over a pending root with no blockers")
	}

	self := NewResolver([]task.Task{pending("a", "a")})
	if self.Status("a") != task.StatusBlocked {
		t.Fatalf("self-blocked task should resolve to blocked")
	}
	if got := self.Computations(); got != 1 {
		t.Fatalf("self cycle computations: got %d want 1", got)
	}

	ring := NewResolver([]task.Task{pending("a", "b"), pending("b", "c"), pending("c", "a")})
	for _, id := range []string{"a", "b", "c", "a"} {
		if ring.Status(id) != task.StatusBlocked {
			t.Fatalf("%s on a cycle should resolve to blocked", id)
		}
	}
	if got := ring.Computations(); got != 3 {
		t.Fatalf("cycle computations: got %d want 3", got)
	}
}

func randomTasks(rng *rand.Rand, n int) []task.Task {
	statusesPool := []task.Status{task.StatusPending, task.StatusPending, task.StatusInProgress, task.StatusCompleted}
	tasks := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		t := task.Task{ID: strconv.Itoa(i), Status: statusesPool[rng.Intn(len(statusesPool))]}
		for e := rng.Intn(3); e > 0; e-- {
			// Allow ids past the end so some edges dangle.
			t.BlockedBy = append(t.BlockedBy, strconv.Itoa(rng.Intn(n+3)))
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		tasks := randomTasks(rng, 1+rng.Intn(12))
		once := Resolve(tasks)
		twice := Resolve(once)
		if !reflect.DeepEqual(statuses(once), statuses(twice)) {
			t.Fatalf("round %d: not idempotent\nonce:  %v\ntwice: %v", round, statuses(once), statuses(twice))
		}
	}
}

func TestResolve_CyclesAreBlocked(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 200; round++ {
		tasks := randomTasks(rng, 1+rng.Intn(12))
		got := statuses(Resolve(tasks))
		raw := statuses(tasks)
		for _, cycle := range FindCycles(tasks) {
			// Resolution stops at non-pending tasks, so only all-pending cycles count.
			allPending := true
			for _, id := range cycle {
				allPending = allPending && raw[id] == task.StatusPending
			}
			if !allPending {
				continue
			}
			for _, id := range cycle {
				if got[id] != task.StatusBlocked {
					t.Fatalf("round %d: pending task %s on cycle %v resolved to %s", round, id, cycle, got[id])
				}
			}
		}
	}
}

func TestResolve_RemovingTaskNeverBlocksOthers(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(23))
	for round := 0; round < 100; round++ {
		tasks := randomTasks(rng, 2+rng.Intn(10))
		before := statuses(Resolve(tasks))
		for drop := range tasks {
			rest := make([]task.Task, 0, len(tasks)-1)
			rest = append(rest, tasks[:drop]...)
			rest = append(rest, tasks[drop+1:]...)
			after := statuses(Resolve(rest))
			for id, st := range after {
				if st == task.StatusBlocked && before[id] != task.StatusBlocked {
					t.Fatalf("round %d: removing %s blocked %s", round, tasks[drop].ID, id)
				}
			}
		}
	}
}
