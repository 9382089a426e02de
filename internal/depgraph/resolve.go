package depgraph

import "huba-cli/internal/task"

// Resolver computes effective task statuses from blockedBy edges.
//
// A pending task is blocked when any present blocker resolves to something
// other than completed, or when it sits on a blockedBy cycle. in_progress and
// completed tasks keep their status. Missing blocker ids never block.
type Resolver struct {
	byID     map[string]*task.Task
	resolved map[string]task.Status
	visiting map[string]bool

	computations int
}

func NewResolver(tasks []task.Task) *Resolver {
	r := &Resolver{
		byID:     make(map[string]*task.Task, len(tasks)),
		resolved: make(map[string]task.Status, len(tasks)),
		visiting: map[string]bool{},
	}
	for i := range tasks {
		r.byID[tasks[i].ID] = &tasks[i]
	}
	return r
}

// Computations reports how many statuses were computed (memo misses).
func (r *Resolver) Computations() int { return r.computations }

// Status returns the effective status of id.
func (r *Resolver) Status(id string) task.Status {
	if st, ok := r.resolved[id]; ok {
		return st
	}
	t, ok := r.byID[id]
	if !ok {
		return task.StatusCompleted
	}

	if t.Status != task.StatusPending {
		return r.memo(id, t.Status)
	}
	if len(t.BlockedBy) == 0 {
		return r.memo(id, task.StatusPending)
	}
	if r.visiting[id] {
		return r.memo(id, task.StatusBlocked)
	}

	r.visiting[id] = true
	st := task.StatusPending
	for _, dep := range t.BlockedBy {
		if _, ok := r.byID[dep]; !ok {
			continue
		}
		if r.Status(dep) != task.StatusCompleted {
			st = task.StatusBlocked
			break
		}
	}
	delete(r.visiting, id)

	// A cycle back through id may already have memoized it as blocked.
	if prev, ok := r.resolved[id]; ok {
		return prev
	}
	return r.memo(id, st)
}

func (r *Resolver) memo(id string, st task.Status) task.Status {
	r.computations++
	r.resolved[id] = st
	return st
}

// Resolve returns tasks with effective statuses, in input order.
// Tasks whose status is unchanged are returned as-is.
func Resolve(tasks []task.Task) []task.Task {
	r := NewResolver(tasks)
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
		if st := r.Status(t.ID); st != t.Status {
			out[i].Status = st
		}
	}
	return out
}
