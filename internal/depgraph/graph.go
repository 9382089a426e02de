package depgraph

import (
	"sort"
	"strings"

	"huba-cli/internal/task"
)

// Graph is the blockedBy adjacency of a task list, restricted to present ids.
type Graph map[string][]string

func BuildGraph(tasks []task.Task) Graph {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	g := Graph{}
	for _, t := range tasks {
		for _, dep := range t.BlockedBy {
			if present[dep] {
				g[t.ID] = append(g[t.ID], dep)
			}
		}
	}
	return g
}

func (g Graph) nodes() []string {
	out := make([]string, 0, len(g))
	for n := range g {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return task.CompareIDs(out[i], out[j]) < 0 })
	return out
}

// FindCycles returns each distinct blockedBy cycle once, as a closed path
// (first id repeated at the end). Traversal order is by task id.
func FindCycles(tasks []task.Task) [][]string {
	graph := BuildGraph(tasks)

	visited := map[string]bool{}
	onStack := map[string]bool{}
	var stack []string
	var cycles [][]string
	seenCycleKey := map[string]bool{}

	var dfs func(n string)
	dfs = func(n string) {
		visited[n] = true
		onStack[n] = true
		stack = append(stack, n)

		for _, m := range graph[n] {
			if !visited[m] {
				dfs(m)
				continue
			}
			if !onStack[m] {
				continue
			}
			var cycle []string
			for i := len(stack) - 1; i >= 0; i-- {
				cycle = append([]string{stack[i]}, cycle...)
				if stack[i] == m {
					break
				}
			}
			cycle = append(cycle, m)
			key := strings.Join(cycle, "->")
			if !seenCycleKey[key] {
				seenCycleKey[key] = true
				cycles = append(cycles, cycle)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[n] = false
	}

	for _, n := range graph.nodes() {
		if !visited[n] {
			dfs(n)
		}
	}
	return cycles
}

// Node is one level of a blockedBy tree.
type Node struct {
	ID        string      `json:"id"`
	Subject   string      `json:"subject,omitempty"`
	Status    task.Status `json:"status,omitempty"`
	Missing   bool        `json:"missing,omitempty"`
	BlockedBy []Node      `json:"blockedBy,omitempty"`
}

// BlockerTree expands the blockedBy edges below rootID. Tasks already
// expanded elsewhere in the tree appear again as leaves. Dangling ids are
// kept and flagged as missing.
func BlockerTree(tasks []task.Task, rootID string) (Node, bool) {
	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	if _, ok := byID[rootID]; !ok {
		return Node{}, false
	}

	seen := map[string]bool{}
	var build func(id string) Node
	build = func(id string) Node {
		t, ok := byID[id]
		if !ok {
			return Node{ID: id, Missing: true}
		}
		node := Node{ID: id, Subject: t.Subject, Status: t.Status}
		if seen[id] {
			return node
		}
		seen[id] = true
		for _, dep := range t.BlockedBy {
			node.BlockedBy = append(node.BlockedBy, build(dep))
		}
		return node
	}
	return build(rootID), true
}

// BlockedBy returns the present tasks listed in t.BlockedBy, in edge order.
func BlockedBy(tasks []task.Task, t task.Task) []task.Task {
	return neighbours(tasks, t.BlockedBy)
}

// Blocks returns the present tasks listed in t.Blocks, in edge order.
func Blocks(tasks []task.Task, t task.Task) []task.Task {
	return neighbours(tasks, t.Blocks)
}

func neighbours(tasks []task.Task, ids []string) []task.Task {
	if len(ids) == 0 {
		return nil
	}
	idx := task.Index(tasks)
	out := make([]task.Task, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		i, ok := idx[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, tasks[i])
	}
	return out
}
