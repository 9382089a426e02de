package cli

import (
	"github.com/spf13/cobra"

	"huba-cli/internal/depgraph"
	"huba-cli/internal/store"
	"huba-cli/internal/task"
)

func newTasksCmd(app *App) *cobra.Command {
	var status string
	var search string
	var sortField string
	var desc bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks with their effective (dependency-resolved) status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := task.ParseFilterStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			field, err := task.ParseSortField(sortField)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			filter := task.Filter{Status: st, Search: search}
			out := task.Sort{Field: field, Desc: desc}.Apply(filter.Apply(snap.Tasks))
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"list":     snap.ListID,
					"count":    len(out),
					"total":    len(snap.Tasks),
					"progress": task.ComputeProgress(snap.Tasks),
				},
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", task.FilterAll, "Filter by status (all|pending|in_progress|blocked|completed)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on subject and description")
	cmd.Flags().StringVar(&sortField, "sort", string(task.SortFieldID), "Sort field (id|subject|status|updatedAt)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	cmd.AddCommand(newTasksShowCmd(app))
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with the tasks it blocks and is blocked by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := snap.Find(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{
				"data": t,
				"meta": map[string]any{
					"list":      snap.ListID,
					"blocks":    nonNil(depgraph.Blocks(snap.Tasks, t)),
					"blockedBy": nonNil(depgraph.BlockedBy(snap.Tasks, t)),
				},
			})
		},
	}
}

func loadSnapshot(cmd *cobra.Command, app *App) (store.Snapshot, error) {
	s, err := openStore(app)
	if err != nil {
		return store.Snapshot{}, err
	}
	return s.LoadTasks(cmd.Context(), resolveListID(cmd.Context(), app, s))
}

func nonNil(ts []task.Task) []task.Task {
	if ts == nil {
		return []task.Task{}
	}
	return ts
}
