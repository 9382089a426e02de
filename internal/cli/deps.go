package cli

import (
	"github.com/spf13/cobra"

	"huba-cli/internal/depgraph"
)

func newDepsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Dependency commands",
	}
	cmd.AddCommand(newDepsTreeCmd(app))
	cmd.AddCommand(newDepsCyclesCmd(app))
	return cmd
}

func newDepsTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <task-id>",
		Short: "Show the blockedBy tree below a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			root, ok := depgraph.BlockerTree(snap.Tasks, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": root})
		},
	}
}

func newDepsCyclesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "List blockedBy cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cycles := depgraph.FindCycles(snap.Tasks)
			if cycles == nil {
				cycles = [][]string{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": cycles,
				"meta": map[string]any{"list": snap.ListID, "count": len(cycles)},
			})
		},
	}
}
