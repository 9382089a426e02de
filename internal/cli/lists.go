package cli

import (
	"github.com/spf13/cobra"

	"huba-cli/internal/task"
)

func newListsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List task lists, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			lists, err := s.ListTaskLists(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if lists == nil {
				lists = []task.List{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": lists,
				"meta": map[string]any{"tasksDir": s.TasksDir, "count": len(lists)},
			})
		},
	}
}
