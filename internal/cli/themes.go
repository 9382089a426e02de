package cli

import (
	"github.com/spf13/cobra"

	"huba-cli/internal/tui"
)

func newThemesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := tui.AvailableThemes()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names})
		},
	}
}
