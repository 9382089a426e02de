package cli

import (
	"github.com/spf13/cobra"

	"huba-cli/internal/store"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the saved TUI preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenDefaultSettings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			st, err := db.Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st.Values()})
		},
	}
	cmd.AddCommand(newSettingsSetCmd(app))
	cmd.AddCommand(newSettingsResetCmd(app))
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: store.SettingKeys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenDefaultSettings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			if err := db.Set(cmd.Context(), args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			v, _, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{args[0]: v}})
		},
	}
}

func newSettingsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget every saved preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenDefaultSettings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			if err := db.Reset(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": store.DefaultSettings().Values()})
		},
	}
}
