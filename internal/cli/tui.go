package cli

import (
	"context"

	"github.com/spf13/cobra"

	"huba-cli/internal/store"
	"huba-cli/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [list-id]",
		Short: "Open the interactive task browser",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID := ""
			if len(args) == 1 {
				listID = args[0]
			}
			return runTUI(cmd, app, listID)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, listID string) error {
	logger, closer, err := debugLogger()
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer.Close()
	app.logger = logger

	s, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if listID == "" {
		listID = app.ListID
	}

	// Settings are optional; the TUI still runs on defaults without them.
	db, err := store.OpenDefaultSettings(context.Background())
	if err != nil {
		logger.Warn("open settings", "err", err)
		db = nil
	} else {
		defer db.Close()
	}
	themesDir, err := store.ThemesDir()
	if err != nil {
		logger.Warn("themes dir", "err", err)
	}

	logger.Debug("starting tui", "tasksDir", s.TasksDir, "list", listID)
	return tui.Run(tui.Options{
		Store:     s,
		ListID:    listID,
		Settings:  db,
		ThemesDir: themesDir,
		Logger:    logger,
	})
}
