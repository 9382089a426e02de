package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"huba-cli/internal/format"
	"huba-cli/internal/store"
)

type App struct {
	TasksDir   string
	ListID     string
	PrettyJSON bool
	Format     string

	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "huba",
		Short:        "Browse Claude Code task lists in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  huba

  # Open one list directly (shortcut for: huba tui <list-id>)
  huba 5f1c9a

  # Scriptable commands
  huba lists
  huba tasks --status blocked --format yaml
  huba deps tree 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := format.Normalize(app.Format); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.TasksDir, "tasks-dir", envOr("HUBA_TASKS_DIR", ""), "Directory holding task lists (default ~/.claude/tasks)")
	cmd.PersistentFlags().StringVar(&app.ListID, "list", envOr("CLAUDE_CODE_TASK_LIST_ID", ""), "Task list id")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("HUBA_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDepsCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newThemesCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// CommandNames lists the root's subcommands and their aliases. Any other
// first positional argument is taken as a list id.
func CommandNames() map[string]bool {
	out := map[string]bool{"help": true, "completion": true}
	for _, c := range NewRootCmd().Commands() {
		out[c.Name()] = true
		for _, a := range c.Aliases {
			out[a] = true
		}
	}
	return out
}

func openStore(app *App) (store.Store, error) {
	dir := app.TasksDir
	if dir == "" {
		d, err := store.DefaultTasksDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{TasksDir: dir, Logger: app.log()}, nil
}

// resolveListID picks --list, then the newest list, then the default id.
func resolveListID(ctx context.Context, app *App, s store.Store) string {
	if app.ListID != "" {
		return app.ListID
	}
	if id, ok := s.LatestListID(ctx); ok {
		return id
	}
	return store.DefaultListID()
}

func (app *App) log() *slog.Logger {
	if app.logger == nil {
		app.logger = slog.New(slog.DiscardHandler)
	}
	return app.logger
}

// debugLogger writes to HUBA_TUI_DEBUG_LOG when set. The returned closer
// must be called once the session ends.
func debugLogger() (*slog.Logger, io.Closer, error) {
	path := strings.TrimSpace(os.Getenv("HUBA_TUI_DEBUG_LOG"))
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
