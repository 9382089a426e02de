package main

import (
	"os"
	"strings"

	"huba-cli/internal/cli"
)

func rewriteListShortcutArgs(argv []string, commands map[string]bool) []string {
	// Convenience: `huba <list-id>` works like `huba tui <list-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `huba --tasks-dir ... <list-id>`), so we look for
	// the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--tasks-dir": true,
		"--list":      true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertTUI := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "tui")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && !commands[argv[i+1]] {
				return insertTUI(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if commands[a] {
			return argv
		}
		return insertTUI(i)
	}

	return argv
}

func main() {
	os.Args = rewriteListShortcutArgs(os.Args, cli.CommandNames())

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
