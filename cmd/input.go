package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

var errNoInput = errors.New("no input: pass a file, - for stdin, or --example")

// readInput returns the task text named by args: a file, "-" for stdin, or
// the built-in example. With no argument, piped stdin is read.
func readInput(cmd *cobra.Command, args []string, example bool) (string, error) {
	if example {
		return store.ExampleProgram, nil
	}
	if len(args) == 0 {
		if term.IsTerminal(os.Stdin.Fd()) {
			return "", errNoInput
		}
		args = []string{"-"}
	}
	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// loadBoard parses text into a fresh board and logs every parse issue.
func loadBoard(text string, mode schedule.ViewMode) *store.Board {
	b := store.NewBoard()
	b.SetViewMode(mode)
	b.SetRawText(text)
	res := b.ParseAndApply()
	for _, is := range res.Issues {
		slog.Warn("parse issue", "line", is.Line, "err", is.Err, "dropped", is.Dropped)
	}
	return b
}

// resolveViewMode prefers the flag, then the configured view.
func resolveViewMode(flag string) (schedule.ViewMode, error) {
	if flag == "" {
		return appConfig.ViewMode(), nil
	}
	return schedule.ParseViewMode(flag)
}

// resolveDBPath prefers --db, then storage.data_dir, then the platform
// default.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if p := appConfig.DBPath(); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return s, nil
}

// resolveTheme prefers the flag, then the persisted theme. A store that
// cannot be opened means light.
func resolveTheme(flag string) (store.Theme, error) {
	if flag != "" {
		return store.ParseTheme(flag)
	}
	s, err := openStore()
	if err != nil {
		slog.Debug("theme store unavailable", "err", err)
		return store.ThemeLight, nil
	}
	defer s.Close()
	th, err := s.Theme()
	if err != nil {
		return store.ThemeLight, nil
	}
	return th, nil
}

// chartOptions maps the chart config onto chart.Options.
func chartOptions() chart.Options {
	return chart.Options{
		LabelWidth: appConfig.Chart.LabelWidth,
		RowHeight:  appConfig.Chart.RowHeight,
		Viewport:   appConfig.Chart.ViewportWidth,
	}
}
