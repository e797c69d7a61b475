// Package cmd provides the CLI commands for gantt.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/config"
	"github.com/sadopc/gantt/internal/export"
	"github.com/sadopc/gantt/internal/notify"
	"github.com/sadopc/gantt/internal/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	cfgPath string
	dbPath  string
	verbose bool

	// Root command flags
	tuiFile string
	tuiView string

	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gantt",
	Short: "gantt - text-defined Gantt charts with PNG export",
	Long: `gantt turns lines like

  Design, 2025-09-08, 10d, Bob, 1

into a Gantt chart you can browse in the terminal and export as a PNG.

Run "gantt" with no arguments to open the interactive editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd.ErrOrStderr())
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the config file (default: ~/.config/gantt/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the settings database (default: ~/.config/gantt/gantt.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&tuiFile, "file", "f", "", "Load task definitions from a file")
	rootCmd.Flags().StringVar(&tuiView, "view", "", "Initial view mode: day, week or month")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("gantt {{.Version}}\n")
}

// initialize loads the config and installs the stderr logger.
func initialize(stderr io.Writer) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if cfgPath != "" {
			return err
		}
		fmt.Fprintf(stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	setLogger(stderr)
	return nil
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	lvl, err := appConfig.LogLevel()
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// setLogger routes every package that logs to w.
func setLogger(w io.Writer) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)
	export.SetLogger(logger)
	gg.SetLogger(logger)
}

// runTUI starts the interactive editor. Without a terminal it prints help.
func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return cmd.Help()
	}

	mode, err := resolveViewMode(tuiView)
	if err != nil {
		return err
	}

	text := ""
	if tuiFile != "" {
		data, err := os.ReadFile(tuiFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", tuiFile, err)
		}
		text = string(data)
	}
	board := loadBoard(text, mode)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	// The alternate screen owns stderr, so logs go to a file.
	logPath := appConfig.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(logPath, "gantt")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	setLogger(f)

	strategies, err := export.StrategiesFor(appConfig.Export.Strategy)
	if err != nil {
		return err
	}

	app := tui.NewApp(s, board, tui.Options{
		Chart: chartOptions(),
		Export: tui.ExportOptions{
			Downloader: export.DirDownloader{Dir: appConfig.Export.Dir},
			Strategies: strategies,
			Filename:   appConfig.Export.Filename,
			PixelRatio: appConfig.Export.PixelRatio,
			MaxScale:   appConfig.Export.MaxScale,
			Background: appConfig.Export.Background,
		},
		Notifier: notify.New(appConfig.Export.Notify),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
