package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/export"
	"github.com/sadopc/gantt/internal/notify"
	"github.com/sadopc/gantt/internal/schedule"
)

var (
	renderOutput   string
	renderView     string
	renderTheme    string
	renderScale    float64
	renderStrategy string
	renderExample  bool
)

var errNotRendered = errors.New("no export strategy produced an image")

var renderCmd = &cobra.Command{
	Use:   "render [FILE|-]",
	Short: "Render task definitions to a PNG chart",
	Long: `Render task definitions to a PNG chart.

Without -o the image is written to export.dir/export.filename from the
config. The pixel ratio is capped at export.max_scale.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runRender(ctx, cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output PNG path")
	renderCmd.Flags().StringVar(&renderView, "view", "", "View mode: day, week or month")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme: light or dark (default: saved theme)")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "Device pixel ratio (default: export.pixel_ratio)")
	renderCmd.Flags().StringVar(&renderStrategy, "strategy", "", "Rasterizer: auto, gg or svg (default: export.strategy)")
	renderCmd.Flags().BoolVar(&renderExample, "example", false, "Render the built-in example")
}

func runRender(ctx context.Context, cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args, renderExample)
	if err != nil {
		return err
	}
	mode, err := resolveViewMode(renderView)
	if err != nil {
		return err
	}
	theme, err := resolveTheme(renderTheme)
	if err != nil {
		return err
	}

	strategyName := renderStrategy
	if strategyName == "" {
		strategyName = appConfig.Export.Strategy
	}
	strategies, err := export.StrategiesFor(strategyName)
	if err != nil {
		return err
	}

	ratio := renderScale
	if ratio == 0 {
		ratio = appConfig.Export.PixelRatio
	}

	board := loadBoard(text, mode)
	snap := board.Snapshot()
	opts := chartOptions()
	opts.Palette = chart.PaletteFor(theme.Dark())
	c := chart.Build(snap.Tasks, snap.ViewMode, opts)
	if c.Truncated && len(c.Buckets) > 0 {
		slog.Warn("timeline truncated", "buckets", len(c.Buckets),
			"last", schedule.FormatDate(c.Buckets[len(c.Buckets)-1].End))
	}

	dl := export.DirDownloader{Dir: appConfig.Export.Dir}
	filename := appConfig.Export.Filename
	if renderOutput != "" {
		dl.Dir = "."
		filename = renderOutput
	}

	p := export.NewPipeline(&export.Window{Document: c.Doc, DevicePixelRatio: ratio}, dl)
	p.Strategies = strategies
	p.MaxScale = appConfig.Export.MaxScale
	p.Background = appConfig.Export.Background

	out := p.Export(ctx, c.Grid, filename)
	if !out.Delivered {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render cancelled: %w", err)
		}
		return errNotRendered
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d PNG to %s (%s, scale %.2g)\n",
		out.Width, out.Height, out.Path, out.Strategy, out.Scale)

	if err := notify.New(appConfig.Export.Notify).ExportComplete(out.Path, out.Width, out.Height); err != nil {
		slog.Warn("notification failed", "err", err)
	}
	return nil
}
