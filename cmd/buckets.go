package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/schedule"
)

var bucketsView string

var bucketsCmd = &cobra.Command{
	Use:   "buckets FROM [TO]",
	Short: "List the day, week or month buckets covering a date range",
	Long: `List the calendar buckets the chart uses for a date range.

Weeks start on Monday. TO defaults to FROM.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBuckets,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
	bucketsCmd.Flags().StringVar(&bucketsView, "view", "", "View mode: day, week or month")
}

func runBuckets(cmd *cobra.Command, args []string) error {
	mode, err := resolveViewMode(bucketsView)
	if err != nil {
		return err
	}
	from, err := schedule.ParseDate(args[0])
	if err != nil {
		return err
	}
	to := from
	if len(args) == 2 {
		if to, err = schedule.ParseDate(args[1]); err != nil {
			return err
		}
	}

	buckets, truncated := schedule.Buckets(from, to, mode, schedule.MaxBuckets)
	if len(buckets) == 0 {
		return fmt.Errorf("empty range: %s is before %s", args[1], args[0])
	}
	for _, b := range buckets {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s  %s  %dd\n",
			b.Label(mode), schedule.FormatDate(b.Start), schedule.FormatDate(b.End), b.Days())
	}
	if truncated {
		slog.Warn("range truncated", "buckets", len(buckets), "last", schedule.FormatDate(buckets[len(buckets)-1].End))
	}
	return nil
}
