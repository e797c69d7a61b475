package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/export"
)

var (
	exportFormat  string
	exportOutput  string
	exportExample bool
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE|-]",
	Short: "Export the task list as CSV or JSON",
	Long:  "Export the parsed task list in CSV or JSON format. Use render for images.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default: gantt.csv or gantt.json)")
	exportCmd.Flags().BoolVar(&exportExample, "example", false, "Export the built-in example")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}

	text, err := readInput(cmd, args, exportExample)
	if err != nil {
		return err
	}
	tasks := loadBoard(text, appConfig.ViewMode()).Tasks()

	path := exportOutput
	if path == "" {
		path = "gantt." + format
	}

	if format == "json" {
		err = export.ToJSON(tasks, path)
	} else {
		err = export.ToCSV(tasks, path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), path)
	return nil
}
