package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/gantt/internal/export"
	"github.com/sadopc/gantt/internal/schedule"
)

var (
	parseJSON      bool
	parseNormalize bool
	parseExample   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [FILE|-]",
	Short: "Parse task definitions and print the task list",
	Long: `Parse task definitions and print the resulting tasks.

Malformed lines are reported as warnings on stderr. --normalize prints the
tasks back in the line grammar with resolved dates and day durations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output tasks as JSON")
	parseCmd.Flags().BoolVar(&parseNormalize, "normalize", false, "Output tasks in normalized line form")
	parseCmd.Flags().BoolVar(&parseExample, "example", false, "Parse the built-in example")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args, parseExample)
	if err != nil {
		return err
	}
	tasks := loadBoard(text, appConfig.ViewMode()).Tasks()
	out := cmd.OutOrStdout()

	switch {
	case parseJSON:
		data, err := export.MarshalTasks(tasks)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case parseNormalize:
		fmt.Fprintln(out, schedule.Format(tasks))
	default:
		fmt.Fprintln(out, taskTable(tasks))
	}
	return nil
}

func taskTable(tasks []schedule.Task) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Owner", "Start", "End", "Days", "After")
	for _, task := range tasks {
		dep := ""
		if task.DependsOn != nil {
			dep = strconv.Itoa(*task.DependsOn)
		}
		t.Row(
			strconv.Itoa(task.ID),
			task.Name,
			task.Owner,
			schedule.FormatDate(task.Start),
			schedule.FormatDate(task.End),
			strconv.Itoa(task.Days()),
			dep,
		)
	}
	return t.String()
}
