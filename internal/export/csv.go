package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/gantt/internal/schedule"
)

var csvHeader = []string{"ID", "Name", "Owner", "Start", "End", "Days", "DependsOn"}

func ToCSV(tasks []schedule.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			t.Name,
			t.Owner,
			schedule.FormatDate(t.Start),
			schedule.FormatDate(t.End),
			strconv.Itoa(t.Days()),
			formatDependency(t.DependsOn),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDependency(dep *int) string {
	if dep == nil {
		return ""
	}
	return strconv.Itoa(*dep)
}
