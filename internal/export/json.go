package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/gantt/internal/schedule"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Days      int    `json:"days"`
	DependsOn *int   `json:"depends_on,omitempty"`
}

// MarshalTasks renders tasks in the JSON export shape.
func MarshalTasks(tasks []schedule.Task) ([]byte, error) {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
		Tasks:      make([]jsonTask, 0, len(tasks)),
	}

	for _, t := range tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:        t.ID,
			Name:      t.Name,
			Owner:     t.Owner,
			Start:     schedule.FormatDate(t.Start),
			End:       schedule.FormatDate(t.End),
			Days:      t.Days(),
			DependsOn: t.DependsOn,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func ToJSON(tasks []schedule.Task, path string) error {
	data, err := MarshalTasks(tasks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
