package tui

import (
	"fmt"
	"strings"

	"github.com/sadopc/gantt/internal/export"
	"github.com/sadopc/gantt/internal/schedule"
)

// viewState represents the currently active view.
type viewState int

const (
	viewEditor viewState = iota
	viewChart
	viewTasks
	viewWorkload
)

var viewNames = []string{"Editor", "Chart", "Tasks", "Workload"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	outcome   export.Outcome
	err       error // notification failure, the export itself never errors
	truncated bool  // the chart timeline was cut short
}

// --- Helpers ---

// parseStatus summarises a parse for the status line.
func parseStatus(res schedule.Result) statusMsg {
	dropped := len(res.Dropped())
	switch {
	case len(res.Issues) == 0:
		return statusMsg{text: fmt.Sprintf("Parsed %d tasks", len(res.Tasks))}
	case dropped == 0:
		return statusMsg{text: fmt.Sprintf("Parsed %d tasks, %s", len(res.Tasks), res.Issues[0])}
	default:
		return statusMsg{
			text:    fmt.Sprintf("Parsed %d tasks, dropped %d: %s", len(res.Tasks), dropped, res.Dropped()[0]),
			isError: true,
		}
	}
}

func exportStatus(msg exportDoneMsg) statusMsg {
	out := msg.outcome
	switch {
	case out.Busy:
		return statusMsg{text: "Export already running"}
	case !out.Delivered:
		return statusMsg{text: "Export produced no image", isError: true}
	case msg.err != nil:
		return statusMsg{text: fmt.Sprintf("Exported %s (notify: %v)", out.Path, msg.err)}
	}
	text := fmt.Sprintf("Exported %dx%d to %s via %s", out.Width, out.Height, out.Path, out.Strategy)
	if msg.truncated {
		text += " (timeline truncated)"
	}
	return statusMsg{text: text}
}

func ownerLabel(owner string) string {
	if owner == "" {
		return "(none)"
	}
	return owner
}

// truncate cuts s to at most w runes, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func pad(s string, w int) string {
	s = truncate(s, w)
	if n := w - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
