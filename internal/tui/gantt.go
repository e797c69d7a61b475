package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

const ganttLabelWidth = 18

// ganttModel draws the board as a terminal Gantt chart, one column per
// bucket of the active view mode.
type ganttModel struct {
	board   *store.Board
	width   int
	height  int
	offset  int // first visible bucket
	palette chart.Palette
}

func newGanttModel(b *store.Board) ganttModel {
	return ganttModel{board: b, palette: chart.Light}
}

func (g *ganttModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g ganttModel) update(msg tea.Msg) (ganttModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Left):
			if g.offset > 0 {
				g.offset--
			}
		case key.Matches(msg, keys.Right):
			g.offset++
		}
	}
	return g, nil
}

// bucketWidth is the column width for a mode, wide enough for its label.
func bucketWidth(mode schedule.ViewMode) int {
	switch mode {
	case schedule.Day:
		return 7
	case schedule.Month:
		return 9
	default:
		return 11
	}
}

// renderGantt lays tasks out in at most width cells, starting at bucket
// offset. Partially covered buckets get a proportional bar.
func renderGantt(tasks []schedule.Task, mode schedule.ViewMode, p chart.Palette, width, offset int) string {
	start, end, ok := schedule.Span(tasks)
	if !ok {
		return mutedStyle.Render("No tasks. Type some in the editor and press ctrl+r, or ctrl+l for an example.")
	}
	buckets, truncated := schedule.Buckets(start, end, mode, schedule.MaxBuckets)
	colW := bucketWidth(mode)
	visible := max((width-ganttLabelWidth)/colW, 1)
	offset = min(max(offset, 0), max(len(buckets)-visible, 0))
	shown := buckets[offset:min(offset+visible, len(buckets))]

	bar := barStyle(p)
	grid := gridStyle(p)

	var header strings.Builder
	header.WriteString(pad("", ganttLabelWidth))
	for _, b := range shown {
		header.WriteString(pad(b.Label(mode), colW))
	}

	rows := []string{titleStyle.Render(header.String())}
	for _, t := range tasks {
		var row strings.Builder
		row.WriteString(normalItemStyle.Render(pad(fmt.Sprintf("%d %s", t.ID, t.Name), ganttLabelWidth)))
		for _, b := range shown {
			row.WriteString(bucketCell(t, b, colW, bar, grid))
		}
		rows = append(rows, row.String())
	}

	footer := fmt.Sprintf("%s view · %s to %s · buckets %d-%d of %d",
		mode, schedule.FormatDate(start), schedule.FormatDate(end),
		offset+1, offset+len(shown), len(buckets))
	if truncated {
		footer += fmt.Sprintf(" · timeline cut at %s", schedule.FormatDate(buckets[len(buckets)-1].End))
	}
	rows = append(rows, "", mutedStyle.Render(footer))
	return strings.Join(rows, "\n")
}

func bucketCell(t schedule.Task, b schedule.Bucket, colW int, bar, grid lipgloss.Style) string {
	inner := colW - 1
	if !b.Overlaps(t.Start, t.End) {
		return grid.Render(pad("·", colW))
	}
	from, to := b.Start, b.End
	if t.Start.After(from) {
		from = t.Start
	}
	if t.End.Before(to) {
		to = t.End
	}
	covered := float64(schedule.DaysBetween(from, to)+1) / float64(b.Days())
	n := max(int(math.Ceil(covered*float64(inner))), 1)
	lead := 0
	if t.Start.After(b.Start) {
		lead = min(inner-n, int(float64(schedule.DaysBetween(b.Start, t.Start))/float64(b.Days())*float64(inner)))
	}
	return strings.Repeat(" ", lead) + bar.Render(strings.Repeat("█", n)) + strings.Repeat(" ", colW-lead-n)
}

func (g ganttModel) view() string {
	snap := g.board.Snapshot()
	title := titleStyle.Render("Chart")
	body := renderGantt(snap.Tasks, snap.ViewMode, g.palette, g.width-8, g.offset)
	nav := mutedStyle.Render("←/→: scroll  ctrl+v: view mode  ctrl+s: export png")
	return panelStyle.Width(g.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", nav),
	)
}
