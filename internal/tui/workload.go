package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

// ownerLoad is the number of scheduled days assigned to one owner.
type ownerLoad struct {
	Owner string
	Days  int
	Tasks int
}

// ownerWorkload totals task days per owner in order of first appearance.
func ownerWorkload(tasks []schedule.Task) []ownerLoad {
	idx := make(map[string]int)
	var out []ownerLoad
	for _, t := range tasks {
		i, ok := idx[t.Owner]
		if !ok {
			i = len(out)
			idx[t.Owner] = i
			out = append(out, ownerLoad{Owner: t.Owner})
		}
		out[i].Days += t.Days()
		out[i].Tasks++
	}
	return out
}

type workloadModel struct {
	board   *store.Board
	width   int
	height  int
	palette chart.Palette

	chart barchart.Model
	loads []ownerLoad
}

func newWorkloadModel(b *store.Board) workloadModel {
	return workloadModel{
		board:   b,
		palette: chart.Light,
		chart:   barchart.New(60, 12),
	}
}

func (m *workloadModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.refresh()
}

// refresh rebuilds the bar chart from the board.
func (m *workloadModel) refresh() {
	chartWidth := max(m.width-8, 20)
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.loads = ownerWorkload(m.board.Tasks())
	m.chart = barchart.New(chartWidth, chartHeight)

	style := barStyle(m.palette)
	bars := make([]barchart.BarData, 0, len(m.loads))
	for _, l := range m.loads {
		bars = append(bars, barchart.BarData{
			Label: truncate(ownerLabel(l.Owner), 10),
			Values: []barchart.BarValue{{
				Name:  ownerLabel(l.Owner),
				Value: float64(l.Days),
				Style: style,
			}},
		})
	}
	if len(bars) > 0 {
		m.chart.PushAll(bars)
	}
	m.chart.Draw()
}

func (m workloadModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Workload")

	if len(m.loads) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No tasks to chart."),
		))
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-16s %6s %6s", "Owner", "Days", "Tasks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 30)))
	for _, l := range m.loads {
		dot := barStyle(m.palette).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-14s %6d %6d", dot, truncate(ownerLabel(l.Owner), 14), l.Days, l.Tasks))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", m.chart.View(), "", strings.Join(rows, "\n"),
		),
	)
}
