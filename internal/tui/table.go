package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

// taskSource adapts a task list to fuzzy.Source. Names and owners are both
// searchable.
type taskSource []schedule.Task

func (s taskSource) String(i int) string { return s[i].Name + " " + s[i].Owner }
func (s taskSource) Len() int            { return len(s) }

// taskRow is a task that passed the filter, with the matched byte offsets
// inside its name.
type taskRow struct {
	task    schedule.Task
	matched map[int]bool
}

// filterTasks keeps the tasks matching query, best match first. An empty
// query keeps everything in board order.
func filterTasks(tasks []schedule.Task, query string) []taskRow {
	if strings.TrimSpace(query) == "" {
		rows := make([]taskRow, len(tasks))
		for i, t := range tasks {
			rows[i] = taskRow{task: t}
		}
		return rows
	}
	matches := fuzzy.FindFrom(query, taskSource(tasks))
	rows := make([]taskRow, 0, len(matches))
	for _, m := range matches {
		t := tasks[m.Index]
		hit := make(map[int]bool, len(m.MatchedIndexes))
		for _, idx := range m.MatchedIndexes {
			if idx < len(t.Name) {
				hit[idx] = true
			}
		}
		rows = append(rows, taskRow{task: t, matched: hit})
	}
	return rows
}

type tableModel struct {
	board  *store.Board
	width  int
	height int
	cursor int

	filter    textinput.Model
	filtering bool
}

func newTableModel(b *store.Board) tableModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter by name or owner"
	return tableModel{board: b, filter: ti}
}

func (m *tableModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.filter.Width = max(w-12, 10)
}

func (m tableModel) rows() []taskRow {
	return filterTasks(m.board.Tasks(), m.filter.Value())
}

func (m tableModel) update(msg tea.Msg) (tableModel, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.rows())
		switch {
		case key.Matches(msg, keys.Filter):
			m.filtering = true
			return m, m.filter.Focus()
		case key.Matches(msg, keys.Back):
			m.filter.SetValue("")
			m.cursor = 0
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < n-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m tableModel) updateFilter(msg tea.Msg) (tableModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			m.filtering = false
			m.filter.Blur()
			return m, nil
		case key.Matches(msg, keys.Back):
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.cursor = 0
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m tableModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Tasks")
	rows := m.rows()

	var lines []string
	lines = append(lines, title)
	if m.filtering || m.filter.Value() != "" {
		lines = append(lines, m.filter.View())
	}
	lines = append(lines, "")

	if len(rows) == 0 {
		msg := "No tasks yet. Press ctrl+n to add one."
		if m.filter.Value() != "" {
			msg = "No tasks match the filter."
		}
		lines = append(lines, mutedStyle.Render(msg))
		return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
	}

	header := mutedStyle.Render(fmt.Sprintf("  %-4s %-24s %-12s %-10s %-10s %5s %s",
		"ID", "Name", "Owner", "Start", "End", "Days", "After"))
	lines = append(lines, header)

	cursor := min(m.cursor, len(rows)-1)
	for i, r := range rows {
		t := r.task
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		dep := ""
		if t.DependsOn != nil {
			dep = fmt.Sprintf("#%d", *t.DependsOn)
		}
		name := highlightName(pad(t.Name, 24), r.matched, style)
		rest := style.Render(fmt.Sprintf(" %-12s %-10s %-10s %5d %s",
			truncate(ownerLabel(t.Owner), 12), schedule.FormatDate(t.Start), schedule.FormatDate(t.End), t.Days(), dep))
		lines = append(lines, style.Render(fmt.Sprintf("%s%-4d ", prefix, t.ID))+name+rest)
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  /: filter  esc: clear  ctrl+n: add task"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func highlightName(name string, matched map[int]bool, style lipgloss.Style) string {
	if len(matched) == 0 {
		return style.Render(name)
	}
	var b strings.Builder
	for i, r := range name {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}
