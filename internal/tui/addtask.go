package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

// addTaskModel is the add-task dialog. The board's dialog flag says whether
// the form is showing.
type addTaskModel struct {
	board  *store.Board
	width  int
	height int

	form *huh.Form

	// Form values as pointers (survive value copies)
	name      *string
	start     *string
	duration  *string
	owner     *string
	dependsOn *string
}

// taskAddedMsg reports the outcome of a submitted dialog.
type taskAddedMsg struct {
	task schedule.Task
	ok   bool
}

func newAddTaskModel(b *store.Board) addTaskModel {
	n, s, d, o, dep := "", "", "", "", ""
	return addTaskModel{
		board:     b,
		name:      &n,
		start:     &s,
		duration:  &d,
		owner:     &o,
		dependsOn: &dep,
	}
}

func (m *addTaskModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// open resets the fields and shows the form. The start date defaults to
// today and the dependency to the last task on the board.
func (m addTaskModel) open(today time.Time) (addTaskModel, tea.Cmd) {
	*m.name = ""
	*m.start = schedule.FormatDate(today)
	*m.duration = "1d"
	*m.owner = ""
	*m.dependsOn = ""
	if last := m.board.NextID() - 1; last > 0 {
		*m.dependsOn = strconv.Itoa(last)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(m.name),
			huh.NewInput().Title("Start (YYYY-MM-DD)").Value(m.start),
			huh.NewInput().Title("Duration (5d, 2w, 1m)").Value(m.duration),
			huh.NewInput().Title("Owner").Value(m.owner),
			huh.NewInput().Title("Depends on (task id)").Value(m.dependsOn),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.board.OpenDialog()
	return m, m.form.Init()
}

func (m addTaskModel) active() bool {
	return m.form != nil && m.board.DialogOpen()
}

func (m addTaskModel) close() addTaskModel {
	m.form = nil
	m.board.CloseDialog()
	return m
}

// submit adds the current field values to the board. A start date that does
// not parse leaves the board unchanged.
func (m addTaskModel) submit() taskAddedMsg {
	t, ok := m.board.AddTask(store.NewTask{
		Name:      *m.name,
		Start:     *m.start,
		Duration:  *m.duration,
		Owner:     *m.owner,
		DependsOn: parseDependsOn(*m.dependsOn),
	})
	return taskAddedMsg{task: t, ok: ok}
}

// parseDependsOn reads an optional task id. Anything but an integer means
// no dependency.
func parseDependsOn(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func (m addTaskModel) update(msg tea.Msg) (addTaskModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			return m.close(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		added := m.submit()
		m = m.close()
		return m, func() tea.Msg { return added }
	}
	return m, cmd
}

func (m addTaskModel) view() string {
	if !m.active() {
		return ""
	}
	title := titleStyle.Render("New Task")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
	return activePanelStyle.Width(m.width - 4).Render(content)
}
