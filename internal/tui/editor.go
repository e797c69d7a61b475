package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const editorPlaceholder = "Name, 2025-09-01, 5d, Owner, DependsOn"

// editorModel is the raw task text input. Its value only reaches the board
// on an explicit parse.
type editorModel struct {
	width  int
	height int
	input  textarea.Model
}

func newEditorModel() editorModel {
	ta := textarea.New()
	ta.Placeholder = editorPlaceholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()
	return editorModel{input: ta}
}

func (e *editorModel) setSize(w, h int) {
	e.width = w
	e.height = h
	// panel border and padding, title line
	e.input.SetWidth(max(w-8, 10))
	e.input.SetHeight(max(h-6, 3))
}

func (e editorModel) value() string { return e.input.Value() }

func (e *editorModel) setValue(s string) { e.input.SetValue(s) }

func (e *editorModel) focus() tea.Cmd { return e.input.Focus() }

func (e *editorModel) blur() { e.input.Blur() }

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e editorModel) view() string {
	title := titleStyle.Render("Tasks")
	hint := mutedStyle.Render("one task per line · ctrl+r parse · ctrl+l example")
	content := lipgloss.JoinVertical(lipgloss.Left, title, hint, "", e.input.View())
	return activePanelStyle.Width(e.width - 4).Render(content)
}
