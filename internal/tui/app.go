package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/export"
	"github.com/sadopc/gantt/internal/notify"
	"github.com/sadopc/gantt/internal/store"
)

// Options wire the app to everything outside the board.
type Options struct {
	Chart    chart.Options
	Export   ExportOptions
	Notifier *notify.Notifier
	// Now seeds the add-task start date. Nil means time.Now.
	Now func() time.Time
}

// ExportOptions configure the PNG pipeline run by ctrl+s.
type ExportOptions struct {
	Downloader export.Downloader
	// Strategies overrides the default gg then SVG chain.
	Strategies []export.Strategy
	Filename   string
	PixelRatio float64
	MaxScale   float64
	Background string
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	board  *store.Board
	opts   Options
	width  int
	height int

	activeView viewState
	showHelp   bool
	theme      store.Theme
	exporting  bool

	editor   editorModel
	gantt    ganttModel
	table    tableModel
	workload workloadModel
	addTask  addTaskModel

	help   help.Model
	status statusMsg
}

// NewApp builds the app around b. s persists the theme and may be nil.
func NewApp(s *store.Store, b *store.Board, opts Options) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		board:      b,
		opts:       opts,
		activeView: viewEditor,
		theme:      store.ThemeLight,
		editor:     newEditorModel(),
		gantt:      newGanttModel(b),
		table:      newTableModel(b),
		workload:   newWorkloadModel(b),
		addTask:    newAddTaskModel(b),
		help:       h,
	}
	if s != nil {
		if th, err := s.Theme(); err == nil {
			a.theme = th
		} else {
			slog.Warn("load theme", "err", err)
		}
	}
	a.applyTheme()
	a.editor.setValue(b.RawText())
	a.workload.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return textarea.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.editor.setSize(a.width, contentHeight)
		a.gantt.setSize(a.width, contentHeight)
		a.table.setSize(a.width, contentHeight)
		a.workload.setSize(a.width, contentHeight)
		a.addTask.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a, tea.Quit
		}

		// The dialog captures everything until it closes.
		if a.addTask.active() {
			var cmd tea.Cmd
			a.addTask, cmd = a.addTask.update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, keys.Parse):
			return a.parse(), nil
		case key.Matches(msg, keys.Example):
			return a.loadExample(), nil
		case key.Matches(msg, keys.Clear):
			return a.clearAll(), nil
		case key.Matches(msg, keys.Add):
			var cmd tea.Cmd
			a.addTask, cmd = a.addTask.open(a.now())
			return a, cmd
		case key.Matches(msg, keys.View):
			a.board.SetViewMode(a.board.ViewMode().Next())
			a.status = statusMsg{text: fmt.Sprintf("View: %s", a.board.ViewMode())}
			return a, nil
		case key.Matches(msg, keys.Theme):
			return a.toggleTheme(), nil
		case key.Matches(msg, keys.Export):
			if a.exporting {
				a.status = statusMsg{text: "Export already running"}
				return a, nil
			}
			a.exporting = true
			a.status = statusMsg{text: "Exporting…"}
			return a, a.doExport()
		case key.Matches(msg, keys.Tab):
			return a.setActiveView((a.activeView + 1) % viewState(len(viewNames)))
		case key.Matches(msg, keys.ShiftTab):
			return a.setActiveView((a.activeView + viewState(len(viewNames)) - 1) % viewState(len(viewNames)))
		}

		if !a.capturingInput() {
			switch {
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.Help):
				a.showHelp = !a.showHelp
				a.help.ShowAll = a.showHelp
				return a, nil
			}
		}

	case statusMsg:
		a.status = msg
		return a, nil

	case taskAddedMsg:
		if msg.ok {
			a.status = statusMsg{text: fmt.Sprintf("Added task %d: %s", msg.task.ID, msg.task.Name)}
			a.workload.refresh()
		} else {
			a.status = statusMsg{text: "Task not added: start date must be YYYY-MM-DD", isError: true}
		}
		return a, nil

	case exportDoneMsg:
		a.exporting = false
		a.status = exportStatus(msg)
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewEditor:
		a.editor, cmd = a.editor.update(msg)
	case viewChart:
		a.gantt, cmd = a.gantt.update(msg)
	case viewTasks:
		a.table, cmd = a.table.update(msg)
	}
	return a, cmd
}

// capturingInput reports whether plain keys belong to a text field.
func (a App) capturingInput() bool {
	switch a.activeView {
	case viewEditor:
		return true
	case viewTasks:
		return a.table.filtering
	}
	return false
}

func (a App) setActiveView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	if v == viewEditor {
		return a, a.editor.focus()
	}
	a.editor.blur()
	if v == viewWorkload {
		a.workload.refresh()
	}
	return a, nil
}

func (a App) now() time.Time {
	if a.opts.Now != nil {
		return a.opts.Now()
	}
	return time.Now()
}

// parse pushes the editor text to the board and reparses it.
func (a App) parse() App {
	a.board.SetRawText(a.editor.value())
	res := a.board.ParseAndApply()
	for _, is := range res.Issues {
		slog.Debug("parse issue", "line", is.Line, "err", is.Err, "dropped", is.Dropped)
	}
	a.status = parseStatus(res)
	a.workload.refresh()
	return a
}

func (a App) loadExample() App {
	res := a.board.LoadExample()
	a.editor.setValue(a.board.RawText())
	a.status = parseStatus(res)
	a.workload.refresh()
	return a
}

func (a App) clearAll() App {
	a.board.ClearAll()
	a.editor.setValue("")
	a.status = statusMsg{text: "Cleared"}
	a.workload.refresh()
	return a
}

func (a App) toggleTheme() App {
	next := a.theme.Toggle()
	if a.store != nil {
		th, err := a.store.ToggleTheme()
		if err != nil {
			a.status = statusMsg{text: fmt.Sprintf("Theme not saved: %v", err), isError: true}
		} else {
			next = th
		}
	}
	a.theme = next
	a.applyTheme()
	if !a.status.isError {
		a.status = statusMsg{text: fmt.Sprintf("Theme: %s", a.theme)}
	}
	return a
}

func (a *App) applyTheme() {
	p := chart.PaletteFor(a.theme.Dark())
	a.gantt.palette = p
	a.workload.palette = p
	a.workload.refresh()
}

// doExport renders the board into a chart document and runs it through the
// PNG pipeline off the update loop.
func (a App) doExport() tea.Cmd {
	snap := a.board.Snapshot()
	opts := a.opts.Chart
	opts.Palette = chart.PaletteFor(a.theme.Dark())
	eo := a.opts.Export
	notifier := a.opts.Notifier

	return func() tea.Msg {
		c := chart.Build(snap.Tasks, snap.ViewMode, opts)
		p := export.NewPipeline(&export.Window{Document: c.Doc, DevicePixelRatio: eo.PixelRatio}, eo.Downloader)
		if len(eo.Strategies) > 0 {
			p.Strategies = eo.Strategies
		}
		p.MaxScale = eo.MaxScale
		p.Background = eo.Background

		filename := eo.Filename
		if filename == "" {
			filename = export.DefaultFilename
		}
		out := p.Export(context.Background(), c.Grid, filename)
		if !out.Delivered {
			return exportDoneMsg{outcome: out}
		}
		return exportDoneMsg{
			outcome:   out,
			err:       notifier.ExportComplete(out.Path, out.Width, out.Height),
			truncated: c.Truncated,
		}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewEditor:
		content = a.editor.view()
	case viewChart:
		content = a.gantt.view()
	case viewTasks:
		content = a.table.view()
	case viewWorkload:
		content = a.workload.view()
	}
	if a.addTask.active() {
		content = a.addTask.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("gantt")
	badge := mutedStyle.Render(fmt.Sprintf(" %s · %s", a.board.ViewMode(), a.theme))
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(badge)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, badge, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status.text != "" {
		style := successStyle
		if a.status.isError {
			style = errorStyle
		} else if a.exporting {
			style = warningStyle
		}
		status = style.Render(" " + a.status.text)
	}

	left := footerStyle.Render(helpView)
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(status)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
