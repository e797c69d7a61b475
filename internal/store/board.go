package store

import (
	"strings"

	"github.com/sadopc/gantt/internal/schedule"
)

// ExampleProgram is the task text loaded by Board.LoadExample.
var ExampleProgram = strings.Join([]string{
	"Discovery, 2025-09-01, 5d, Alice",
	"Design, 2025-09-08, 10d, Bob, 1",
	"Development, 2025-09-22, 3w, Team, 2",
	"QA, 2025-10-13, 8d, Carol, 3",
	"Launch, 2025-10-27, 2d, Exec, 4",
}, "\n")

// Board holds the editable chart state: the raw task text, the tasks parsed
// from it, the active view mode and whether the add-task dialog is open.
//
// A Board is meant to have a single writer (the UI update loop or a CLI
// command) and does no locking.
type Board struct {
	rawText    string
	tasks      []schedule.Task
	issues     []schedule.Issue
	viewMode   schedule.ViewMode
	dialogOpen bool
}

// NewBoard returns an empty board in week view.
func NewBoard() *Board {
	return &Board{viewMode: schedule.Week}
}

func (b *Board) RawText() string { return b.rawText }

// SetRawText replaces the text without reparsing it.
func (b *Board) SetRawText(s string) { b.rawText = s }

// Tasks returns a copy of the current task list in insertion order.
func (b *Board) Tasks() []schedule.Task {
	out := make([]schedule.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Issues returns the diagnostics of the last parse.
func (b *Board) Issues() []schedule.Issue {
	out := make([]schedule.Issue, len(b.issues))
	copy(out, b.issues)
	return out
}

func (b *Board) ViewMode() schedule.ViewMode { return b.viewMode }

func (b *Board) SetViewMode(m schedule.ViewMode) { b.viewMode = m }

// ParseAndApply reparses the raw text and replaces the task list wholesale.
func (b *Board) ParseAndApply() schedule.Result {
	res := schedule.Parse(b.rawText)
	b.tasks = res.Tasks
	b.issues = res.Issues
	return res
}

// LoadExample seeds the raw text with ExampleProgram and parses it.
func (b *Board) LoadExample() schedule.Result {
	b.rawText = ExampleProgram
	return b.ParseAndApply()
}

// ClearAll empties both the raw text and the task list.
func (b *Board) ClearAll() {
	b.rawText = ""
	b.tasks = []schedule.Task{}
	b.issues = nil
}

// NextID is one past the highest id on the board. Gaps are never reused.
func (b *Board) NextID() int {
	return schedule.MaxID(b.tasks) + 1
}

// AddTask appends a task built from in. It reports false and leaves the
// board untouched when the start date does not parse.
func (b *Board) AddTask(in NewTask) (schedule.Task, bool) {
	start, err := schedule.ParseDate(in.Start)
	if err != nil {
		return schedule.Task{}, false
	}
	days := schedule.ParseDurationToDays(in.Duration)
	t := schedule.NewTask(b.NextID(), strings.TrimSpace(in.Name), strings.TrimSpace(in.Owner), start, days, in.DependsOn)
	b.tasks = append(b.tasks, t)
	return t, true
}

// SetTasks replaces the task list directly, keeping the given ids.
func (b *Board) SetTasks(tasks []schedule.Task) {
	b.tasks = make([]schedule.Task, len(tasks))
	copy(b.tasks, tasks)
}

func (b *Board) OpenDialog()      { b.dialogOpen = true }
func (b *Board) CloseDialog()     { b.dialogOpen = false }
func (b *Board) DialogOpen() bool { return b.dialogOpen }

func (b *Board) Snapshot() Snapshot {
	return Snapshot{RawText: b.rawText, Tasks: b.Tasks(), ViewMode: b.viewMode}
}
