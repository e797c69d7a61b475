// Package schedule holds the Gantt task model: the line grammar parser,
// duration arithmetic and the day/week/month bucket boundaries used for
// layout.
package schedule

import (
	"time"
)

// Task is one schedulable unit of work. Start and End are local midnights
// and the span is inclusive.
type Task struct {
	ID        int
	Name      string
	Owner     string
	Start     time.Time
	End       time.Time
	DependsOn *int
}

// Days returns the inclusive duration of the task in days.
func (t Task) Days() int {
	return DaysBetween(t.Start, t.End) + 1
}

// NewTask builds a task spanning days days from start. Non-positive
// durations collapse to a single day and longer ones than MaxDays are cut.
func NewTask(id int, name, owner string, start time.Time, days int, dependsOn *int) Task {
	days = min(max(days, 1), MaxDays)
	start = Normalize(start)
	return Task{
		ID:        id,
		Name:      name,
		Owner:     owner,
		Start:     start,
		End:       AddDays(start, days-1),
		DependsOn: dependsOn,
	}
}

// Span returns the earliest start and latest end across tasks. ok is false
// for an empty list.
func Span(tasks []Task) (start, end time.Time, ok bool) {
	for i, t := range tasks {
		if i == 0 || t.Start.Before(start) {
			start = t.Start
		}
		if i == 0 || t.End.After(end) {
			end = t.End
		}
	}
	return start, end, len(tasks) > 0
}

// MaxID returns the highest id in tasks, or 0 when empty.
func MaxID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}

// ByID indexes tasks by id. Later duplicates win.
func ByID(tasks []Task) map[int]Task {
	m := make(map[int]Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}
