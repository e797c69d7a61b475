package schedule

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `Discovery, 2025-09-01, 5d, Alice
Design, 2025-09-08, 10d, Bob, 1
Development, 2025-09-22, 3w, Team, 2
QA, 2025-10-13, 8d, Carol, 3
Launch, 2025-10-27, 2d, Exec, 4`

func TestParseFixture(t *testing.T) {
	res := Parse(fixture)
	require.Len(t, res.Tasks, 5)
	assert.Empty(t, res.Issues)

	for i, task := range res.Tasks {
		assert.Equal(t, i+1, task.ID)
	}

	dev := res.Tasks[2]
	assert.Equal(t, "Development", dev.Name)
	assert.Equal(t, "Team", dev.Owner)
	assert.Equal(t, "2025-09-22", FormatDate(dev.Start))
	assert.Equal(t, "2025-10-12", FormatDate(dev.End))
	assert.Equal(t, 15, dev.Days())

	assert.Nil(t, res.Tasks[0].DependsOn)
	for i, want := range []int{1, 2, 3, 4} {
		require.NotNil(t, res.Tasks[i+1].DependsOn)
		assert.Equal(t, want, *res.Tasks[i+1].DependsOn)
	}
}

func TestParseInclusiveSpan(t *testing.T) {
	text := "A, 2025-09-01, 5d\nB, 2025-09-01, 2w\nC, 2025-09-01, 1m\nD, 2025-09-01, 0d\nE, 2025-09-01,"
	res := Parse(text)
	require.Len(t, res.Tasks, 5)
	want := []int{5, 10, 22, 1, 1}
	for i, task := range res.Tasks {
		assert.Equal(t, want[i], DaysBetween(task.Start, task.End)+1, task.Name)
		assert.False(t, task.End.Before(task.Start), task.Name)
	}
}

func TestParseDropsShortLines(t *testing.T) {
	res := Parse("Good, 2025-09-01, 3d\nBad, 2025-09-01")
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Good", res.Tasks[0].Name)

	dropped := res.Dropped()
	require.Len(t, dropped, 1)
	assert.Equal(t, 2, dropped[0].Line)
	assert.True(t, errors.Is(dropped[0].Err, ErrTooFewFields))
}

func TestParseStartDateAsymmetry(t *testing.T) {
	res := Parse("Empty, , 2d\nGarbage, someday, 2d")
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Empty", res.Tasks[0].Name)
	assert.Equal(t, DefaultStart, FormatDate(res.Tasks[0].Start))

	dropped := res.Dropped()
	require.Len(t, dropped, 1)
	assert.True(t, errors.Is(dropped[0].Err, ErrBadStartDate))
}

func TestParseIDsFollowNonBlankPosition(t *testing.T) {
	text := "\n\nBroken\n\nFirst, 2025-09-01, 1d\n   \nSecond, 2025-09-02, 1d\r\n"
	res := Parse(text)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, 2, res.Tasks[0].ID, "the dropped line still consumes id 1")
	assert.Equal(t, 3, res.Tasks[1].ID)
	assert.Equal(t, 3, res.Issues[0].Line)
}

func TestParseRecoveredFields(t *testing.T) {
	res := Parse("A, 2025-09-01, soon, Ann, next")
	require.Len(t, res.Tasks, 1)
	task := res.Tasks[0]
	assert.Equal(t, 1, task.Days())
	assert.Nil(t, task.DependsOn)
	assert.Equal(t, "Ann", task.Owner)

	require.Len(t, res.Issues, 2)
	assert.True(t, errors.Is(res.Issues[0].Err, ErrBadDuration))
	assert.True(t, errors.Is(res.Issues[1].Err, ErrBadDependency))
	assert.Empty(t, res.Dropped())
}

func TestParseCapsHugeDuration(t *testing.T) {
	res := Parse("Huge, 2025-01-01, 1000000000000000d\nLong, 2025-01-01, 9999m")
	require.Len(t, res.Tasks, 2)
	for _, task := range res.Tasks {
		assert.False(t, task.End.Before(task.Start), "%s ends before it starts", task.Name)
		assert.Equal(t, MaxDays, task.Days(), task.Name)
	}
	require.Len(t, res.Issues, 2)
	assert.True(t, errors.Is(res.Issues[0].Err, ErrLongDuration))
	assert.True(t, errors.Is(res.Issues[1].Err, ErrLongDuration))
	assert.Empty(t, res.Dropped())
}

func TestParseDanglingDependencyKept(t *testing.T) {
	res := Parse("A, 2025-09-01, 1d, , 42\nB, 2025-09-02, 1d, , 2")
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, 42, *res.Tasks[0].DependsOn)
	assert.Equal(t, 2, *res.Tasks[1].DependsOn, "self reference is tolerated")
	assert.Equal(t, "", res.Tasks[0].Owner)
}

func TestParseEmptyName(t *testing.T) {
	res := Parse(", 2025-09-01, 1d")
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "", res.Tasks[0].Name)
}

func TestParseDeterministic(t *testing.T) {
	assert.Equal(t, Parse(fixture), Parse(fixture))
	assert.Empty(t, Parse("").Tasks)
	assert.Empty(t, Parse("   \n\n").Issues)
}

func TestFormatRoundTrip(t *testing.T) {
	tasks := Parse(fixture).Tasks
	text := Format(tasks)
	assert.Equal(t, 5, strings.Count(text, "\n")+1)
	assert.True(t, strings.HasPrefix(text, "Discovery, 2025-09-01, 5d, Alice\n"))

	again := Parse(text).Tasks
	require.Len(t, again, len(tasks))
	for i := range tasks {
		assert.Equal(t, tasks[i].Name, again[i].Name)
		assert.True(t, tasks[i].Start.Equal(again[i].Start))
		assert.True(t, tasks[i].End.Equal(again[i].End))
		assert.Equal(t, tasks[i].DependsOn, again[i].DependsOn)
	}
}

func TestFormatLineOmitsEmptyOptionals(t *testing.T) {
	task := NewTask(1, "Solo", "", mustDate(t, "2025-09-01"), 3, nil)
	assert.Equal(t, "Solo, 2025-09-01, 3d", FormatLine(task))

	dep := 1
	task = NewTask(2, "Next", "", mustDate(t, "2025-09-04"), 1, &dep)
	assert.Equal(t, "Next, 2025-09-04, 1d, , 1", FormatLine(task))
}
