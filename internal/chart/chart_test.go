package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/gantt/internal/schedule"
)

const fixture = `Discovery, 2025-09-01, 5d, Alice
Design, 2025-09-08, 10d, Bob, 1
Development, 2025-09-22, 3w, Team, 2
QA, 2025-10-13, 8d, Carol, 3
Launch, 2025-10-27, 2d, Exec, 4`

func fixtureTasks(t *testing.T) []schedule.Task {
	t.Helper()
	res := schedule.Parse(fixture)
	require.Len(t, res.Tasks, 5)
	return res.Tasks
}

func TestBuildWeekGeometry(t *testing.T) {
	c := Build(fixtureTasks(t), schedule.Week, Options{})

	require.Len(t, c.Buckets, 9)
	assert.False(t, c.Truncated)
	assert.Equal(t, "2025-09-01", schedule.FormatDate(c.Start))
	assert.Equal(t, float64(180+63*14), c.Width)
	assert.Equal(t, float64(32+5*36), c.Height)

	bar := c.Bar(2)
	require.NotNil(t, bar, "missing bar for task 2")
	r := c.Doc.BoundingBox(bar)
	assert.Equal(t, 24.0+180+7*14, r.X)
	assert.Equal(t, 140.0, r.W)
	assert.Equal(t, "10d", bar.Text)
}

func TestBuildGridIsRounded(t *testing.T) {
	c := Build(fixtureTasks(t), schedule.Month, Options{})
	assert.True(t, c.Grid.HasClass(ClassGrid))
	assert.Equal(t, "16px", c.Doc.ComputedStyle(c.Grid)["border-radius"])

	require.Len(t, c.Buckets, 2)
	labels := c.Grid.FindAll(ClassBucketLabel)
	require.Len(t, labels, 2)
	assert.Equal(t, "Sep 2025", labels[0].Text)
	assert.Equal(t, "Oct 2025", labels[1].Text)
}

func TestBuildViewportClipsButScrollCoversAll(t *testing.T) {
	c := Build(fixtureTasks(t), schedule.Day, Options{Viewport: 400})

	assert.Equal(t, 400.0, c.Doc.BoundingBox(c.Grid).W)
	w, h := c.Doc.ScrollSize(c.Grid)
	assert.Equal(t, c.Width, w)
	assert.Equal(t, c.Height, h)
	assert.Greater(t, w, 400.0, "scroll extent should exceed the viewport")
}

func TestBuildTruncatesLongTimeline(t *testing.T) {
	tasks := schedule.Parse("X, 2025-01-01, 9999999d\nY, 2025-01-02, 2d, , 1").Tasks
	require.Len(t, tasks, 2)

	for _, mode := range schedule.ViewModes {
		c := Build(tasks, mode, Options{})
		assert.True(t, c.Truncated, mode.String())
		assert.LessOrEqual(t, c.Width, float64(180+MaxTimelineWidth), mode.String())
		assert.LessOrEqual(t, len(c.Buckets), schedule.MaxBuckets, mode.String())

		bar := c.Doc.BoundingBox(c.Bar(1))
		assert.LessOrEqual(t, bar.Right(), 24+c.Width, "bar clipped to the timeline in %s view", mode)
	}
}

func TestBuildTruncatesDistantTasks(t *testing.T) {
	tasks := schedule.Parse("Early, 0001-01-01, 1d\nLate, 9999-12-01, 1d").Tasks
	c := Build(tasks, schedule.Day, Options{})
	assert.True(t, c.Truncated)
	require.NotNil(t, c.Bar(2))
	late := c.Doc.BoundingBox(c.Bar(2))
	assert.LessOrEqual(t, late.Right(), 24+c.Width)
}

func TestBuildLinksOnlyExistingDependencies(t *testing.T) {
	c := Build(fixtureTasks(t), schedule.Week, Options{})
	assert.GreaterOrEqual(t, len(c.Grid.FindAll(ClassLink)), 4*2)

	dangling := schedule.Parse("A, 2025-09-01, 2d\nB, 2025-09-03, 2d, Bob, 9\nC, 2025-09-05, 1d, Bob, C")
	c = Build(dangling.Tasks, schedule.Week, Options{})
	assert.Empty(t, c.Grid.FindAll(ClassLink), "dangling and invalid dependencies draw nothing")
}

func TestBuildSelfDependencyIgnored(t *testing.T) {
	c := Build(schedule.Parse("A, 2025-09-01, 2d, , 1").Tasks, schedule.Day, Options{})
	assert.Empty(t, c.Grid.FindAll(ClassLink))
}

func TestBuildPalette(t *testing.T) {
	c := Build(fixtureTasks(t), schedule.Week, Options{Palette: Dark})
	assert.Equal(t, Dark.Background, c.Doc.ComputedStyle(c.Doc.Body())["background-color"])
	assert.Equal(t, Brand, c.Doc.ComputedStyle(c.Bar(1))["background-color"])
	assert.Equal(t, "light", PaletteFor(false).Name)
	assert.Equal(t, "dark", PaletteFor(true).Name)
}

func TestBuildEmpty(t *testing.T) {
	c := Build(nil, schedule.Week, Options{})
	assert.Empty(t, c.Buckets)
	assert.Equal(t, 180.0, c.Width)
	assert.Equal(t, 32.0, c.Height)
	assert.Empty(t, c.Grid.FindAll(ClassBar))
}
