// Package chart lays a task list out as an element tree: a rounded grid
// with bucket headers, one row per task, bars and dependency connectors.
// The tree is what the PNG exporter captures.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/sadopc/gantt/internal/element"
	"github.com/sadopc/gantt/internal/schedule"
)

// Class names of the generated nodes.
const (
	ClassGrid        = "gantt-grid"
	ClassHeader      = "gantt-header"
	ClassBucketLabel = "gantt-bucket-label"
	ClassGridline    = "gantt-gridline"
	ClassRow         = "gantt-row"
	ClassLabel       = "gantt-label"
	ClassOwner       = "gantt-owner"
	ClassBar         = "gantt-bar"
	ClassLink        = "gantt-link"
)

// Options tune the geometry. Zero values pick the defaults.
type Options struct {
	Palette      Palette
	LabelWidth   float64
	RowHeight    float64
	HeaderHeight float64
	// Padding is the body margin around the grid. Negative means none.
	Padding float64
	// DayWidth overrides the per-mode pixels per day.
	DayWidth float64
	// Viewport clips the grid box to this width. The scroll extent still
	// covers the whole chart.
	Viewport float64
}

func (o Options) withDefaults() Options {
	if o.Palette.Name == "" {
		o.Palette = Light
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 180
	}
	if o.RowHeight <= 0 {
		o.RowHeight = 36
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = 32
	}
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = 24
	}
	return o
}

// MaxTimelineWidth bounds the timeline in CSS pixels. Buckets beyond it are
// dropped and the chart is marked truncated.
const MaxTimelineWidth = 16384

// PxPerDay is the default horizontal scale for a view mode.
func PxPerDay(mode schedule.ViewMode) float64 {
	switch mode {
	case schedule.Day:
		return 36
	case schedule.Month:
		return 4
	default:
		return 14
	}
}

// Chart is a built chart document.
type Chart struct {
	Doc     *element.Document
	Grid    *element.Node
	Buckets []schedule.Bucket
	// Start is the first day of the first bucket.
	Start time.Time
	// Width and Height are the full content size of the grid.
	Width  float64
	Height float64
	// Truncated is set when the timeline was cut short of the last task end.
	Truncated bool
}

// Bar returns the bar node of the task with id, or nil.
func (c *Chart) Bar(id int) *element.Node {
	for _, b := range c.Grid.FindAll(ClassBar) {
		if b.ID == barID(id) {
			return b
		}
	}
	return nil
}

func barID(id int) string { return fmt.Sprintf("task-%d", id) }

// Sheet returns the style rules for a palette.
func Sheet(p Palette) *element.Sheet {
	return element.NewSheet().
		Add("body", "font-family: Go; font-size: 13px; color: "+p.Text+"; background-color: "+p.Background).
		Add("."+ClassGrid, "background-color: "+p.Surface+"; border-color: "+p.Border+"; border-width: 1px; border-radius: 16px; overflow: hidden").
		Add("."+ClassHeader, "background-color: "+p.Header).
		Add("."+ClassBucketLabel, "color: "+p.Muted+"; font-size: 11px; padding-left: 4px").
		Add("."+ClassGridline, "background-color: "+p.Gridline).
		Add("."+ClassLabel, "padding-left: 12px; font-weight: 600").
		Add("."+ClassOwner, "padding-left: 12px; color: "+p.Muted+"; font-size: 11px").
		Add("."+ClassBar, "background-color: "+p.Bar+"; border-color: "+p.BarEdge+"; border-width: 1px; border-radius: 6px; color: "+p.BarText+"; font-size: 11px; padding-left: 6px").
		Add("."+ClassLink, "background-color: "+p.Link)
}

func box(x, y, w, h float64) element.Option {
	return element.WithStyle(fmt.Sprintf("left: %s; top: %s; width: %s; height: %s",
		element.Px(x), element.Px(y), element.Px(w), element.Px(h)))
}

// Build lays out tasks in list order. Tasks keep their insertion order; the
// timeline starts at the bucket holding the earliest start.
func Build(tasks []schedule.Task, mode schedule.ViewMode, opts Options) *Chart {
	opts = opts.withDefaults()
	ppd := opts.DayWidth
	if ppd <= 0 {
		ppd = PxPerDay(mode)
	}

	c := &Chart{}
	if start, end, ok := schedule.Span(tasks); ok {
		c.Buckets, c.Truncated = schedule.Buckets(start, end, mode, schedule.MaxBuckets)
		c.Start = c.Buckets[0].Start
	}

	timeline := 0.0
	for i, b := range c.Buckets {
		w := float64(b.Days()) * ppd
		if i > 0 && timeline+w > MaxTimelineWidth {
			c.Buckets = c.Buckets[:i]
			c.Truncated = true
			break
		}
		timeline += w
	}
	c.Width = opts.LabelWidth + timeline
	rowsTop := opts.HeaderHeight
	rowsHeight := float64(len(tasks)) * opts.RowHeight
	c.Height = rowsTop + rowsHeight

	gridWidth := c.Width
	if opts.Viewport > 0 && opts.Viewport < gridWidth {
		gridWidth = opts.Viewport
	}

	body := element.New("body", box(0, 0, gridWidth+2*opts.Padding, c.Height+2*opts.Padding))
	grid := element.New("div", element.WithClass(ClassGrid), box(opts.Padding, opts.Padding, gridWidth, c.Height))
	body.Append(grid)

	header := element.New("div", element.WithClass(ClassHeader), box(0, 0, c.Width, opts.HeaderHeight))
	header.Append(element.New("div", element.WithClass(ClassLabel), box(0, 8, opts.LabelWidth, opts.HeaderHeight-16), element.WithText("Task")))
	grid.Append(header)

	x := opts.LabelWidth
	for _, b := range c.Buckets {
		w := float64(b.Days()) * ppd
		header.Append(element.New("div", element.WithClass(ClassBucketLabel), box(x, 8, w, opts.HeaderHeight-16), element.WithText(b.Label(mode))))
		grid.Append(element.New("div", element.WithClass(ClassGridline), box(x, rowsTop, 1, rowsHeight)))
		x += w
	}

	type span struct{ left, right, mid float64 }
	spans := make(map[int]span, len(tasks))
	for i, t := range tasks {
		y := rowsTop + float64(i)*opts.RowHeight
		row := element.New("div", element.WithClass(ClassRow), box(0, y, c.Width, opts.RowHeight))

		labelH := opts.RowHeight / 2
		row.Append(element.New("div", element.WithClass(ClassLabel), box(0, 2, opts.LabelWidth, labelH), element.WithText(t.Name)))
		if t.Owner != "" {
			row.Append(element.New("div", element.WithClass(ClassOwner), box(0, labelH, opts.LabelWidth, labelH-2), element.WithText(t.Owner)))
		}

		// Bars past a truncated timeline are clipped to its edge.
		left := opts.LabelWidth + float64(schedule.DaysBetween(c.Start, t.Start))*ppd
		right := math.Min(left+math.Max(float64(t.Days())*ppd, 2), c.Width)
		left = math.Min(left, c.Width-2)
		width := math.Max(right-left, 2)
		barH := opts.RowHeight - 14
		row.Append(element.New("div",
			element.WithClass(ClassBar),
			element.WithID(barID(t.ID)),
			box(left, 7, width, barH),
			element.WithText(fmt.Sprintf("%dd", t.Days())),
		))
		grid.Append(row)

		if _, dup := spans[t.ID]; !dup {
			spans[t.ID] = span{left: left, right: left + width, mid: y + opts.RowHeight/2}
		}
	}

	// Connectors run from the end of the dependency's bar to the start of
	// the dependent bar: across, then down.
	for _, t := range tasks {
		if t.DependsOn == nil {
			continue
		}
		from, ok := spans[*t.DependsOn]
		if !ok || *t.DependsOn == t.ID {
			continue
		}
		to := spans[t.ID]
		elbow := math.Max(from.right, to.left-6)
		grid.Append(element.New("div", element.WithClass(ClassLink), box(from.right, from.mid-1, math.Max(elbow-from.right, 1), 2)))
		top, bottom := from.mid, to.mid
		if top > bottom {
			top, bottom = bottom, top
		}
		grid.Append(element.New("div", element.WithClass(ClassLink), box(elbow, top-1, 2, bottom-top+2)))
		if to.left > elbow+2 {
			grid.Append(element.New("div", element.WithClass(ClassLink), box(elbow, to.mid-1, to.left-elbow, 2)))
		}
	}

	c.Doc = element.NewDocument(body, Sheet(opts.Palette))
	c.Grid = grid
	return c
}
