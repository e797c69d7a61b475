package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ViewMode is the calendar granularity used to bucket the chart.
type ViewMode string

const (
	Day   ViewMode = "day"
	Week  ViewMode = "week"
	Month ViewMode = "month"
)

// ViewModes lists the modes in cycling order.
var ViewModes = []ViewMode{Day, Week, Month}

var ErrUnknownViewMode = errors.New("unknown view mode")

// ParseViewMode resolves user input such as "Week" to a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	}
	return "", fmt.Errorf("%w: %q (want day, week or month)", ErrUnknownViewMode, s)
}

// Next returns the mode after m in ViewModes, wrapping around.
func (m ViewMode) Next() ViewMode {
	for i, v := range ViewModes {
		if v == m {
			return ViewModes[(i+1)%len(ViewModes)]
		}
	}
	return Week
}

func (m ViewMode) String() string { return string(m) }

// Bucket is an inclusive calendar range: one day, ISO week or month.
type Bucket struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive length of the bucket.
func (b Bucket) Days() int {
	return DaysBetween(b.Start, b.End) + 1
}

// Contains reports whether t falls on a day inside the bucket.
func (b Bucket) Contains(t time.Time) bool {
	return DaysBetween(b.Start, t) >= 0 && DaysBetween(t, b.End) >= 0
}

// Overlaps reports whether [start, end] shares at least one day with b.
func (b Bucket) Overlaps(start, end time.Time) bool {
	return DaysBetween(start, b.End) >= 0 && DaysBetween(b.Start, end) >= 0
}

// BucketOf returns the bucket containing t.
func BucketOf(t time.Time, mode ViewMode) Bucket {
	return Bucket{Start: StartOfUnit(t, mode), End: EndOfUnit(t, mode)}
}

// MaxBuckets is the most buckets a timeline enumerates.
const MaxBuckets = 1000

// Buckets enumerates consecutive buckets from the one containing from up to
// and including the one containing to, stopping after limit buckets when
// limit is positive. truncated reports that the range ran past the limit.
// It returns nil when to precedes from.
func Buckets(from, to time.Time, mode ViewMode, limit int) (out []Bucket, truncated bool) {
	if DaysBetween(from, to) < 0 {
		return nil, false
	}
	b := BucketOf(from, mode)
	for DaysBetween(b.Start, to) >= 0 {
		if limit > 0 && len(out) == limit {
			return out, true
		}
		out = append(out, b)
		b = BucketOf(AddDays(b.End, 1), mode)
	}
	return out, false
}

// Label is the short header text for the bucket.
func (b Bucket) Label(mode ViewMode) string {
	switch mode {
	case Month:
		return b.Start.Format("Jan 2006")
	case Week:
		_, wk := b.Start.ISOWeek()
		return fmt.Sprintf("W%02d %s", wk, b.Start.Format("Jan 02"))
	default:
		return b.Start.Format("Mon 02")
	}
}
