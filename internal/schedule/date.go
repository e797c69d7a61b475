package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format of the task grammar.
const DateLayout = "2006-01-02"

// Working-day multipliers for the w and m duration units.
const (
	DaysPerWeek  = 5
	DaysPerMonth = 22
)

var durationRegex = regexp.MustCompile(`(?i)^\s*(\d+)\s*([dwm])?\s*$`)

// extra layouts accepted by ParseDate besides DateLayout.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
}

// MaxDays caps a task duration at roughly a century.
const MaxDays = 36600

// ParseDurationToDays converts a duration such as "5d", "2w" or "1m" to a
// number of working days. Input that does not match the grammar yields 1
// and anything longer than MaxDays is capped.
func ParseDurationToDays(s string) int {
	days, _, _ := parseDuration(s)
	return days
}

// parseDuration also reports whether s matched the grammar and whether the
// result was capped at MaxDays.
func parseDuration(s string) (days int, ok, capped bool) {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil {
		return 1, false, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 1, false, false
	}
	mult := 1
	switch strings.ToLower(m[2]) {
	case "w":
		mult = DaysPerWeek
	case "m":
		mult = DaysPerMonth
	}
	if v > MaxDays/mult {
		return MaxDays, true, true
	}
	return v * mult, true, false
}

// ParseDate parses a calendar date in the local time zone and returns it at
// midnight. RFC 3339 timestamps are accepted and truncated to their day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Normalize(t.In(time.Local)), nil
	}
	return time.Time{}, firstErr
}

// FormatDate renders t as YYYY-MM-DD in its own location, so that
// FormatDate(ParseDate(s)) == s.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Normalize truncates t to midnight of its calendar day.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays adds n calendar days to t.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from a to b. Only
// the calendar dates count, so DST shifts and times of day are ignored.
func DaysBetween(a, b time.Time) int {
	return civilDay(b) - civilDay(a)
}

// civilDay numbers the calendar date of t, in t's location, from the Unix
// epoch. Working in UTC seconds keeps distant dates exact where a
// time.Duration would saturate.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// StartOfUnit returns the first day of the day, ISO week or month containing t.
func StartOfUnit(t time.Time, mode ViewMode) time.Time {
	d := Normalize(t)
	switch mode {
	case Month:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	case Week:
		weekday := d.Weekday()
		if weekday == time.Sunday {
			weekday = 7
		}
		return d.AddDate(0, 0, -int(weekday-time.Monday))
	default:
		return d
	}
}

// EndOfUnit returns the last day of the day, ISO week or month containing t.
func EndOfUnit(t time.Time, mode ViewMode) time.Time {
	d := Normalize(t)
	switch mode {
	case Month:
		return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
	case Week:
		return StartOfUnit(d, Week).AddDate(0, 0, 6)
	default:
		return d
	}
}
