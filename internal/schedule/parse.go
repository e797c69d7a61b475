package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultStart is used when a line leaves the start field empty.
const DefaultStart = "2025-01-01"

// Parse diagnostics. Dropped lines carry ErrTooFewFields or ErrBadStartDate.
var (
	ErrTooFewFields  = errors.New("expected at least name, start and duration")
	ErrBadStartDate  = errors.New("unparseable start date")
	ErrBadDuration   = errors.New("unparseable duration, using 1 day")
	ErrBadDependency = errors.New("dependency is not an integer id, ignoring it")
	ErrLongDuration  = fmt.Errorf("duration exceeds %d days, capping it", MaxDays)
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Issue describes a line the parser had to recover from.
type Issue struct {
	Line    int // 1-based line number in the source text
	Text    string
	Err     error
	Dropped bool // no task was produced for the line
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %v: %q", i.Line, i.Err, i.Text)
}

// Result is the outcome of parsing a task definition text.
type Result struct {
	Tasks  []Task
	Issues []Issue
}

// Dropped returns the issues for lines that produced no task.
func (r Result) Dropped() []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Dropped {
			out = append(out, is)
		}
	}
	return out
}

// Parse turns task definition text into tasks, one per non-blank line:
//
//	name, start, duration[, owner[, dependsOn]]
//
// Ids follow the position among non-blank lines, so a dropped line still
// consumes its id. Parse never fails; problems are reported as Issues.
func Parse(text string) Result {
	var res Result
	idx := 0
	for n, raw := range lineBreak.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx++
		task, issues := parseLine(idx, n+1, line)
		res.Issues = append(res.Issues, issues...)
		if task != nil {
			res.Tasks = append(res.Tasks, *task)
		}
	}
	return res
}

func parseLine(id, lineNo int, line string) (*Task, []Issue) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 {
		return nil, []Issue{{Line: lineNo, Text: line, Err: ErrTooFewFields, Dropped: true}}
	}

	startField := parts[1]
	if startField == "" {
		startField = DefaultStart
	}
	start, err := ParseDate(startField)
	if err != nil {
		return nil, []Issue{{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrBadStartDate, parts[1]), Dropped: true}}
	}

	var issues []Issue
	durField := parts[2]
	if durField == "" {
		durField = "0d"
	}
	days, ok, capped := parseDuration(durField)
	switch {
	case !ok:
		issues = append(issues, Issue{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrBadDuration, durField)})
	case capped:
		issues = append(issues, Issue{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrLongDuration, durField)})
	}

	var owner string
	if len(parts) > 3 {
		owner = parts[3]
	}

	var dependsOn *int
	if len(parts) > 4 && parts[4] != "" {
		dep, err := strconv.Atoi(parts[4])
		if err != nil {
			issues = append(issues, Issue{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrBadDependency, parts[4])})
		} else {
			dependsOn = &dep
		}
	}

	t := NewTask(id, parts[0], owner, start, days, dependsOn)
	return &t, issues
}

// FormatLine renders t in the task grammar with its duration in days.
func FormatLine(t Task) string {
	fields := []string{t.Name, FormatDate(t.Start), fmt.Sprintf("%dd", t.Days())}
	if t.Owner != "" || t.DependsOn != nil {
		fields = append(fields, t.Owner)
	}
	if t.DependsOn != nil {
		fields = append(fields, strconv.Itoa(*t.DependsOn))
	}
	return strings.Join(fields, ", ")
}

// Format renders tasks one per line.
func Format(tasks []Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = FormatLine(t)
	}
	return strings.Join(lines, "\n")
}
