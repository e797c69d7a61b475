package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/gantt/internal/schedule"
)

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Theme is the persisted light/dark flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q (want light or dark)", ErrUnknownTheme, s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) Dark() bool { return t == ThemeDark }

// NewTask is the input of Board.AddTask, typically filled from the add-task
// dialog.
type NewTask struct {
	Name      string
	Start     string
	Duration  string
	Owner     string
	DependsOn *int
}

// Snapshot is what the presentation layer reads from the board.
type Snapshot struct {
	RawText  string
	Tasks    []schedule.Task
	ViewMode schedule.ViewMode
}
