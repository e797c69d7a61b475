// Package notify provides desktop notification utilities.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications when enabled.
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

// New creates a notifier. A disabled notifier never calls the desktop.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: desktop}
}

func desktop(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n == nil || !n.enabled {
		return nil
	}
	return n.send(title, message)
}

// ExportComplete announces a written PNG.
func (n *Notifier) ExportComplete(path string, width, height int) error {
	return n.Notify("Gantt exported", fmt.Sprintf("Saved %dx%d chart to %s", width, height, path))
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}
