package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledNotifierIsSilent(t *testing.T) {
	n := New(false)
	n.send = func(string, string) error {
		t.Fatal("disabled notifier should not send")
		return nil
	}
	require.NoError(t, n.ExportComplete("/tmp/gantt.png", 10, 10))
	assert.False(t, n.IsEnabled())
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.Notify("a", "b"))
	assert.False(t, n.IsEnabled())
}

func TestExportCompleteMessage(t *testing.T) {
	n := New(true)
	var title, msg string
	n.send = func(tt, m string) error {
		title, msg = tt, m
		return nil
	}
	require.NoError(t, n.ExportComplete("/tmp/gantt.png", 800, 600))
	assert.True(t, n.IsEnabled())
	assert.Equal(t, "Gantt exported", title)
	assert.Equal(t, "Saved 800x600 chart to /tmp/gantt.png", msg)
}
