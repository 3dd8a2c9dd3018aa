// Package tui provides the Bubble Tea host for the rhythm runtime.
// It drives an engine session from tick messages, maps keys to lanes and
// draws the playfield.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a session tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// releaseMsg ends the highlight of a key. Terminals report presses only, so
// every press is followed by a synthetic release.
type releaseMsg struct {
	key string
	seq int
}

// releaseCmd schedules the release of key. seq identifies the press so that a
// newer press of the same key keeps its highlight.
func releaseCmd(key string, seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return releaseMsg{key: key, seq: seq}
	})
}
