// Package tui provides the Bubble Tea viewer for bowl layouts.
// It handles the terminal UI loop, input mapping, settle animation and
// serving the viewer over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the viewer by one frame. ID names the viewer
// that scheduled it so a stale tick chain can be dropped.
type TickMsg struct {
	ID   int64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
