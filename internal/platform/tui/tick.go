// Package tui provides the Bubble Tea integration for the pathfinder.
// It handles the terminal UI loop, input mapping, board rendering and the
// SSH front-end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one animated search step.
// Gen ties the tick to the play session that scheduled it; ticks from an
// older session are dropped so pausing and resuming never runs two loops.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
