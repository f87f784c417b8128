// Package tui hosts the snake board in a Bubble Tea program.
// It owns the tick timer, maps keys to actions and paints the board into a
// screen buffer that View renders.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a board tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after 1/tickRate seconds.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts a tick rate into a period. Rates below 1 are treated as 1.
func tickInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(max(1, tickRate))
}
