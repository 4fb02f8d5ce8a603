// Package tui hosts the flappy simulation in a Bubble Tea program.
// It owns the frame clock, maps keys to game actions and switches between
// the menu, play, pause and score scenes. The same App serves a local
// terminal and every SSH session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval returns the wall-clock interval between ticks.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickSeconds returns the fixed simulation step for a tick rate.
// Every tick advances the simulation by the same amount so a run replays
// identically regardless of scheduling jitter.
func tickSeconds(tickRate int) float64 {
	return tickInterval(tickRate).Seconds()
}
