// Package tui provides the Bubble Tea integration for the warp platform.
// It handles the terminal UI loop, input mapping, the HUD and scene orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers a simulation tick. It carries the wall-clock time the
// tick fired at and the flight that scheduled it; a flight ignores ticks
// scheduled by an earlier one, so each flight runs a single tick chain.
type TickMsg struct {
	Time   time.Time
	Flight uint64
}

var lastFlightID atomic.Uint64

// nextFlightID numbers flights across all sessions in the process.
func nextFlightID() uint64 {
	return lastFlightID.Add(1)
}

// tickCmd schedules the next tick of a flight at the given rate.
func tickCmd(tickRate int, flight uint64) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Flight: flight}
	})
}
