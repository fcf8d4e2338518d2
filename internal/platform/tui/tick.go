// Package tui provides the Bubble Tea integration for Trap Streets.
// It hosts the dodge driver on the terminal tick loop and maps keys to
// held-key state.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trap-streets/internal/core"
)

// TickMsg fires the next frame of the game that scheduled it. A tick from
// an earlier game in the same program is dropped, so only one tick chain
// runs at a time.
type TickMsg struct {
	At   time.Time
	game uint64
}

var gameSeq atomic.Uint64

// nextGameID returns a program-wide unique tick chain owner.
func nextGameID() uint64 {
	return gameSeq.Add(1)
}

// tickCmd schedules the next TickMsg for game one frame from now.
func tickCmd(fps int, game uint64) tea.Cmd {
	if fps <= 0 {
		fps = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, game: game}
	})
}
