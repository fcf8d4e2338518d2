package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("229")
	border = lipgloss.Color("240")
	muted  = lipgloss.Color("241")

	logoStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	noteStyle  = lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(2, 4)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
)

// centerText left-pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// runProgram runs m full screen and returns the final model. ok is false
// if the program ended with a model of another type.
func runProgram[M tea.Model](m M) (final M, ok bool, err error) {
	out, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return final, false, err
	}
	final, ok = out.(M)
	return final, ok, nil
}
