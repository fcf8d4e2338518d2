package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trap-streets/internal/storage"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScoreboard
	ChoiceQuit
)

var menuEntries = []struct {
	label  string
	choice MenuChoice
}{
	{"Play", ChoicePlay},
	{"Scoreboard", ChoiceScoreboard},
	{"Quit", ChoiceQuit},
}

const menuControls = "↑/↓ move · enter select · tab scores · q quit"

// MenuModel is the title screen. It closes as soon as a choice is made.
type MenuModel struct {
	cursor  int
	width   int
	summary string // Stats line, empty before the first session
	choice  MenuChoice
}

// NewMenuModel creates a menu. A nil store shows no stats.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	m := MenuModel{width: width}
	if store == nil {
		return m
	}
	if st, err := store.Stats(); err == nil && st.Played > 0 {
		m.summary = fmt.Sprintf("played %d · won %d · best %ds", st.Played, st.Wins, st.HighScore)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(menuEntries)-1)
		case MenuActionSelect:
			return m.pick(menuEntries[m.cursor].choice)
		case MenuActionScoreboard:
			return m.pick(ChoiceScoreboard)
		case MenuActionQuit:
			return m.pick(ChoiceQuit)
		}
	}
	return m, nil
}

func (m MenuModel) pick(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	lines := []string{
		"",
		logoStyle.Render("T R A P   S T R E E T S"),
		"",
		"Dodge the traffic for 30 seconds",
		"",
	}
	for i, e := range menuEntries {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		lines = append(lines, marker+e.label)
	}
	if m.summary != "" {
		lines = append(lines, "", m.summary)
	}
	lines = append(lines, "", helpStyle.Render(menuControls))

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Choice returns what the user picked, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// RunMenu shows the menu in the local terminal. Closing it without a
// choice counts as quitting.
func RunMenu(store *storage.Store, width, height int) (MenuChoice, error) {
	m, ok, err := runProgram(NewMenuModel(store, width, height))
	if err != nil {
		return ChoiceQuit, err
	}
	if !ok || m.Choice() == ChoiceNone {
		return ChoiceQuit, nil
	}
	return m.Choice(), nil
}
