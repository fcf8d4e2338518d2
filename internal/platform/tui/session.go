package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
	"github.com/vovakirdan/trap-streets/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel drives one SSH connection through menu, game and scoreboard
// inside a single program. Local play runs each screen as its own program
// instead.
type SessionModel struct {
	cfg   config.DodgeConfig
	store *storage.Store
	rt    core.RuntimeConfig
	opts  GameOptions

	current    sessionScreen
	menu       MenuModel
	game       GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a connection model that starts on the menu.
func NewSessionModel(cfg config.DodgeConfig, store *storage.Store, rt core.RuntimeConfig, opts GameOptions) SessionModel {
	return SessionModel{
		cfg:   cfg,
		store: store,
		rt:    rt,
		opts:  opts,
		menu:  NewMenuModel(store, rt.ScreenW, rt.ScreenH),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return nil
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.rt.ScreenW, m.rt.ScreenH = ws.Width, ws.Height
	}

	var cmd tea.Cmd
	switch m.current {
	case screenGame:
		m.game, cmd = forward(m.game, msg)
		if m.game.IsQuitting() {
			return m.quit()
		}
		if m.game.BackToMenu() {
			return m.showMenu()
		}

	case screenScoreboard:
		m.scoreboard, cmd = forward(m.scoreboard, msg)
		if m.scoreboard.IsQuitting() {
			return m.quit()
		}
		if m.scoreboard.IsGoingBack() {
			return m.showMenu()
		}

	default:
		m.menu, cmd = forward(m.menu, msg)
		switch m.menu.Choice() {
		case ChoiceQuit:
			return m.quit()
		case ChoicePlay:
			m.current = screenGame
			m.game = NewGameModel(m.cfg, m.store, m.rt, m.opts)
			return m, m.game.Init()
		case ChoiceScoreboard:
			m.current = screenScoreboard
			m.scoreboard = NewScoreboardModel(m.store, m.rt.ScreenW, m.rt.ScreenH)
			return m, nil
		}
	}
	return m, cmd
}

// forward passes msg to a child model and keeps its concrete type.
func forward[M tea.Model](child M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := child.Update(msg)
	if n, ok := next.(M); ok {
		child = n
	}
	return child, cmd
}

func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.rt.ScreenW, m.rt.ScreenH)
	return m, nil
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.current == screenGame:
		return m.game.View()
	case m.current == screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
