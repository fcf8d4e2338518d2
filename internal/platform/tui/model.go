package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
	"github.com/vovakirdan/trap-streets/internal/dodge"
	"github.com/vovakirdan/trap-streets/internal/storage"
)

// GameOptions tune how a GameModel hosts sessions.
type GameOptions struct {
	Player     string      // Name recorded with each finished session
	Difficulty string      // Preset name recorded with each finished session
	Logger     *log.Logger // Nil discards
	Clock      dodge.Clock // Nil uses the system clock
}

// gameRun is one driver session hosted by the model. Model values are
// copied by Bubble Tea, so everything the driver callbacks touch lives here.
type gameRun struct {
	driver  *dodge.Driver
	queue   *dodge.FrameQueue
	keys    *core.KeyState
	cleanup func()

	score     int
	remaining int
	done      bool
	won       bool
	saved     bool
}

func (r *gameRun) progress(score, remaining int) {
	r.score = score
	r.remaining = remaining
}

func (r *gameRun) outcome(won bool, score int) {
	r.done = true
	r.won = won
	r.score = score
}

// GameModel is the Bubble Tea model that runs Trap Streets sessions.
// Each TickMsg fires one driver frame; 'r' starts a new session once the
// current one is over.
type GameModel struct {
	id     uint64 // Owner of the tick chain
	cfg    config.DodgeConfig
	rt     core.RuntimeConfig
	opts   GameOptions
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	clock  dodge.Clock
	keys   GameKeyMap
	help   help.Model

	run        *gameRun
	startErr   error
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model and starts its first session on a screen of
// the terminal size in rt. One row is kept for the key help.
func NewGameModel(cfg config.DodgeConfig, store *storage.Store, rt core.RuntimeConfig, opts GameOptions) GameModel {
	rt = rt.Normalized()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = dodge.SystemClock{}
	}

	h := help.New()
	h.Width = rt.ScreenW

	m := GameModel{
		id:     nextGameID(),
		cfg:    cfg,
		rt:     rt,
		opts:   opts,
		screen: core.NewScreen(rt.ScreenW, rt.ScreenH-1),
		store:  store,
		logger: logger,
		clock:  clock,
		keys:   DefaultGameKeyMap(),
		help:   h,
	}
	m.start()
	return m
}

// start replaces the current session with a fresh one.
func (m *GameModel) start() {
	if m.run != nil {
		m.run.cleanup()
	}

	r := &gameRun{
		queue:   dodge.NewFrameQueue(),
		keys:    core.NewKeyState(),
		cleanup: func() {},
	}
	r.driver = dodge.NewDriver(m.cfg,
		dodge.WithClock(m.clock),
		dodge.WithScheduler(r.queue),
		dodge.WithInput(r.keys),
		dodge.WithLogger(m.logger),
		dodge.WithSeed(m.rt.Seed),
	)

	m.screen.Clear()
	surface := dodge.NewScreenSurface(m.screen, m.cfg.Canvas.Width, m.cfg.Canvas.Height)
	surface.Hint = "r: restart  esc: menu  q: quit"

	cleanup, err := r.driver.Start(surface, r.outcome, r.progress)
	m.run = r
	m.startErr = err
	if err != nil {
		return
	}
	r.cleanup = cleanup
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.rt.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.game != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.run.cleanup()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.run.cleanup()
		m.backToMenu = true
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.run.done {
			m.start()
		}
		return m, nil
	}

	if name, opposite, ok := DriverKey(msg); ok {
		now := m.clock.Now()
		for _, o := range opposite {
			m.run.keys.Release(o)
		}
		m.run.keys.PressAt(name, now)
	}

	return m, nil
}

// handleResize resizes the screen. The running session keeps its canvas;
// only the scaling changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.rt.ScreenW, m.rt.ScreenH = msg.Width, msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.help.Width = msg.Width

	// A terminal that was too small may now fit a session
	if m.startErr != nil {
		m.start()
	}

	return m, nil
}

// handleTick releases keys that stopped repeating, then fires one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	r := m.run
	r.keys.ReleaseStale(m.clock.Now(), m.cfg.RepeatDelay(), m.cfg.HoldWindow())
	r.queue.Fire()

	if r.done && !r.saved {
		m.saveOutcome(r)
		r.saved = true
	}

	return m, tickCmd(m.rt.TickRate, m.id)
}

// saveOutcome records a finished session. Storage is best-effort.
func (m GameModel) saveOutcome(r *gameRun) {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveSession(storage.SessionRecord{
		SessionID:  r.driver.SessionID(),
		Player:     m.opts.Player,
		Won:        r.won,
		Score:      r.score,
		Difficulty: m.opts.Difficulty,
	})
	if err != nil {
		m.logger.Warn("could not save session", "session", r.driver.SessionID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("trapstreets_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.startErr != nil {
		msg := fmt.Sprintf("Cannot start: %v\nResize the terminal or press q to quit.", m.startErr)
		return lipgloss.NewStyle().Padding(1, 2).Render(msg)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Phase returns the phase of the current session.
func (m GameModel) Phase() dodge.Phase {
	return m.run.driver.Phase()
}

// Snapshot returns the current session state.
func (m GameModel) Snapshot() dodge.Frame {
	return m.run.driver.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays sessions in the local terminal until the user quits or goes
// back. Returns true if the user asked for the menu.
func Run(cfg config.DodgeConfig, store *storage.Store, rt core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(cfg, store, rt, opts)
	model.exitOnBack = true

	m, ok, err := runProgram(model)
	if err != nil || !ok {
		return false, err
	}
	return m.BackToMenu(), nil
}
