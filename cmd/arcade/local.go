package main

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
	"github.com/vovakirdan/trap-streets/internal/platform/tui"
	"github.com/vovakirdan/trap-streets/internal/storage"
)

// localSession is what the full-screen commands share: the gameplay
// config, a file logger and the sessions database.
type localSession struct {
	game    config.DodgeConfig
	opts    tui.GameOptions
	store   *storage.Store // Nil when the database could not be opened
	logFile *os.File
}

// openLocal prepares a local session. The terminal belongs to Bubble Tea,
// so logs go to ~/.arcade/trapstreets.log, or nowhere if that fails.
func openLocal() (*localSession, error) {
	game, preset, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	l := &localSession{game: game}
	var w io.Writer = io.Discard
	if l.logFile = openLogFile(); l.logFile != nil {
		w = l.logFile
	}
	logger, err := newLogger(w)
	if err != nil {
		l.Close()
		return nil, err
	}

	if l.store, err = storage.Open(flagDBPath); err != nil {
		logger.Warn("could not open sessions database", "path", flagDBPath, "error", err)
	}
	l.opts = tui.GameOptions{
		Player:     localPlayer(),
		Difficulty: string(preset),
		Logger:     logger,
	}
	return l, nil
}

func openLogFile() *os.File {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "trapstreets.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}
	return f
}

// Close releases the database and the log file.
func (l *localSession) Close() {
	if l.store != nil {
		l.store.Close()
	}
	if l.logFile != nil {
		l.logFile.Close()
	}
}

// runtime reads the terminal size on every call so each screen opens at
// the current size. It falls back to 80x24 when stdout is not a terminal.
func (l *localSession) runtime() core.RuntimeConfig {
	rt := core.DefaultRuntime()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	return rt
}

// localPlayer names the local player in recorded sessions.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
