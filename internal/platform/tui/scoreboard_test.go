package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trap-streets/internal/storage"
)

func scoreboardSend(m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardViews(t *testing.T) {
	store := openTestStore(t)
	for _, rec := range []storage.SessionRecord{
		{SessionID: "first", Player: "ann", Score: 12},
		{SessionID: "second", Player: "bob", Won: true, Score: 30},
		{SessionID: "third", Score: 25},
	} {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if m.view != ViewTop || len(m.sessions) != 3 {
		t.Fatalf("view = %v with %d sessions, expected Top with 3", m.view, len(m.sessions))
	}
	if m.sessions[0].SessionID != "second" {
		t.Errorf("top session = %q, expected the win", m.sessions[0].SessionID)
	}

	m = scoreboardSend(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != ViewRecent {
		t.Fatalf("view = %v, expected Recent", m.view)
	}
	if len(m.sessions) != 3 {
		t.Errorf("recent sessions = %d, expected 3", len(m.sessions))
	}

	v := m.View()
	for _, want := range []string{"Recent sessions", "Win rate", "bob"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardNarrowHidesStats(t *testing.T) {
	m := NewScoreboardModel(openTestStore(t), 60, 30)
	v := m.View()
	if strings.Contains(v, "Win rate") || strings.Contains(v, "No sessions yet") {
		t.Error("narrow scoreboard should not show the stats panel")
	}
	if !strings.Contains(v, "No sessions recorded yet") {
		t.Errorf("empty scoreboard should say so:\n%s", v)
	}
}

func TestScoreboardExitKeys(t *testing.T) {
	m := scoreboardSend(NewScoreboardModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back, not quit")
	}

	m = scoreboardSend(NewScoreboardModel(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() || m.IsGoingBack() {
		t.Error("q should quit, not go back")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionRow(t *testing.T) {
	rec := storage.SessionRecord{
		Won:       true,
		Score:     30,
		CreatedAt: time.Date(2026, 3, 4, 5, 6, 0, 0, time.Local),
	}
	row := sessionRow(2, rec)
	expected := []string{"2", "-", "won", "30s", "-", "Mar 04 05:06"}
	for i := range expected {
		if row[i] != expected[i] {
			t.Errorf("column %d = %q, expected %q", i, row[i], expected[i])
		}
	}
}
