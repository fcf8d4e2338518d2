package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, id string, won bool, score int) {
	t.Helper()
	_, err := store.SaveSession(SessionRecord{SessionID: id, Player: "tester", Won: won, Score: score})
	if err != nil {
		t.Fatalf("SaveSession(%s) failed: %v", id, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "a", true, 30)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	records, err := store.TopSessions(10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(records) != 1 || records[0].SessionID != "a" {
		t.Errorf("expected the saved session after reopen, got %+v", records)
	}
}

func TestStoreTopSessionsOrder(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "lost-12", false, 12)
	save(t, store, "won-30", true, 30)
	save(t, store, "lost-25", false, 25)
	save(t, store, "won-31", true, 31)

	records, err := store.TopSessions(10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}

	want := []string{"won-31", "won-30", "lost-25", "lost-12"}
	if len(records) != len(want) {
		t.Fatalf("Expected %d sessions, got %d", len(want), len(records))
	}
	for i, id := range want {
		if records[i].SessionID != id {
			t.Errorf("rank %d = %s, expected %s", i+1, records[i].SessionID, id)
		}
	}
	if records[0].Result() != "won" || records[3].Result() != "lost" {
		t.Error("Result() should reflect the Won flag")
	}
	if records[0].Player != "tester" {
		t.Errorf("Player = %q, expected tester", records[0].Player)
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopSessionsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		save(t, store, fmt.Sprintf("s%d", i), false, i)
	}

	records, err := store.TopSessions(5)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("Expected 5 sessions, got %d", len(records))
	}

	// Non-positive limit falls back to 10
	records, err = store.TopSessions(0)
	if err != nil {
		t.Fatalf("TopSessions(0) failed: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("Expected 10 sessions, got %d", len(records))
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "first", true, 30)
	save(t, store, "second", false, 3)

	records, err := store.RecentSessions(1)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(records) != 1 || records[0].SessionID != "second" {
		t.Errorf("expected the newest session, got %+v", records)
	}
}

func TestStoreDuplicateSession(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "dup", true, 30)

	if _, err := store.SaveSession(SessionRecord{SessionID: "dup", Score: 1}); err == nil {
		t.Error("Saving the same session twice should fail")
	}
	if _, err := store.SaveSession(SessionRecord{}); err == nil {
		t.Error("Saving a session without an ID should fail")
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty store = %d, expected 0", high)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Played != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	save(t, store, "a", false, 10)
	save(t, store, "b", true, 30)
	save(t, store, "c", false, 20)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("HighScore() = %d, expected 30", high)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Played != 3 || stats.Wins != 1 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("Stats() = %+v, expected 3 played, 1 win, high 30, avg 20", stats)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "a", true, 30)

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}
	records, err := store.TopSessions(10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no sessions after clear, got %d", len(records))
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in       string
		expected string
	}{
		{"~/.arcade/x.db", filepath.Join(home, ".arcade", "x.db")},
		{"/tmp/x.db", "/tmp/x.db"},
		{"rel/x.db", "rel/x.db"},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil {
			t.Fatalf("expandHome(%q) error = %v", tt.in, err)
		}
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
