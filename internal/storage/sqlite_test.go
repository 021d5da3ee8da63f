package storage

import (
	"errors"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		game    string
		score   int
		moves   int
		maxTile int
	}{
		{"mindgrid", 100, 20, 64},
		{"mindgrid", 50, 10, 32},
		{"mindgrid", 200, 40, 128},
		{"mindgrid_5x5", 500, 90, 256},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.game, r.score, r.moves, r.maxTile); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("mindgrid", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Moves != 40 || scores[0].MaxTile != 128 {
		t.Errorf("top entry = %+v, want moves 40 and max tile 128", scores[0])
	}

	other, err := store.TopScores("mindgrid_5x5", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 || other[0].Score != 500 {
		t.Errorf("Expected a single 500 entry, got %+v", other)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveScore("mindgrid", i*10, i, 2); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("mindgrid", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("mindgrid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	store.SaveScore("mindgrid", 120, 10, 32)
	store.SaveScore("mindgrid", 340, 30, 64)

	high, err = store.HighScore("mindgrid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 340 {
		t.Errorf("Expected 340, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("mindgrid", 100, 1, 4)
	store.SaveScore("mindgrid_3x3", 200, 1, 4)

	if err := store.ClearScores("mindgrid"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("mindgrid", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	other, _ := store.TopScores("mindgrid_3x3", 10)
	if len(other) != 1 {
		t.Errorf("Expected other game untouched, got %d scores", len(other))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("mindgrid")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("mindgrid", 100, 10, 64)
	store.SaveScore("mindgrid", 300, 30, 256)

	stats, err := store.GameStats("mindgrid")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.BestTile != 256 {
		t.Errorf("BestTile = %d, want 256", stats.BestTile)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStorePrefs(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.GetPref("play_url"); err != nil || ok {
		t.Fatalf("GetPref() on missing key = ok %v, err %v", ok, err)
	}

	if err := store.SetPref("play_url", "https://a.example"); err != nil {
		t.Fatalf("SetPref() failed: %v", err)
	}
	if err := store.SetPref("play_url", "https://b.example"); err != nil {
		t.Fatalf("SetPref() overwrite failed: %v", err)
	}

	v, ok, err := store.GetPref("play_url")
	if err != nil || !ok {
		t.Fatalf("GetPref() = ok %v, err %v", ok, err)
	}
	if v != "https://b.example" {
		t.Errorf("GetPref() = %q, want overwritten value", v)
	}

	if err := store.DeletePref("play_url"); err != nil {
		t.Fatalf("DeletePref() failed: %v", err)
	}
	if _, ok, _ := store.GetPref("play_url"); ok {
		t.Error("Expected key to be gone after DeletePref")
	}
	if err := store.DeletePref("play_url"); err != nil {
		t.Errorf("DeletePref() on missing key failed: %v", err)
	}

	store.SetPref("a", "1")
	store.SetPref("b", "2")
	if err := store.ClearPrefs(); err != nil {
		t.Fatalf("ClearPrefs() failed: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, ok, _ := store.GetPref(k); ok {
			t.Errorf("Expected %q to be cleared", k)
		}
	}
}

func TestStoreResume(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadResume("mindgrid"); !errors.Is(err, ErrNoResume) {
		t.Fatalf("LoadResume() err = %v, want ErrNoResume", err)
	}

	if err := store.SaveResume("mindgrid", []byte(`{"size":4}`)); err != nil {
		t.Fatalf("SaveResume() failed: %v", err)
	}
	if err := store.SaveResume("mindgrid", []byte(`{"size":5}`)); err != nil {
		t.Fatalf("SaveResume() overwrite failed: %v", err)
	}

	data, err := store.LoadResume("mindgrid")
	if err != nil {
		t.Fatalf("LoadResume() failed: %v", err)
	}
	if string(data) != `{"size":5}` {
		t.Errorf("LoadResume() = %s, want latest state", data)
	}

	if err := store.ClearResume("mindgrid"); err != nil {
		t.Fatalf("ClearResume() failed: %v", err)
	}
	if _, err := store.LoadResume("mindgrid"); !errors.Is(err, ErrNoResume) {
		t.Errorf("LoadResume() after clear err = %v, want ErrNoResume", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.mindgrid/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".mindgrid", "test.db")); err != nil {
		t.Errorf("Expected database under home dir: %v", err)
	}
}
