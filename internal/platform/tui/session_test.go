package tui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return Deps{Store: store, Logger: log.New(io.Discard)}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 30, Seed: 7}
}

// tick feeds one key and one tick through the model.
func tick(t *testing.T, m GameModel, key string) GameModel {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	m = next.(GameModel)
	next, _ = m.Update(TickMsg{})
	return next.(GameModel)
}

func TestSuspendAndResume(t *testing.T) {
	deps := testDeps(t)

	m := NewGameModel(mindgrid.New(mindgrid.Variants[0]), deps, testRuntime())
	m.Start()
	for _, k := range []string{"left", "up", "right", "down"} {
		m = tick(t, m, k)
	}
	if m.gameState.Moves == 0 {
		t.Skip("seeded board did not move")
	}
	played := m.game.(*mindgrid.Game).Engine().Values()

	next, _ := m.Update(keyMsg("q"))
	if !next.(GameModel).IsQuitting() {
		t.Fatal("q should quit")
	}
	if _, err := deps.Store.LoadResume("mindgrid"); err != nil {
		t.Fatalf("board was not saved: %v", err)
	}

	resumed := deps
	resumed.Resume = true
	m2 := NewGameModel(mindgrid.New(mindgrid.Variants[0]), resumed, testRuntime())
	m2.Start()
	got := m2.game.(*mindgrid.Game).Engine().Values()
	for i := range played {
		if played[i] != got[i] {
			t.Fatalf("resumed board %v, want %v", got, played)
		}
	}
}

func TestFinishRunRecordsScore(t *testing.T) {
	deps := testDeps(t)
	g := mindgrid.New(mindgrid.Variants[0])
	prepareGame(g, deps)
	g.Reset(testRuntime())

	in := core.NewInputFrame()
	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		in.Clear()
		in.Set(a)
		g.Step(in)
	}

	if err := deps.Store.SaveResume(g.ID(), []byte("{}")); err != nil {
		t.Fatalf("SaveResume() failed: %v", err)
	}
	finishRun(g, deps)

	if _, err := deps.Store.LoadResume(g.ID()); !errors.Is(err, storage.ErrNoResume) {
		t.Errorf("saved board should be cleared, err = %v", err)
	}
	if g.State().Score > 0 {
		high, _ := deps.Store.HighScore(g.ID())
		if high != g.State().Score {
			t.Errorf("HighScore = %d, want %d", high, g.State().Score)
		}
	}
}

func TestBackLeavesGame(t *testing.T) {
	m := NewGameModel(mindgrid.New(mindgrid.Variants[0]), Deps{Logger: log.New(io.Discard)}, testRuntime())
	m.Start()

	next, _ := m.Update(keyMsg("esc"))
	if !next.(GameModel).BackToMenu() {
		t.Error("esc should return to menu")
	}

	m.standalone = true
	next, cmd := m.Update(keyMsg("esc"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("esc should quit when playing without a menu")
	}
}

func TestGameViewHasHelp(t *testing.T) {
	m := NewGameModel(mindgrid.New(mindgrid.Variants[0]), Deps{}, testRuntime())
	m.Start()

	view := m.View()
	if !strings.Contains(view, "Score") {
		t.Error("view should contain the HUD")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should contain the help line")
	}
}

func TestSessionMenuToGame(t *testing.T) {
	deps := testDeps(t)
	s := NewSessionModel(deps, testRuntime())

	next, _ := s.Update(keyMsg("enter"))
	s = next.(SessionModel)
	if s.gameModel == nil {
		t.Fatal("enter should start the selected board")
	}

	next, _ = s.Update(keyMsg("esc"))
	s = next.(SessionModel)
	if s.gameModel != nil {
		t.Error("esc should return to the menu")
	}

	next, _ = s.Update(keyMsg("tab"))
	s = next.(SessionModel)
	if s.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	next, _ = s.Update(keyMsg("esc"))
	s = next.(SessionModel)
	if s.scoreboard != nil {
		t.Error("esc should leave the scoreboard")
	}

	_, cmd := s.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}
