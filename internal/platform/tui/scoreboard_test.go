package tui

import (
	"strings"
	"testing"
)

func TestScoreboardTabsOrderedBySize(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)

	if len(m.boards) == 0 {
		t.Fatal("expected board tabs")
	}
	for i := 1; i < len(m.boards); i++ {
		if m.boards[i-1].size > m.boards[i].size {
			t.Errorf("tabs not ordered by size: %s before %s", m.boards[i-1].label(), m.boards[i].label())
		}
	}
	if m.boards[0].label() != "3x3" {
		t.Errorf("first tab = %s, want 3x3", m.boards[0].label())
	}
}

func TestScoreboardSwitchWraps(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	last := m.boards[len(m.boards)-1].label()

	next, _ := m.Update(keyMsg("left"))
	m = next.(ScoreboardModel)
	if got := m.boards[m.current].label(); got != last {
		t.Errorf("left from first tab = %s, want %s", got, last)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.current != 0 {
		t.Errorf("tab from last tab should wrap to first, got %d", m.current)
	}
}

func TestScoreboardShowsRunsAndStats(t *testing.T) {
	deps := testDeps(t)
	deps.Store.SaveScore("mindgrid_3x3", 120, 40, 32)
	deps.Store.SaveScore("mindgrid_3x3", 60, 0, 8)

	m := NewScoreboardModel(deps.Store, 120, 30)
	if got := m.boards[0].variant.ID; got != "mindgrid_3x3" {
		t.Fatalf("first board = %s", got)
	}
	if m.boards[0].best != 120 {
		t.Errorf("tab best = %d, want 120", m.boards[0].best)
	}

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "120" || rows[0][4] != "3.0" {
		t.Errorf("top row = %v", rows[0])
	}
	if rows[1][4] != "-" {
		t.Errorf("run without moves should show -, got %q", rows[1][4])
	}

	view := m.View()
	for _, want := range []string{"MindGrid 3x3", "Runs      2", "Average   90"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardEmptyBoard(t *testing.T) {
	m := NewScoreboardModel(testDeps(t).Store, 100, 30)
	if !strings.Contains(m.View(), "No finished runs") {
		t.Error("empty board should say there are no runs")
	}

	next, cmd := m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should leave the scoreboard")
	}
}
