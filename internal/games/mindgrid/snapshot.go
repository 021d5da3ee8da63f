package mindgrid

import "github.com/vovakirdan/mindgrid/internal/board"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and
// for the spectator feed.
type Snapshot struct {
	Game      string           `json:"game"`
	Tick      uint64           `json:"tick"`
	Size      int              `json:"size"`
	Score     int              `json:"score"`
	Best      int              `json:"best"`
	Moves     int              `json:"moves"`
	Values    []int            `json:"values"`
	Locked    []bool           `json:"locked"`
	IDs       []uint64         `json:"ids"`
	MaxValue  int              `json:"max_value"`
	Target    int              `json:"target"`
	TargetHit bool             `json:"target_hit"`
	State     GameStateType    `json:"state"`
	Report    board.StepReport `json:"report"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Game:      g.variant.ID,
		Tick:      g.tick,
		Size:      g.cfg.Size,
		Target:    g.cfg.Target,
		TargetHit: g.targetHit,
		State:     state,
	}
	if g.tracker != nil {
		snap.Best = g.tracker.Best()
	}
	if g.engine == nil {
		return snap
	}

	cells := g.engine.Cells()
	snap.Values = make([]int, len(cells))
	snap.Locked = make([]bool, len(cells))
	snap.IDs = make([]uint64, len(cells))
	for i, c := range cells {
		snap.Values[i] = c.Value
		snap.Locked[i] = c.Locked
		snap.IDs[i] = c.ID
	}
	snap.Score = g.engine.Score()
	snap.Moves = g.engine.Moves()
	snap.MaxValue = g.engine.MaxValue()
	snap.Report = g.engine.LastReport()
	return snap
}
