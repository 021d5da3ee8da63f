// Package mindgrid adapts the board engine to the registry.Game interface.
package mindgrid

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mindgrid/internal/board"
	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/feedback"
	"github.com/vovakirdan/mindgrid/internal/points"
	"github.com/vovakirdan/mindgrid/internal/registry"
)

// Variant describes one registered board size.
type Variant struct {
	ID    string
	Title string
	Size  int // 0 takes the size from the board config
}

// Variants lists every registered board, smallest first after the default.
var Variants = []Variant{
	{ID: "mindgrid", Title: "MindGrid", Size: 0},
	{ID: "mindgrid_3x3", Title: "MindGrid 3x3", Size: 3},
	{ID: "mindgrid_5x5", Title: "MindGrid 5x5", Size: 5},
	{ID: "mindgrid_6x6", Title: "MindGrid 6x6", Size: 6},
	{ID: "mindgrid_8x8", Title: "MindGrid 8x8", Size: 8},
}

// Package-level board config shared by new games
var defaultConfig = config.DefaultBoardConfig()

// GridSize returns the side length a new game of this variant plays on.
func (v Variant) GridSize() int {
	if v.Size > 0 {
		return core.Clamp(v.Size, board.MinSize, board.MaxSize)
	}
	return core.Clamp(defaultConfig.Size, board.MinSize, board.MaxSize)
}

// SetDefaultConfig sets the board config used by games created afterwards.
func SetDefaultConfig(cfg config.BoardConfig) {
	cfg.Normalize()
	defaultConfig = cfg
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// Game implements the sliding tile puzzle on an N×N board.
type Game struct {
	variant Variant
	cfg     config.BoardConfig
	engine  *board.Engine
	tick    uint64

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver  bool
	paused    bool
	tooSmall  bool
	targetHit bool // Latched once MaxValue reaches the target

	sink      feedback.Sink
	tracker   *points.Tracker
	observers []func(Snapshot)
	pending   *board.State // Applied by the next Reset
}

// New creates a game for the given variant using the current default config.
func New(v Variant) *Game {
	cfg := defaultConfig
	if v.Size > 0 {
		cfg.Size = v.Size
	}
	cfg.Normalize()
	return &Game{
		variant: v,
		cfg:     cfg,
		sink:    feedback.Discard,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// Size returns the board side length.
func (g *Game) Size() int { return g.cfg.Size }

// Config returns the board config in effect.
func (g *Game) Config() config.BoardConfig { return g.cfg }

// SetSink routes feedback cues to sink. Nil discards them.
func (g *Game) SetSink(sink feedback.Sink) {
	if sink == nil {
		sink = feedback.Discard
	}
	g.sink = sink
}

// SetTracker attaches a score tracker that follows the engine score.
func (g *Game) SetTracker(t *points.Tracker) {
	g.tracker = t
}

// AddObserver registers fn to receive a snapshot after every reset and every
// applied move. Observers run synchronously on the caller's goroutine.
func (g *Game) AddObserver(fn func(Snapshot)) {
	if fn != nil {
		g.observers = append(g.observers, fn)
	}
}

// Engine exposes the underlying board engine.
func (g *Game) Engine() *board.Engine { return g.engine }

// Reset initializes/restarts the game. A state loaded with LoadState
// replaces the fresh board once.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false
	g.targetHit = false

	opts := append(g.cfg.EngineOptions(), board.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	g.engine = board.New(g.cfg.Size, opts...)

	if g.pending != nil {
		state := *g.pending
		g.pending = nil
		if err := g.engine.Restore(state); err == nil {
			g.gameOver = !g.engine.CanMove()
		}
	}
	g.targetHit = g.reachedTarget()

	if g.tracker != nil {
		g.tracker.ResetRun()
		//nolint:errcheck // Best-effort persist, game continues regardless
		g.tracker.Set(g.engine.Score())
	}

	g.checkScreenSize()
	g.notify()
}

// Resize updates the layout for a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// MaxTile returns the largest value on the board.
func (g *Game) MaxTile() int {
	if g.engine == nil {
		return 0
	}
	return g.engine.MaxValue()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	w, h := boardDims(g.cfg.Size)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Step advances the game by one tick. At most one direction is applied.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
		g.notify()
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	report := g.engine.Step(dir)
	canMove := true
	newTarget := false
	if report.Changed {
		canMove = g.engine.CanMove()
		g.gameOver = !canMove
		if !g.targetHit && g.reachedTarget() {
			g.targetHit = true
			newTarget = true
		}
		if g.tracker != nil {
			//nolint:errcheck // Best-effort persist, game continues regardless
			g.tracker.Set(g.engine.Score())
		}
	}

	feedback.PlayAll(g.sink, feedback.CuesFor(report, canMove, newTarget))
	g.notify()

	return core.StepResult{State: g.State(), Changed: report.Changed}
}

// directionFor picks the first direction present in the frame.
func directionFor(in core.InputFrame) (board.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return board.Up, true
	case in.Has(core.ActionDown):
		return board.Down, true
	case in.Has(core.ActionLeft):
		return board.Left, true
	case in.Has(core.ActionRight):
		return board.Right, true
	}
	return board.Left, false
}

func (g *Game) reachedTarget() bool {
	return g.cfg.Target > 0 && g.engine.MaxValue() >= g.cfg.Target
}

// TargetReached reports whether the target tile appeared during this run.
func (g *Game) TargetReached() bool { return g.targetHit }

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Moves:    g.engine.Moves(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// MarshalState serializes the board for a later LoadState.
func (g *Game) MarshalState() ([]byte, error) {
	if g.engine == nil {
		return nil, fmt.Errorf("mindgrid: game not started")
	}
	data, err := json.Marshal(g.engine.State())
	if err != nil {
		return nil, fmt.Errorf("mindgrid: encode state: %w", err)
	}
	return data, nil
}

// LoadState queues a serialized board to replace the next fresh board. A
// board of a different size than this variant is rejected.
func (g *Game) LoadState(data []byte) error {
	var state board.State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("mindgrid: decode state: %w", err)
	}
	if state.Size != g.cfg.Size {
		return fmt.Errorf("mindgrid: saved board is %dx%d, want %dx%d", state.Size, state.Size, g.cfg.Size, g.cfg.Size)
	}
	if len(state.Cells) != state.Size*state.Size {
		return fmt.Errorf("mindgrid: saved board has %d cells", len(state.Cells))
	}
	g.pending = &state
	return nil
}

func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	snap := g.Snapshot()
	for _, fn := range g.observers {
		fn(snap)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Move | P: Pause | R: Restart | Q: Quit"
}
