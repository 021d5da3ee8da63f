package tui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/feedback"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/points"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/spectate"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

// Deps are the collaborators a game session is wired to. Every field is
// optional.
type Deps struct {
	Store     *storage.Store
	Logger    *log.Logger
	Sink      feedback.Sink
	Hub       *spectate.Hub
	SessionID string // Spectator session; empty disables publishing
	Resume    bool   // Continue a saved board if one exists
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// prepareGame attaches persistence, feedback and the spectator feed to a
// board game. Other games are left untouched.
func prepareGame(game registry.Game, d Deps) {
	g, ok := game.(*mindgrid.Game)
	if !ok {
		return
	}
	logger := d.logger()

	g.SetSink(d.Sink)

	var best points.BestStore
	if d.Store != nil {
		best = d.Store
	}
	tracker, err := points.NewTracker(g.ID(), best)
	if err != nil {
		logger.Warn("could not load best score", "game", g.ID(), "error", err)
	}
	g.SetTracker(tracker)

	if d.Hub != nil && d.SessionID != "" {
		g.AddObserver(spectate.Observer[mindgrid.Snapshot](d.Hub, d.SessionID))
	}

	if d.Resume && d.Store != nil {
		data, err := d.Store.LoadResume(g.ID())
		switch {
		case errors.Is(err, storage.ErrNoResume):
		case err != nil:
			logger.Warn("could not load saved board", "game", g.ID(), "error", err)
		default:
			if err := g.LoadState(data); err != nil {
				logger.Warn("discarding saved board", "game", g.ID(), "error", err)
			} else {
				logger.Info("resuming saved board", "game", g.ID())
			}
		}
	}
}

// finishRun records a finished run and drops the saved board.
func finishRun(game registry.Game, d Deps) {
	if d.Store == nil {
		return
	}
	state := game.State()
	maxTile := 0
	if g, ok := game.(*mindgrid.Game); ok {
		maxTile = g.MaxTile()
	}
	if state.Score > 0 {
		if _, err := d.Store.SaveScore(game.ID(), state.Score, state.Moves, maxTile); err != nil {
			d.logger().Warn("could not save score", "game", game.ID(), "error", err)
		}
	}
	if err := d.Store.ClearResume(game.ID()); err != nil {
		d.logger().Warn("could not clear saved board", "game", game.ID(), "error", err)
	}
}

// suspendRun saves an unfinished board so the next session can resume it.
func suspendRun(game registry.Game, d Deps) {
	g, ok := game.(*mindgrid.Game)
	if !ok || d.Store == nil || g.State().GameOver || g.State().Moves == 0 {
		return
	}
	data, err := g.MarshalState()
	if err != nil {
		d.logger().Warn("could not encode board", "game", g.ID(), "error", err)
		return
	}
	if err := d.Store.SaveResume(g.ID(), data); err != nil {
		d.logger().Warn("could not save board", "game", g.ID(), "error", err)
	}
}
