package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/feedback"
	"github.com/vovakirdan/mindgrid/internal/platform/tui"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/spectate"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

// prefFeedback stores "off" when cues are disabled.
const prefFeedback = "mindgrid.feedback"

var (
	flagResume       bool
	flagNoFeedback   bool
	flagSpectateAddr string
	flagSpectateURL  string
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board variant. Without a board, a menu lets you
pick one and returns to it after each run.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  P/Space           - Pause
  R                 - Restart
  Esc/B             - Back to menu
  Q/Ctrl+C          - Quit (an unfinished board is kept for --resume)

Examples:
  mindgrid play
  mindgrid play mindgrid_5x5
  mindgrid play mindgrid --resume
  mindgrid play --spectate :8080
  mindgrid play --config ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved board if there is one")
	playCmd.Flags().BoolVar(&flagNoFeedback, "no-feedback", false, "Disable the terminal bell on merges and game over")
	playCmd.Flags().StringVar(&flagSpectateAddr, "spectate", "", "Serve a read-only spectator feed on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagSpectateURL, "spectate-url", "", "Public base URL of the spectator feed (default http://localhost<addr>)")
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown board %q, run 'mindgrid list' to see available boards", args[0])
	}

	logger, closeLog, err := newLogger("mindgrid", true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Storage failures are not fatal: the game runs without persistence.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Store:  store,
		Logger: logger,
		Sink:   newFeedback(store, logger),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagSpectateAddr != "" {
		if err := startSpectator(ctx, &deps, logger); err != nil {
			return err
		}
		defer deps.Hub.End(deps.SessionID)
	}

	cfg := runtimeConfig()

	if len(args) == 1 {
		game, err := registry.Create(args[0])
		if err != nil {
			return err
		}
		deps.Resume = flagResume
		return tui.Run(game, deps, cfg)
	}
	return runMenuLoop(store, deps, cfg)
}

// runMenuLoop shows the menu until the user quits, playing each chosen board.
func runMenuLoop(store *storage.Store, deps tui.Deps, cfg core.RuntimeConfig) error {
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			deps.Logger.Error("cannot create board", "game", result.GameID, "error", err)
			continue
		}

		runDeps := deps
		runDeps.Resume = result.Resume || flagResume
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, runDeps, cfg); err != nil {
			return err
		}
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newFeedback builds the cue sink, honouring --no-feedback and the stored
// preference.
func newFeedback(store *storage.Store, logger *log.Logger) *feedback.Toggle {
	sink := feedback.NewToggle(feedback.Multi{
		feedback.LogSink{Logger: logger},
		feedback.BellSink{W: os.Stdout},
	})

	enabled := !flagNoFeedback
	if store != nil {
		if v, ok, err := store.GetPref(prefFeedback); err == nil && ok && v == "off" {
			enabled = false
		}
	}
	sink.SetEnabled(enabled)
	return sink
}

// startSpectator serves the spectator feed and prints where to watch.
func startSpectator(ctx context.Context, deps *tui.Deps, logger *log.Logger) error {
	base := flagSpectateURL
	if base == "" {
		base = "http://localhost" + flagSpectateAddr
	}

	hub := spectate.NewHub(logger)
	server := spectate.NewServer(hub, base, logger)
	go func() {
		if err := server.ListenAndServe(ctx, flagSpectateAddr); err != nil {
			logger.Error("spectator feed stopped", "error", err)
		}
	}()

	deps.Hub = hub
	deps.SessionID = spectate.NewSessionID()

	watch := server.WatchURL(deps.SessionID)
	fmt.Printf("Spectators can watch at %s\n\n", watch)
	if qr, err := spectate.QRCodeTerminal(watch); err == nil {
		fmt.Println(qr)
	}
	fmt.Print("Press Enter to start...")
	_, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}
