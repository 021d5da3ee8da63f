package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/mindgrid/internal/platform/tui"
	"github.com/vovakirdan/mindgrid/internal/spectate"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeWatch  string
	flagServeURL    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MindGrid SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a board picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mindgrid/host_key

Examples:
  mindgrid serve                           # Listen on :23234 with auto-generated key
  mindgrid serve --ssh :2222               # Listen on port 2222
  mindgrid serve --spectate :8080          # Also stream every session to spectators
  mindgrid serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeWatch, "spectate", "", "Serve a spectator feed for every session on this address")
	serveCmd.Flags().StringVar(&flagServeURL, "spectate-url", "", "Public base URL of the spectator feed")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("mindgrid-ssh", false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	var spectator *spectate.Server
	if flagServeWatch != "" {
		base := flagServeURL
		if base == "" {
			base = "http://localhost" + flagServeWatch
		}
		cfg.Hub = spectate.NewHub(logger)
		spectator = spectate.NewServer(cfg.Hub, base, logger)
		cfg.Spectator = spectator
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting MindGrid SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.ListenAndServe(ctx) })
	if spectator != nil {
		g.Go(func() error { return spectator.ListenAndServe(ctx, flagServeWatch) })
	}
	return g.Wait()
}
