// mindgrid is a terminal tile-merging puzzle played on a square grid.
//
// Usage:
//
//	mindgrid list              - List board variants
//	mindgrid play [board]      - Play a board, or pick one from the menu
//	mindgrid serve             - Start SSH server for remote play
//	mindgrid scores <board>    - Show high scores for a board
//	mindgrid prefs ...         - Show or change stored preferences
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from board config)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.mindgrid/scores.db)
//	--config <path>      - Board config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mindgrid",
	Short: "MindGrid - slide and merge tiles in your terminal",
	Long: `MindGrid is a tile-merging puzzle for the terminal. Slide the board
in one of four directions; equal tiles merge and a new tile appears.

Available commands:
  list     - Show all board variants
  play     - Play a board (menu when no board is given)
  serve    - Start SSH server for remote play
  scores   - View high scores
  prefs    - Show or change stored preferences

Examples:
  mindgrid list
  mindgrid play
  mindgrid play mindgrid_5x5
  mindgrid serve --ssh :2222
  mindgrid scores mindgrid`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadBoard(flagConfig)
		if err != nil {
			return err
		}
		if flagFPS <= 0 {
			flagFPS = cfg.TickRate
		}
		mindgrid.SetDefaultConfig(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = board config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mindgrid/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(prefsCmd)
}

// newLogger builds the process logger. Interactive commands log to a file so
// the alternate screen stays clean; the returned func closes it.
func newLogger(prefix string, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	opts := log.Options{ReportTimestamp: true, Prefix: prefix, Level: level}
	if !toFile {
		return log.NewWithOptions(os.Stderr, opts), func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".mindgrid")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "mindgrid.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}
